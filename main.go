package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"bullyguard/internal/classifier"
	"bullyguard/internal/config"
	"bullyguard/internal/ml_client"
	"bullyguard/internal/models"
	"bullyguard/internal/server"
	"bullyguard/internal/telegram_bot"
	"bullyguard/internal/trainer"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize model service client
	mlClient := ml_client.NewClient(cfg.ModelService.URL, time.Duration(cfg.ModelService.FitTimeoutSeconds)*time.Second)

	// Offline phase: fine-tune (or verify) the model before serving starts.
	// Dataset and training failures are fatal here.
	driver := trainer.NewDriver(mlClient, cfg, logger)

	var summary *models.TrainingSummary
	if cfg.Training.Skip {
		if err := driver.VerifyLoadedModel(ctx); err != nil {
			logger.Fatal("Model verification failed", zap.Error(err))
		}
	} else {
		summary, err = driver.Run(ctx)
		if err != nil {
			logger.Fatal("Offline training pipeline failed", zap.Error(err))
		}
	}

	var modelID string
	if summary != nil {
		modelID = summary.ModelID
	}

	// Serving phase: the adapter is the single shared, read-only model handle.
	adapter := classifier.NewAdapter(mlClient, modelID, logger)

	// Run Telegram bot in a goroutine (if enabled)
	if cfg.Bot.Enabled {
		bot, err := telegram_bot.NewBot(cfg.Bot.Token, adapter, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram bot", zap.Error(err))
		}
		go func() {
			if err := bot.Start(ctx); err != nil {
				logger.Error("Telegram bot failed", zap.Error(err))
			}
		}()
	}

	// Initialize and run the API server
	log := logrus.New()
	srv := server.NewServer(adapter, summary, log)
	go func() {
		if err := srv.Run(cfg.Server.Port); err != nil {
			logger.Error("API server failed", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("Application stopped.")
}
