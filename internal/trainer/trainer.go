package trainer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bullyguard/internal/config"
	"bullyguard/internal/dataset"
	"bullyguard/internal/ml_client"
	"bullyguard/internal/models"
)

// TrainingError wraps a model service fit failure. It is fatal to the
// offline pipeline.
type TrainingError struct {
	Err error
}

func (e *TrainingError) Error() string {
	return fmt.Sprintf("training failed: %v", e.Err)
}

func (e *TrainingError) Unwrap() error { return e.Err }

// Driver runs the one-shot offline pipeline: load the corpus, fine-tune the
// model, report metrics. It is blocking and non-resumable.
type Driver struct {
	client *ml_client.Client
	cfg    *config.Config
	logger *zap.Logger
}

// NewDriver creates a training driver.
func NewDriver(client *ml_client.Client, cfg *config.Config, logger *zap.Logger) *Driver {
	return &Driver{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Run executes the pipeline and returns the fitted model summary. Dataset
// failures surface as *dataset.LoadError, fit failures as *TrainingError.
func (d *Driver) Run(ctx context.Context) (*models.TrainingSummary, error) {
	split, err := dataset.Load(d.cfg.Dataset.Path, dataset.Options{
		TestFraction: d.cfg.Dataset.TestFraction,
		Seed:         d.cfg.Dataset.SplitSeed,
	}, d.logger)
	if err != nil {
		return nil, err
	}

	d.logger.Info("Starting fine-tuning run",
		zap.Int("train_size", len(split.Train)),
		zap.Int("test_size", len(split.Test)),
		zap.Int("epochs", d.cfg.Training.Epochs),
	)

	resp, err := d.client.Fit(ctx, ml_client.FitRequest{
		Train:     split.Train,
		Test:      split.Test,
		Epochs:    d.cfg.Training.Epochs,
		BatchSize: d.cfg.Training.BatchSize,
		LearnRate: d.cfg.Training.LearningRate,
		MaxLength: d.cfg.Training.MaxLength,
	})
	if err != nil {
		return nil, &TrainingError{Err: err}
	}

	summary := &models.TrainingSummary{
		ModelID:   resp.ModelID,
		Accuracy:  resp.Accuracy,
		F1:        resp.F1,
		TrainSize: len(split.Train),
		TestSize:  len(split.Test),
	}

	d.logger.Info("Fine-tuning complete",
		zap.String("model_id", summary.ModelID),
		zap.Float64("accuracy", summary.Accuracy),
		zap.Float64("f1", summary.F1),
	)

	return summary, nil
}

// VerifyLoadedModel checks, when training is skipped, that the model service
// already holds a fitted model.
func (d *Driver) VerifyLoadedModel(ctx context.Context) error {
	health, err := d.client.HealthCheck(ctx)
	if err != nil {
		return &TrainingError{Err: err}
	}
	if !health.ModelLoaded {
		return &TrainingError{Err: fmt.Errorf("model service %q has no fitted model loaded", health.Status)}
	}
	d.logger.Info("Skipping training, model already loaded", zap.String("device", health.Device))
	return nil
}
