package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration. The Telegram bot token is
// the one secret and comes from the environment, never from the file.
type Config struct {
	Dataset struct {
		Path         string  `yaml:"path"`
		TestFraction float64 `yaml:"test_fraction"`
		SplitSeed    int64   `yaml:"split_seed"`
	} `yaml:"dataset"`
	ModelService struct {
		URL               string `yaml:"url"`
		FitTimeoutSeconds int64  `yaml:"fit_timeout_seconds"`
	} `yaml:"model_service"`
	Training struct {
		Skip         bool    `yaml:"skip"`
		Epochs       int     `yaml:"epochs"`
		BatchSize    int     `yaml:"batch_size"`
		LearningRate float64 `yaml:"learning_rate"`
		MaxLength    int     `yaml:"max_length"`
	} `yaml:"training"`
	Bot struct {
		Enabled bool `yaml:"enabled"`
		Token   string
	} `yaml:"bot"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// LoadConfig reads configuration from the specified YAML file and the
// TELEGRAM_BOT_TOKEN environment variable.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.Bot.Token = os.Getenv("TELEGRAM_BOT_TOKEN")
	if config.Bot.Enabled && config.Bot.Token == "" {
		return nil, fmt.Errorf("bot is enabled but TELEGRAM_BOT_TOKEN is not set")
	}

	return config, nil
}
