package config

import (
	"os"
	"strconv"
	"time"

	"bootstrapstats/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Analysis AnalysisConfig
	LogLevel string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	UIPort  string
	GinMode string
}

// AnalysisConfig holds engine and service settings
type AnalysisConfig struct {
	// Seed pins every run to a fixed RNG stream when set
	Seed          *int64
	MaxConcurrent int
	QueueTimeout  time.Duration
	PreviewSize   int
	BlockSize     int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   *loadServerConfig(),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	analysisConfig, err := loadAnalysisConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load analysis configuration")
	}
	config.Analysis = *analysisConfig

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		UIPort:  getEnvOrDefault("UI_PORT", "8081"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadAnalysisConfig() (*AnalysisConfig, error) {
	cfg := &AnalysisConfig{
		MaxConcurrent: getEnvIntOrDefault("MAX_CONCURRENT_ANALYSES", 4),
		QueueTimeout:  getEnvDurationOrDefault("ANALYSIS_QUEUE_TIMEOUT", 30*time.Second),
		PreviewSize:   getEnvIntOrDefault("PREVIEW_SIZE", 50),
		BlockSize:     getEnvIntOrDefault("BLOCK_SIZE", 3),
	}

	if value := os.Getenv("BOOTSTRAP_SEED"); value != "" {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, errors.ConfigInvalid("BOOTSTRAP_SEED must be an integer")
		}
		cfg.Seed = &seed
	}

	return cfg, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Analysis.MaxConcurrent < 1 {
		return errors.ConfigInvalid("MAX_CONCURRENT_ANALYSES must be at least 1")
	}
	if config.Analysis.QueueTimeout <= 0 {
		return errors.ConfigInvalid("ANALYSIS_QUEUE_TIMEOUT must be positive")
	}
	if config.Analysis.PreviewSize < 1 || config.Analysis.PreviewSize > 100 {
		return errors.ConfigInvalid("PREVIEW_SIZE must be between 1 and 100")
	}
	if config.Analysis.BlockSize < 1 {
		return errors.ConfigInvalid("BLOCK_SIZE must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
