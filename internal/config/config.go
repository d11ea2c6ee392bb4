package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Storage StorageConfig
	Logging LogConfig
}

// StorageConfig holds managed-directory settings.
type StorageConfig struct {
	BaseDir  string `envconfig:"BASE_DIR" default:"file_storage"`
	HashAlgo string `envconfig:"HASH_ALGO" default:"md5"`
	DirMode  uint32 `envconfig:"DIR_MODE" default:"0755"`
	FileMode uint32 `envconfig:"FILE_MODE" default:"0644"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			BaseDir:  "file_storage",
			HashAlgo: "md5",
			DirMode:  0755,
			FileMode: 0644,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
