package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// Store credentials are required: every operation talks to the database or
// the image bucket, so starting without them is pointless.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Database
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Object storage (S3-compatible)
	StorageEndpoint  string `mapstructure:"STORAGE_ENDPOINT"`
	StorageAccessKey string `mapstructure:"STORAGE_ACCESS_KEY"`
	StorageSecretKey string `mapstructure:"STORAGE_SECRET_KEY"`
	StorageBucket    string `mapstructure:"STORAGE_BUCKET"`
	StorageUseSSL    bool   `mapstructure:"STORAGE_USE_SSL"`
	// StoragePublicBaseURL overrides the URL prefix used for public image
	// links (e.g. a CDN domain). Defaults to the endpoint itself.
	StoragePublicBaseURL string `mapstructure:"STORAGE_PUBLIC_BASE_URL"`
}

// ConfigurationError signals missing required connection parameters.
// Fatal at startup: no store-dependent operation can work without them.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %v", e.Missing)
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Unmarshal only sees keys viper already knows about, so env-only keys
	// must be bound explicitly or they decode as zero values.
	viper.MustBindEnv("DATABASE_URL")
	viper.MustBindEnv("STORAGE_ENDPOINT")
	viper.MustBindEnv("STORAGE_ACCESS_KEY")
	viper.MustBindEnv("STORAGE_SECRET_KEY")
	viper.MustBindEnv("STORAGE_PUBLIC_BASE_URL")

	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("STORAGE_BUCKET", "product-images")
	viper.SetDefault("STORAGE_USE_SSL", true)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.StorageEndpoint == "" {
		missing = append(missing, "STORAGE_ENDPOINT")
	}
	if cfg.StorageAccessKey == "" {
		missing = append(missing, "STORAGE_ACCESS_KEY")
	}
	if cfg.StorageSecretKey == "" {
		missing = append(missing, "STORAGE_SECRET_KEY")
	}
	if len(missing) > 0 {
		return nil, &ConfigurationError{Missing: missing}
	}
	return cfg, nil
}
