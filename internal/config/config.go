package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Backend     BackendConfig
	API         APIConfig
}

// BackendConfig is used to call the order/quotation store.
type BackendConfig struct {
	BaseURL    string // e.g. http://orderstore:4000; required
	ServiceKey string // BACKEND_SERVICE_KEY sent as bearer token
}

// APIConfig configures the inbound dashboard API.
type APIConfig struct {
	ServiceKey string // API_SERVICE_KEY: bearer key required on /v1 routes; empty disables auth
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Backend: BackendConfig{
			BaseURL:    strings.TrimSpace(getEnvOrViper("BACKEND_URL", "")),
			ServiceKey: strings.TrimSpace(getEnvOrViper("BACKEND_SERVICE_KEY", "")),
		},
		API: APIConfig{
			ServiceKey: strings.TrimSpace(getEnvOrViper("API_SERVICE_KEY", "")),
		},
	}

	// Validate required fields
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("BACKEND_URL is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
