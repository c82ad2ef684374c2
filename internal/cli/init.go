// Package cli provides common process initialization utilities shared by
// the outlay entrypoint.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"outlay/internal/config"
	applog "outlay/internal/log"
)

// SetupLogger initializes structured logging at the given level and sets
// the result as the process default.
func SetupLogger(level string) *applog.Logger {
	logger := applog.New(applog.ParseLevel(level), applog.ComponentApp)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}
