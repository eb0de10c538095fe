package config

import (
	"os"
	"strconv"

	"tabreport/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Data     DataConfig
	Report   ReportConfig
}

// DatabaseConfig holds database connection settings. URL is optional;
// without it the application runs file-only and skips persistence.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DataConfig holds dataset file paths
type DataConfig struct {
	CurrentFile   string
	ReferenceFile string
	OutputFile    string
}

// ReportConfig holds report execution settings
type ReportConfig struct {
	AggData bool
	Bins    int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Data: DataConfig{
			CurrentFile:   getEnvOrDefault("CURRENT_FILE", ""),
			ReferenceFile: getEnvOrDefault("REFERENCE_FILE", ""),
			OutputFile:    getEnvOrDefault("OUTPUT_FILE", "report.xlsx"),
		},
		Report: ReportConfig{
			AggData: getEnvBoolOrDefault("AGG_DATA", false),
			Bins:    getEnvIntOrDefault("HISTOGRAM_BINS", 10),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Report.Bins <= 0 {
		return errors.ConfigInvalid("HISTOGRAM_BINS must be positive")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
