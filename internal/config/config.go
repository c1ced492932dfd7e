package config

import (
	"fmt"
	"os"
	"strconv"

	"stratsim/internal/errors"
)

// Config holds the simulation engine settings
type Config struct {
	// Seed is the top-level seed every scenario/replication stream derives from
	Seed int64

	// TrimWeight is the symmetric tail-trimming proportion of the trimmed hybrid
	TrimWeight float64

	// Workers is the replication worker count per scenario; 1 runs sequentially
	Workers int

	// MaxFailureRate is the replication failure rate above which a scenario is
	// reported unreliable
	MaxFailureRate float64

	// DiagnosticSample is the diagnostic sub-sample size; 0 disables the draw
	DiagnosticSample int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Seed:             getEnvInt64OrDefault("SIM_SEED", 42),
		TrimWeight:       getEnvFloatOrDefault("TRIM_WEIGHT", 0.05),
		Workers:          getEnvIntOrDefault("SIM_WORKERS", 4),
		MaxFailureRate:   getEnvFloatOrDefault("MAX_FAILURE_RATE", 0.05),
		DiagnosticSample: getEnvIntOrDefault("DIAGNOSTIC_SAMPLE", 1000),
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if c.TrimWeight < 0 || c.TrimWeight >= 0.5 {
		return errors.ConfigInvalid(fmt.Sprintf("TRIM_WEIGHT must be in [0, 0.5), got %g", c.TrimWeight))
	}
	if c.Workers < 1 {
		return errors.ConfigInvalid(fmt.Sprintf("SIM_WORKERS must be at least 1, got %d", c.Workers))
	}
	if c.MaxFailureRate < 0 || c.MaxFailureRate > 1 {
		return errors.ConfigInvalid(fmt.Sprintf("MAX_FAILURE_RATE must be in [0,1], got %g", c.MaxFailureRate))
	}
	if c.DiagnosticSample < 0 {
		return errors.ConfigInvalid(fmt.Sprintf("DIAGNOSTIC_SAMPLE must be non-negative, got %d", c.DiagnosticSample))
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
