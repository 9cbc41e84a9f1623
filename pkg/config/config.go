package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Output OutputConfig
	Log    LogConfig
}

type OutputConfig struct {
	Format          string
	DateLayout      string
	AmountPrecision int
	IncludeCategory bool
}

type LogConfig struct {
	Level string
}

var validFormats = map[string]bool{"json": true, "csv": true, "xlsx": true}

// Load reads configuration from the environment, after merging in a .env
// file when one is present.
func Load() (*Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg := &Config{
		Output: OutputConfig{
			Format:          getEnv("OUTPUT_FORMAT", "json"),
			DateLayout:      getEnv("OUTPUT_DATE_LAYOUT", "2006-01-02"),
			AmountPrecision: getEnvAsInt("OUTPUT_AMOUNT_PRECISION", 2),
			IncludeCategory: getEnvAsBool("OUTPUT_INCLUDE_CATEGORY", true),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if !validFormats[cfg.Output.Format] {
		return nil, fmt.Errorf("OUTPUT_FORMAT %q is not one of json, csv, xlsx", cfg.Output.Format)
	}
	if cfg.Output.AmountPrecision < 0 {
		return nil, fmt.Errorf("OUTPUT_AMOUNT_PRECISION must not be negative")
	}

	return cfg, nil
}

// SlogLevel maps the configured level name onto slog; unknown names fall
// back to info.
func (c *LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
