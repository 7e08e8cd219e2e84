package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"faktura/internal/logger"
)

type Config struct {
	// HTTP API Configuration
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// PDF Configuration
	PDFFontPath     string // UTF-8 TTF font with Polish glyphs; core Helvetica when empty
	PDFFontFamily   string
	PaymentTermDays int

	// Google Sheets Configuration (invoice register export)
	GoogleSheetURL       string
	GoogleSheetWorksheet string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		Port:                 getEnvInt("PORT", 8080),
		ReadTimeout:          getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:         getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		PDFFontPath:          getEnv("PDF_FONT_PATH", ""),
		PDFFontFamily:        getEnv("PDF_FONT_FAMILY", "DejaVu"),
		PaymentTermDays:      getEnvInt("PAYMENT_TERM_DAYS", 14),
		GoogleSheetURL:       getEnv("GOOGLE_SHEET_URL", ""),
		GoogleSheetWorksheet: getEnv("GOOGLE_SHEET_WORKSHEET", "Rejestr faktur"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:        getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:            getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.PaymentTermDays < 0 {
		return fmt.Errorf("PAYMENT_TERM_DAYS must not be negative, got %d", c.PaymentTermDays)
	}
	if c.PDFFontPath != "" {
		if _, err := os.Stat(c.PDFFontPath); err != nil {
			return fmt.Errorf("PDF_FONT_PATH is not readable: %w", err)
		}
	}
	return nil
}

// RequireSheets checks the settings needed by the register export.
func (c *Config) RequireSheets() error {
	if c.GoogleSheetURL == "" {
		return fmt.Errorf("GOOGLE_SHEET_URL is required")
	}
	if c.GoogleSheetWorksheet == "" {
		return fmt.Errorf("GOOGLE_SHEET_WORKSHEET is required")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvDuration accepts Go durations ("30s") or plain seconds ("30").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
