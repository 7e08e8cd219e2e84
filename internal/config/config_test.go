package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "HTTP_READ_TIMEOUT", "PAYMENT_TERM_DAYS", "PDF_FONT_PATH", "LOG_LEVEL", "GOOGLE_SHEET_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 14, cfg.PaymentTermDays)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "stderr", cfg.GetLoggerConfig().Output)
	assert.Error(t, cfg.RequireSheets())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HTTP_READ_TIMEOUT", "5")
	t.Setenv("HTTP_WRITE_TIMEOUT", "1m")
	t.Setenv("PAYMENT_TERM_DAYS", "30")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("GOOGLE_SHEET_URL", "https://docs.google.com/spreadsheets/d/abc123/edit")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, time.Minute, cfg.WriteTimeout)
	assert.Equal(t, 30, cfg.PaymentTermDays)
	assert.Equal(t, "json", cfg.GetLoggerConfig().Format)
	assert.NoError(t, cfg.RequireSheets())
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("PORT", "70000")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PORT", "")
	t.Setenv("PDF_FONT_PATH", "/nonexistent/font.ttf")
	_, err = Load()
	assert.ErrorContains(t, err, "PDF_FONT_PATH")
}
