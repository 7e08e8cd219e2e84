package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SetupWithWriter(LogConfig{Level: "debug", Format: "json"}, &buf))
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log := WithInvoice("totals", "FV/1/2024")
	log.Info().Str("net", "200.00").Msg("Totals computed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "totals", entry["component"])
	assert.Equal(t, "FV/1/2024", entry["invoice_number"])
	assert.Equal(t, "200.00", entry["net"])
	assert.Equal(t, "Totals computed", entry["message"])
}

func TestSetupWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SetupWithWriter(LogConfig{Level: "warn", Format: "json"}, &buf))
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log := WithComponent("test")
	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetup_InvalidLevel(t *testing.T) {
	err := Setup(LogConfig{Level: "loud", Format: "json", Output: "stderr"})
	assert.Error(t, err)
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SetupWithWriter(LogConfig{Level: "info", Format: "json"}, &buf))

	log := WithFields(map[string]interface{}{"items": 3})
	log.Info().Msg("x")
	assert.Contains(t, buf.String(), `"items":3`)
}
