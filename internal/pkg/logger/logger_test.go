package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Config{
		Level:          "info",
		Format:         "json",
		ServiceName:    "stockapi",
		ServiceVersion: "test",
		Out:            &buf,
	}))
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	log.Info().Str("k", "v").Msg("hello")
	log.Debug().Msg("dropped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "stockapi", entry["service"])
	assert.Equal(t, "v", entry["k"])
}

func TestInit_InvalidLevel(t *testing.T) {
	assert.Error(t, Init(Config{Level: "loud"}))
}

func TestInit_FileSinks(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, Init(Config{
		Level:         "info",
		FileEnabled:   true,
		FilePath:      dir,
		RotationSize:  1,
		RetentionDays: 1,
		Out:           &buf,
	}))
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	log.Info().Msg("info line")
	log.Error().Msg("error line")

	app, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(app), "info line")
	assert.Contains(t, string(app), "error line")

	errs, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(errs), "info line")
	assert.Contains(t, string(errs), "error line")
}

func TestNewQueryLogger_NoPathUsesGlobal(t *testing.T) {
	l := NewQueryLogger("", 1, 1)
	assert.Equal(t, log.Logger.GetLevel(), l.GetLevel())
}
