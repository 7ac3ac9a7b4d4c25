package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/drillbot/internal/config"
)

func TestParseLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"unknown": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range testCases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "info", Format: "json"}, &buf)

	log.Debug("hidden")
	log.Info("session started", slog.String("list", "roots"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "session started", entry["msg"])
	assert.Equal(t, "roots", entry["list"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "debug", Format: "text"}, &buf)

	log.Debug("card shown", slog.Int("index", 3))
	assert.Contains(t, buf.String(), "msg=\"card shown\"")
	assert.Contains(t, buf.String(), "index=3")
	assert.Contains(t, buf.String(), "source=")
}
