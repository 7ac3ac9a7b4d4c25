// Package logger provides structured logging for the application.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/example/drillbot/internal/config"
)

// New creates a *slog.Logger writing to stderr and sets it as the default.
//
// Format "json" produces structured output, "text" a human-readable form with
// source locations. Unknown levels fall back to info.
func New(cfg config.LogConfig) *slog.Logger {
	logger := NewWithWriter(cfg, os.Stderr)
	slog.SetDefault(logger)
	return logger
}

// NewWithWriter is New without touching the default logger.
func NewWithWriter(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
