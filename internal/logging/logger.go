// Package logging provides centralized logger creation for the courier CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ParseLevel maps a configuration value to a slog level. Unknown values fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a standard text logger for CLI usage.
func NewLogger(level slog.Level) *slog.Logger {
	return New(os.Stderr, level, FormatText)
}

// New creates a logger writing to w in the given format ("json" or "text").
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.EqualFold(format, FormatJSON) {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// NewTestLogger creates a silent logger for tests.
func NewTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError + 1, // Higher than any real level = silent
	}
	return slog.New(slog.NewTextHandler(io.Discard, opts))
}
