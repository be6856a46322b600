// Package logging configures log/slog handlers for the triangulation tools.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Format selects the slog handler.
type Format string

const (
	// JSON writes one JSON object per record.
	JSON Format = "json"
	// Text writes logfmt-style key=value records.
	Text Format = "text"
)

// New returns a logger writing to w at the given level and format.
// Unknown formats fall back to Text.
func New(w io.Writer, level slog.Level, format Format) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: level}
	if format == JSON {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// ParseLevel maps debug, info, warn or error (any case) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
}

// Setup configures slog to write to stderr and, if logFile is non-empty, to
// that file as well. Returns the logger and a cleanup function closing the file.
func Setup(logFile string, level slog.Level, format Format) (*slog.Logger, func(), error) {
	if logFile == "" {
		return New(os.Stderr, level, format), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	logger := New(io.MultiWriter(os.Stderr, f), level, format)
	cleanup := func() {
		_ = f.Close()
	}
	return logger, cleanup, nil
}
