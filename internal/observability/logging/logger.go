// Package logging provides structured logging utilities using the standard
// library's log/slog package, with consistent configuration across the CLI,
// server, and worker binaries.
package logging

import (
	"context"
	"log/slog"
	"os"
)

func level() slog.Level {
	if os.Getenv("LOG_LEVEL") == "debug" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// NewLogger creates a structured logger with JSON output. The log level is
// controlled via the LOG_LEVEL environment variable (default: info).
func NewLogger() *slog.Logger {
	logLevel := level()
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: logLevel <= slog.LevelWarn,
	})
	return slog.New(handler)
}

// NewTextLogger creates a structured logger with human-readable text output,
// used by the interactive CLI.
func NewTextLogger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level(),
	})
	return slog.New(handler)
}

type contextKey string

const loggerContextKey contextKey = "logger"

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// FromContext retrieves the logger from the context, or the default logger
// if none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
