// Package logger builds the application's zerolog loggers.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	Level      string
	TimeFormat string
	Output     io.Writer
	Console    bool
}

// New creates a zerolog.Logger. An unknown level falls back to info.
// Console enables the human-readable writer for local development; the
// default is structured JSON.
func New(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := cfg.Output
	if cfg.Console {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: cfg.TimeFormat}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()
}
