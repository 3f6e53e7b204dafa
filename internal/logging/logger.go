// Package logging wires zerolog for the shell and the headless commands.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// New creates a zerolog logger writing to w.
func New(cfg Config, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	var output io.Writer = w
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: cfg.TimeFormat,
			NoColor:    !isTerminal(w),
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps trace/debug/info/warn/error/off to a zerolog level.
// Unknown values keep fallback.
func ParseLevel(s string, fallback zerolog.Level) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	}
	return fallback
}

// ApplyEnv overrides cfg from the environment.
// RIDGELINE_LOG_LEVEL: trace, debug, info, warn, error, off
// RIDGELINE_LOG_FORMAT: json, console
func ApplyEnv(cfg Config) Config {
	if level := os.Getenv("RIDGELINE_LOG_LEVEL"); level != "" {
		cfg.Level = ParseLevel(level, cfg.Level)
	}
	switch format := os.Getenv("RIDGELINE_LOG_FORMAT"); format {
	case "json", "console":
		cfg.Format = format
	}
	return cfg
}

// NewFromEnv creates a stderr logger configured from the environment.
func NewFromEnv() zerolog.Logger {
	return New(ApplyEnv(DefaultConfig()), os.Stderr)
}

// OpenFile opens (or creates) an append-only log file.
func OpenFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
