// Package logging builds charmbracelet/log loggers for the game and server.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Environment variables read by FromEnv.
const (
	EnvLevel  = "RPG_LOG_LEVEL"
	EnvFormat = "RPG_LOG_FORMAT"
)

// Options configures a logger.
type Options struct {
	Level      string // debug, info, warn, error
	Format     string // text, json, logfmt
	Prefix     string
	Timestamps bool
}

// New creates a logger writing to w. Unknown levels fall back to info and
// unknown formats to text.
func New(w io.Writer, opts Options) *log.Logger {
	level, err := log.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		ReportTimestamp: opts.Timestamps,
		Formatter:       formatter(opts.Format),
	})
}

// FromEnv creates a logger with level and format taken from the environment.
func FromEnv(w io.Writer, prefix string, timestamps bool) *log.Logger {
	return New(w, Options{
		Level:      os.Getenv(EnvLevel),
		Format:     os.Getenv(EnvFormat),
		Prefix:     prefix,
		Timestamps: timestamps,
	})
}

// Discard returns a logger that drops everything. Used when the terminal
// belongs to the TUI and no log file was requested.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OpenFile creates a logger appending to path. The returned closer must be
// called on exit. An empty path yields Discard and a no-op closer.
func OpenFile(path, prefix string) (*log.Logger, func() error, error) {
	if path == "" {
		return Discard(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: create dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	return FromEnv(f, prefix, true), f.Close, nil
}

func formatter(name string) log.Formatter {
	switch strings.ToLower(name) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
