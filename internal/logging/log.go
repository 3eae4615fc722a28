// Package logging configures the structured stderr logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// EnvLevel overrides the configured log level.
const EnvLevel = "CAESAR_LOG_LEVEL"

// DefaultLevel is used when neither config nor environment set a level.
const DefaultLevel = "warn"

// Options configures the logger.
type Options struct {
	// Level is the minimum level (debug, info, warn, error).
	Level  string
	Output io.Writer
	Prefix string
}

// ParseLevel converts a level name to log.Level.
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("unknown log level %q (use debug, info, warn or error)", level)
	}
}

// New creates a logger. The CAESAR_LOG_LEVEL environment variable wins over opts.Level.
func New(opts Options) *log.Logger {
	if env := os.Getenv(EnvLevel); env != "" {
		opts.Level = env
	}
	if opts.Level == "" {
		opts.Level = DefaultLevel
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	level, err := ParseLevel(opts.Level)
	logger := log.NewWithOptions(opts.Output, log.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		TimeFormat:      time.Kitchen,
		ReportTimestamp: level == log.DebugLevel,
	})
	if err != nil {
		logger.Warn("falling back to info level", "err", err)
	}
	return logger
}
