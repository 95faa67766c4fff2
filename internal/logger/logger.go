// Package logger configures the process-wide zerolog logger.
//
// Every other package logs through the zerolog global, so Setup must run
// before any harness component is constructed.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup initializes the global logger with a console writer and the
// minimum level parsed from levelName (trace, debug, info, warn, error).
// An empty or unrecognized name falls back to info.
func Setup(levelName string) {
	SetupWithWriter(levelName, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

// SetupWithWriter is Setup with an explicit output, used by tests to
// capture log lines.
func SetupWithWriter(levelName string, w io.Writer) {
	zerolog.SetGlobalLevel(ParseLevel(levelName))
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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
	default:
		return zerolog.InfoLevel
	}
}
