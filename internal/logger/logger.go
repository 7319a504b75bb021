// Package logger configures the process-wide zerolog logger
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Initialize sets up the global logger. Logs go to out, or to stderr when
// out is nil, keeping stdout free for the chat.
func Initialize(debug bool, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}

	// Pretty print logs in development
	if debug {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Add caller info to log
	log.Logger = log.With().Caller().Logger()
}

// Get returns the global logger instance
func Get() *zerolog.Logger {
	return &log.Logger
}
