// Package logger builds the zerolog logger shared by the server.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to out at the given level. Pretty selects the
// human readable console format used in development.
func New(out io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "catalog").Logger()
}

// NewStderr is New writing to standard error.
func NewStderr(level string, pretty bool) zerolog.Logger {
	return New(os.Stderr, level, pretty)
}
