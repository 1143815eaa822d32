// Package logger configures the global zerolog logger. The terminal is owned
// by the UI, so log lines go to a file (or nowhere).
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at path ("-" discards) at the given level.
// The returned closer releases the file.
func Setup(path, level string) (io.Closer, error) {
	zerolog.SetGlobalLevel(ParseLevel(level))

	if path == "" || path == "-" {
		log.Logger = zerolog.New(io.Discard)
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	return f, nil
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return l
}
