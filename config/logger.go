package config

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewLogger returns a console logger writing to w.
func NewLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
}

// DefaultLogger is NewLogger on stderr.
func DefaultLogger() zerolog.Logger { return NewLogger(os.Stderr) }

// WithLevel applies a level name such as "debug" or "warn". Unknown names
// keep the logger at info.
func WithLevel(logger zerolog.Logger, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		logger.Warn().Str("level", level).Msg("unknown log level, using info")
		lvl = zerolog.InfoLevel
	}
	return logger.Level(lvl)
}
