package config

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewLogger returns a console logger on stderr at the configured level.
// Unknown levels fall back to info.
func (c *Config) NewLogger() zerolog.Logger {
	return newLogger(os.Stderr, c.LogLevel)
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}).Level(lvl).With().Timestamp().Logger()
}
