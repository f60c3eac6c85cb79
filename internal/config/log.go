package config

import (
	"io"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

// Logger returns a console logger on w. gnark's own logger is routed through
// it when verbose, and silenced otherwise.
func Logger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().Logger()

	if verbose {
		logger.Set(l)
	} else {
		logger.Disable()
	}
	return l
}
