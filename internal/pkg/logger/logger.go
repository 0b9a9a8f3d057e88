package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the application logger. Development gets a human console
// writer, production gets JSON lines on stdout.
func New(appMode string) zerolog.Logger {
	if appMode == "dev" {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}

	return zerolog.New(os.Stdout).
		With().Timestamp().Logger().
		Level(zerolog.InfoLevel)
}
