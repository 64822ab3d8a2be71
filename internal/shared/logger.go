package shared

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger configures the process-wide zerolog logger. Development gets the
// console writer; everything else logs JSON lines.
func NewLogger(environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	var logger zerolog.Logger

	if environment == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).With().
			Timestamp().
			Str("service", "inkfolio").
			Logger()
	}

	log.Logger = logger

	return logger
}
