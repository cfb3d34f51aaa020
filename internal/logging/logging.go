// Package logging configures the global zerolog logger for the installer.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger. Verbose installs log at trace level and
// include caller information; normal installs only surface warnings so the
// interactive output stays readable.
func Setup(verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}
	log.Logger = zerolog.New(console).With().Timestamp().Logger()
	if verbose {
		log.Logger = log.Logger.With().Caller().Logger()
	}
}

// Component returns a logger tagged with the given component name.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
