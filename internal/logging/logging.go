// Package logging configures the process-wide structured logger. Phases
// and the orchestrator log through this package instead of the standard
// library logger, so run/phase context travels with every line.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// Init configures zerolog's global logger: pretty console output in
// development, compact JSON otherwise.
func Init(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if environment == "development" {
		console := zerolog.ConsoleWriter{Out: os.Stderr}
		log := zerolog.New(console).With().Timestamp().Logger()
		zerolog.DefaultContextLogger = &log
		return
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}

// ForRun returns a logger with run_id and phase fields pre-populated, for
// every log line emitted while a phase executes.
func ForRun(runID string, phase string) zerolog.Logger {
	base := zerolog.DefaultContextLogger
	if base == nil {
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		base = &l
	}
	return base.With().Str("run_id", runID).Str("phase", phase).Logger()
}
