package commands

import "github.com/aki/procmux/internal/logger"

// newLogger builds the diagnostics logger for a command invocation.
// Supervised process output is routed by the sink, not this logger; this
// carries lifecycle events and log-write faults.
func newLogger() logger.Logger {
	if verbose {
		return logger.New(logger.WithDebug())
	}
	return logger.New(logger.WithQuiet())
}
