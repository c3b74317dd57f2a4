package supervisor

import (
	"io"
	"time"

	"github.com/aki/procmux/internal/launcher"
	"github.com/aki/procmux/internal/logger"
)

// Options describes one launch request.
type Options struct {
	// Name is the registry name for stop/restart addressing. Optional;
	// duplicates are allowed and name-based operations apply to every match.
	Name string

	// Script is the explicit path of the script to run. When empty, the
	// entry point is resolved from Dir's manifest.
	Script string

	// Dir is the child's working directory, also consulted for manifest
	// resolution when Script is empty.
	Dir string

	// Log is the path output lines are appended to. Empty routes output
	// to the supervisor's own stdout/stderr.
	Log string

	Args []string
	Env  map[string]string

	// OnExit is the completion callback, invoked exactly once with the
	// terminal outcome: nil on a clean exit, *ExitError on abnormal
	// termination, or the launch fault.
	OnExit func(error)
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithLogger sets the diagnostics logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Supervisor) {
		s.log = log
	}
}

// WithStrategies replaces the launch strategy registry.
func WithStrategies(r *launcher.Registry) Option {
	return func(s *Supervisor) {
		s.strategies = r
	}
}

// WithStdio redirects the supervisor's own output streams, used as the
// sink destination for entries without a log file.
func WithStdio(stdout, stderr io.Writer) Option {
	return func(s *Supervisor) {
		s.stdout = stdout
		s.stderr = stderr
	}
}

// WithStopGrace sets how long stop waits after the termination signal
// before escalating to a kill.
func WithStopGrace(d time.Duration) Option {
	return func(s *Supervisor) {
		s.grace = d
	}
}
