// Package supervisor launches named scripts, tracks them in a registry, and
// manages their lifecycle: start, stop, restart, and a single terminal
// notification per process.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aki/procmux/internal/capture"
	"github.com/aki/procmux/internal/launcher"
	"github.com/aki/procmux/internal/logger"
	"github.com/aki/procmux/internal/manifest"
)

// DefaultStopGrace is how long Stop waits for a process to exit after the
// termination signal before escalating to a kill.
const DefaultStopGrace = 5 * time.Second

// Supervisor owns the registry of supervised processes. Entries are kept in
// insertion order, an entry is present from successful launch until it
// resolves, and duplicate names are allowed: name-based operations apply to
// every match. All registry mutation is serialized by the supervisor's
// mutex, since entries resolve from their own monitor goroutines.
type Supervisor struct {
	mu       sync.Mutex
	entries  []*Entry
	stopping func()

	strategies *launcher.Registry
	log        logger.Logger
	stdout     io.Writer
	stderr     io.Writer
	grace      time.Duration
}

// New creates a Supervisor with the built-in launch strategies.
func New(opts ...Option) *Supervisor {
	s := &Supervisor{
		strategies: launcher.Default(),
		log:        logger.Nop(),
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		grace:      DefaultStopGrace,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start resolves what to run, launches it, wires output capture and exit
// handling, and appends the entry to the registry.
//
// Configuration errors — nothing to resolve a script from, an empty
// resolution, an unrecognized script type, a bad working directory — are
// returned synchronously with no process spawned and the registry unchanged.
// A spawn failure is a launch fault, not a configuration error: the entry's
// completion callback fires with the fault, the entry never enters the
// registry, and Start itself reports the launch as accepted.
func (s *Supervisor) Start(ctx context.Context, opts Options) (*Entry, error) {
	script := opts.Script
	if script == "" && opts.Dir != "" {
		if main, ok := manifest.MainScript(opts.Dir); ok {
			script = main
		}
	}
	if script == "" {
		return nil, fmt.Errorf("%w: provide a script path or a directory with a %s manifest", ErrNoScript, manifest.FileName)
	}

	strategy, ok := s.strategies.Lookup(script)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScriptType, script)
	}

	sink := capture.NewSink(opts.Log, s.log)
	sink.Stdout = s.stdout
	sink.Stderr = s.stderr

	entry := &Entry{
		id:      uuid.New().String(),
		opts:    opts,
		script:  script,
		capture: capture.New(sink),
		log:     s.log,
		grace:   s.grace,
		state:   StateStarting,
		done:    make(chan struct{}),
		removed: s.remove,
	}

	launch, err := strategy.Launch(ctx, launcher.Spec{
		Script: script,
		Args:   opts.Args,
		Dir:    opts.Dir,
		Env:    opts.Env,
	})
	if err != nil {
		return nil, err
	}
	entry.cmd = launch.Cmd
	entry.ipc = launch.IPC

	stdout, err := launch.Cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to capture stdout: %w", err)
	}
	stderr, err := launch.Cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to capture stderr: %w", err)
	}
	entry.stdout, entry.stderr = stdout, stderr

	err = launch.Cmd.Start()
	launch.ReleaseChildFiles()
	if err != nil {
		entry.resolve(fmt.Errorf("failed to start process: %w", err))
		return entry, nil
	}

	entry.mu.Lock()
	entry.state = StateRunning
	entry.startTime = time.Now()
	entry.mu.Unlock()

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()

	s.log.Debug("process started",
		"name", opts.Name, "id", entry.id, "pid", entry.PID(), "script", script)

	go entry.monitor()

	return entry, nil
}

// StopByName stops every entry whose name equals name, in insertion order:
// shutdown notification, termination signal, kill escalation, and removal
// from the registry once resolved. An unknown name returns ErrNotFound.
func (s *Supervisor) StopByName(ctx context.Context, name string) error {
	matches := s.matches(name)
	if len(matches) == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	var errs []error
	for _, e := range matches {
		if err := e.stop(ctx); err != nil && !errors.Is(err, ErrAlreadyDone) {
			errs = append(errs, fmt.Errorf("stop %s: %w", e.ID(), err))
		}
	}

	return errors.Join(errs...)
}

// RestartByName stops every entry whose name equals name and relaunches it
// with the same parameters. Best-effort: an unknown name is a silent no-op
// and individual failures are logged, not returned.
func (s *Supervisor) RestartByName(ctx context.Context, name string) {
	for _, e := range s.matches(name) {
		opts := e.opts
		if err := e.stop(ctx); err != nil && !errors.Is(err, ErrAlreadyDone) {
			s.log.Error("failed to stop process for restart", "name", name, "error", err)
			continue
		}
		if _, err := s.Start(ctx, opts); err != nil {
			s.log.Error("failed to relaunch process", "name", name, "error", err)
		}
	}
}

// StopAll stops every registered entry, in insertion order.
func (s *Supervisor) StopAll(ctx context.Context) {
	for _, e := range s.Entries() {
		if err := e.stop(ctx); err != nil && !errors.Is(err, ErrAlreadyDone) {
			s.log.Error("failed to stop process", "name", e.Name(), "id", e.ID(), "error", err)
		}
	}
}

// OnStopping installs the process-wide shutdown hook, replacing any
// previously installed hook.
func (s *Supervisor) OnStopping(hook func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopping = hook
}

// Shutdown runs the shutdown hook, if one is installed, then stops every
// registered entry.
func (s *Supervisor) Shutdown(ctx context.Context) {
	s.mu.Lock()
	hook := s.stopping
	s.mu.Unlock()

	if hook != nil {
		hook()
	}

	s.StopAll(ctx)
}

// Entries returns a snapshot of the registry in insertion order.
func (s *Supervisor) Entries() []*Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of registered entries.
func (s *Supervisor) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Supervisor) matches(name string) []*Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Entry
	for _, e := range s.entries {
		if e.opts.Name == name {
			out = append(out, e)
		}
	}
	return out
}

func (s *Supervisor) remove(e *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cur := range s.entries {
		if cur == e {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}
