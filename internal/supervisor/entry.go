package supervisor

import (
	"context"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/aki/procmux/internal/capture"
	"github.com/aki/procmux/internal/launcher"
	"github.com/aki/procmux/internal/logger"
)

// State represents the current state of a supervised process.
type State string

const (
	// StateStarting indicates the process is being launched
	StateStarting State = "starting"
	// StateRunning indicates the process is actively running
	StateRunning State = "running"
	// StateStopped indicates the process terminated cleanly
	StateStopped State = "stopped"
	// StateFailed indicates the process failed to launch or terminated abnormally
	StateFailed State = "failed"
)

// Entry is the supervisor's record for one launched process: its identity,
// launch parameters, process handle, output capture, and the reconciliation
// of the process's terminal events into exactly one completion callback.
type Entry struct {
	id      string
	opts    Options
	script  string
	cmd     *exec.Cmd
	ipc     io.WriteCloser
	capture *capture.Capture
	stdout  io.ReadCloser
	stderr  io.ReadCloser
	log     logger.Logger
	grace   time.Duration

	// removed unlinks the entry from the registry once it resolves
	removed func(*Entry)

	mu        sync.Mutex
	state     State
	resolved  bool
	exitErr   error
	startTime time.Time
	done      chan struct{}
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() string { return e.id }

// Name returns the caller-supplied registry name, possibly empty.
func (e *Entry) Name() string { return e.opts.Name }

// Script returns the resolved script path.
func (e *Entry) Script() string { return e.script }

// PID returns the OS process ID, or 0 before the process has started.
func (e *Entry) PID() int {
	if e.cmd != nil && e.cmd.Process != nil {
		return e.cmd.Process.Pid
	}
	return 0
}

// State returns the current state of the process.
func (e *Entry) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// StartTime returns when the process was started.
func (e *Entry) StartTime() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startTime
}

// Wait blocks until the entry resolves and returns its terminal outcome.
func (e *Entry) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-e.done:
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.exitErr
	}
}

// Flush forces any buffered partial output to be emitted. Safe to call
// multiple times and after the process has terminated.
func (e *Entry) Flush() {
	e.capture.Flush()
}

// resolve is the exit reconciler: the launch fault path, the reaper, and
// stream teardown may all report termination, in any order, and only the
// first transition out of pending takes effect. It flushes buffered output,
// unlinks the entry from the registry, and fires the completion callback
// exactly once.
func (e *Entry) resolve(err error) {
	e.mu.Lock()
	if e.resolved {
		e.mu.Unlock()
		return
	}
	e.resolved = true
	e.exitErr = err
	if err != nil {
		e.state = StateFailed
	} else {
		e.state = StateStopped
	}
	e.mu.Unlock()

	// Trailing partial lines must reach the sink before the terminal
	// callback fires.
	e.capture.Close()

	if e.ipc != nil {
		_ = e.ipc.Close()
	}

	if e.removed != nil {
		e.removed(e)
	}

	if e.opts.OnExit != nil {
		e.opts.OnExit(err)
	}

	// Unblocks Wait and stop only after the callback has run, so that a
	// completed stop implies the terminal notification was delivered.
	close(e.done)
}

// monitor drains both output streams, reaps the process, and resolves the
// entry with the translated outcome.
func (e *Entry) monitor() {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		drain(e.stdout, e.capture.Stdout())
	}()
	go func() {
		defer wg.Done()
		drain(e.stderr, e.capture.Stderr())
	}()
	wg.Wait()

	e.resolve(exitOutcome(e.cmd.Wait()))
}

// stop delivers the shutdown sequence: the message-channel notification when
// one is open, then a termination signal, escalating to a kill after the
// grace period. It returns once the entry has resolved.
func (e *Entry) stop(ctx context.Context) error {
	e.mu.Lock()
	if e.resolved {
		e.mu.Unlock()
		return ErrAlreadyDone
	}
	e.mu.Unlock()

	e.sendShutdown()

	if err := launcher.SignalStop(e.cmd); err != nil {
		return err
	}

	timer := time.NewTimer(e.grace)
	defer timer.Stop()

	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	e.log.Warn("process did not stop within grace period, killing", "name", e.Name(), "pid", e.PID())

	if err := launcher.SignalKill(e.cmd); err != nil {
		return err
	}

	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// sendShutdown writes the shutdown notification on the message channel.
// Best-effort: a child without a channel, or one that already closed its
// end, is simply signaled instead.
func (e *Entry) sendShutdown() {
	if e.ipc == nil {
		return
	}
	if _, err := e.ipc.Write([]byte("\"shutdown\"\n")); err != nil {
		e.log.Debug("shutdown notification not delivered", "error", err)
	}
}

func drain(r io.Reader, w io.Writer) {
	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			_, _ = w.Write(buf[:n])
		}
		if err != nil {
			return
		}
	}
}
