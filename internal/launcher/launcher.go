// Package launcher resolves how to run a target script. Each supported
// script family is a Strategy, selected by the script path's extension
// through a Registry, and produces a fully configured command invocation.
package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Spec describes one launch request after script resolution.
type Spec struct {
	Script string            // resolved path of the script to run
	Args   []string          // extra arguments appended after the script path
	Dir    string            // working directory for the child (optional)
	Env    map[string]string // extra environment, merged over the parent's
}

// Launch is a fully resolved invocation produced by a Strategy. The command
// is configured but not started: stdio is left to the caller to capture, the
// child shares the supervisor's process group fate via its own process group,
// and it is never detached.
type Launch struct {
	Cmd *exec.Cmd

	// IPC is the supervisor's end of the child's message channel, non-nil
	// only for strategies that open one. It carries the shutdown
	// notification and is closed when the entry resolves.
	IPC io.WriteCloser

	// childFiles are the child's ends of any pipes passed via ExtraFiles.
	// The parent's copies must be closed once the child has started.
	childFiles []*os.File
}

// ReleaseChildFiles closes the parent's copies of file descriptors handed to
// the child. Call it after Cmd.Start has succeeded or failed.
func (l *Launch) ReleaseChildFiles() {
	for _, f := range l.childFiles {
		_ = f.Close()
	}
	l.childFiles = nil
}

// Strategy builds the command invocation for one family of script types.
type Strategy interface {
	// Name returns the strategy identifier (e.g. "node", "python3")
	Name() string

	// Launch produces the invocation for spec. The returned command has
	// the script path prepended to the caller's arguments and the spec's
	// working directory and environment applied.
	Launch(ctx context.Context, spec Spec) (*Launch, error)
}

// setupCommand applies the spec's working directory and environment and
// keeps the child in its own process group so it can be signaled as a unit.
func setupCommand(cmd *exec.Cmd, spec Spec) error {
	if spec.Dir != "" {
		if _, err := os.Stat(spec.Dir); err != nil {
			return fmt.Errorf("working directory does not exist: %w", err)
		}
		cmd.Dir = spec.Dir
	}

	cmd.Env = os.Environ()
	for k, v := range spec.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	configureProcessGroup(cmd)

	return nil
}
