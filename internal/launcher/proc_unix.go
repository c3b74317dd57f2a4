//go:build !windows

package launcher

import (
	"fmt"
	"os/exec"
	"syscall"
)

// configureProcessGroup puts the child in its own process group on Unix.
// The child stays attached to the supervisor (never a new session), so the
// supervisor can always track and terminate it.
func configureProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// SignalStop sends SIGTERM to the process or its process group.
func SignalStop(cmd *exec.Cmd) error {
	if usesProcessGroup(cmd) {
		// Negative PID signals the whole group
		if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM); err != nil {
			return fmt.Errorf("failed to send SIGTERM to process group: %w", err)
		}
		return nil
	}
	if err := cmd.Process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send SIGTERM: %w", err)
	}
	return nil
}

// SignalKill sends SIGKILL to the process or its process group.
func SignalKill(cmd *exec.Cmd) error {
	if usesProcessGroup(cmd) {
		if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil {
			return fmt.Errorf("failed to kill process group: %w", err)
		}
		return nil
	}
	if err := cmd.Process.Kill(); err != nil {
		return fmt.Errorf("failed to kill process: %w", err)
	}
	return nil
}

func usesProcessGroup(cmd *exec.Cmd) bool {
	return cmd.SysProcAttr != nil && cmd.SysProcAttr.Setpgid
}
