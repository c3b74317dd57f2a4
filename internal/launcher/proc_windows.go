//go:build windows

package launcher

import (
	"fmt"
	"os/exec"
	"syscall"
)

// configureProcessGroup creates a new process group on Windows so the child
// can be managed independently of the supervisor's console group.
func configureProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= syscall.CREATE_NEW_PROCESS_GROUP
}

// SignalStop stops the process. Windows has no SIGTERM, so this terminates
// the process directly.
func SignalStop(cmd *exec.Cmd) error {
	if err := cmd.Process.Kill(); err != nil {
		return fmt.Errorf("failed to stop process: %w", err)
	}
	return nil
}

// SignalKill forcefully terminates the process.
func SignalKill(cmd *exec.Cmd) error {
	if err := cmd.Process.Kill(); err != nil {
		return fmt.Errorf("failed to kill process: %w", err)
	}
	return nil
}
