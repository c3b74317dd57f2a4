//go:build !windows

package supervisor

import (
	"os"
	"syscall"
)

// terminationSignal names the signal that ended the process, if any.
func terminationSignal(ps *os.ProcessState) string {
	ws, ok := ps.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return ""
	}
	return ws.Signal().String()
}
