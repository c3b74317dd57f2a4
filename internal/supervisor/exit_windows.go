//go:build windows

package supervisor

import "os"

// terminationSignal is a no-op on Windows, which has no Unix-style
// terminating signals to report.
func terminationSignal(ps *os.ProcessState) string {
	return ""
}
