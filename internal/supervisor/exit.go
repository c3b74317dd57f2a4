package supervisor

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ExitError reports abnormal termination of a supervised process: a
// non-zero exit code, a terminating signal, or both. The original code and
// signal are preserved so callers are not left with a generic failure.
type ExitError struct {
	// Code is the process exit code, or -1 when the process was signaled
	Code int
	// Signal names the terminating signal, empty when the process exited
	// on its own
	Signal string
}

func (e *ExitError) Error() string {
	bits := []string{fmt.Sprintf("code=%d", e.Code)}
	if e.Signal != "" {
		bits = append(bits, "signal="+e.Signal)
	}
	return "process exited with " + strings.Join(bits, ", ")
}

// exitOutcome translates the result of reaping the process into the terminal
// outcome delivered to the completion callback.
func exitOutcome(err error) error {
	if err == nil {
		return nil
	}

	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return &ExitError{
			Code:   ee.ProcessState.ExitCode(),
			Signal: terminationSignal(ee.ProcessState),
		}
	}

	return fmt.Errorf("process failed: %w", err)
}
