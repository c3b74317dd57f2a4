package capture

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/aki/procmux/internal/logger"
)

// Sink routes finished lines to their destination. When a log path is
// configured, lines from both streams are appended to that file in arrival
// order, each terminated by a single newline. Without a log path, stdout
// lines go to the supervisor's own standard output and stderr lines to its
// error output.
//
// Appends are best-effort: a write fault is reported through the diagnostics
// logger and never propagates back to the supervised process or its caller.
type Sink struct {
	logPath string
	log     logger.Logger

	// Stdout and Stderr are the fallback destinations when no log path is
	// configured. They default to the supervisor's own streams and are
	// injectable for tests.
	Stdout io.Writer
	Stderr io.Writer

	mu   sync.Mutex
	file *os.File
}

// NewSink creates a Sink. An empty logPath routes output to the
// supervisor's standard streams.
func NewSink(logPath string, log logger.Logger) *Sink {
	if log == nil {
		log = logger.Nop()
	}
	return &Sink{
		logPath: logPath,
		log:     log,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Emit writes one finished line to the configured destination.
func (s *Sink) Emit(stream Stream, line string) {
	if s.logPath == "" {
		w := s.Stdout
		if stream == Stderr {
			w = s.Stderr
		}
		fmt.Fprintln(w, line)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		f, err := os.OpenFile(s.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			s.log.Error("failed to open log file", "path", s.logPath, "error", err)
			return
		}
		s.file = f
	}

	if _, err := s.file.WriteString(line + "\n"); err != nil {
		s.log.Error("failed to append to log file", "path", s.logPath, "error", err)
	}
}

// Close releases the log file handle, if one was opened.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		if err := s.file.Close(); err != nil {
			s.log.Error("failed to close log file", "path", s.logPath, "error", err)
		}
		s.file = nil
	}
}
