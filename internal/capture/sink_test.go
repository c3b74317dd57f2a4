package capture

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/procmux/internal/logger"
)

func TestSink_StdioRouting(t *testing.T) {
	var stdout, stderr bytes.Buffer
	s := NewSink("", logger.Nop())
	s.Stdout = &stdout
	s.Stderr = &stderr

	s.Emit(Stdout, "normal line")
	s.Emit(Stderr, "error line")

	assert.Equal(t, "normal line\n", stdout.String())
	assert.Equal(t, "error line\n", stderr.String())
}

func TestSink_LogFileAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proc.log")
	s := NewSink(path, logger.Nop())

	s.Emit(Stdout, "first")
	s.Emit(Stderr, "second")
	s.Emit(Stdout, "third")
	s.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\nthird\n", string(data))
}

func TestSink_AppendsAcrossReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proc.log")

	s1 := NewSink(path, logger.Nop())
	s1.Emit(Stdout, "from first sink")
	s1.Close()

	s2 := NewSink(path, logger.Nop())
	s2.Emit(Stdout, "from second sink")
	s2.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from first sink\nfrom second sink\n", string(data))
}

func TestSink_WriteFaultIsSwallowed(t *testing.T) {
	var diag bytes.Buffer
	// Parent directory does not exist, so the open fails
	s := NewSink(filepath.Join(t.TempDir(), "missing", "proc.log"), logger.New(logger.WithOutput(&diag)))

	// Must not panic and must not propagate
	s.Emit(Stdout, "lost line")
	s.Close()

	assert.Contains(t, diag.String(), "failed to open log file")
}
