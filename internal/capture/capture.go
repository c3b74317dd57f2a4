// Package capture turns the raw byte streams of a supervised process into
// discrete, newline-delimited lines and routes them to a configured
// destination (a log file or the supervisor's own standard streams).
package capture

import (
	"regexp"
	"strings"
	"sync"
)

// Stream identifies which output channel a line arrived on.
type Stream string

const (
	// Stdout is the process's normal output stream
	Stdout Stream = "stdout"
	// Stderr is the process's error output stream
	Stderr Stream = "stderr"
)

// lineBreaks matches any run of newline and carriage-return characters.
// A run counts as a single line break, so "\r\n" never produces an empty line.
var lineBreaks = regexp.MustCompile(`[\r\n]+`)

// LineBuffer assembles complete lines from arbitrary byte chunks. The
// trailing fragment of a chunk that is not yet newline-terminated is retained
// and prepended to the next chunk. LineBuffer implements io.Writer so it can
// be the target of a stream drain loop.
type LineBuffer struct {
	mu      sync.Mutex
	pending string
	emit    func(line string)
}

// NewLineBuffer creates a LineBuffer that passes each completed line to emit.
func NewLineBuffer(emit func(line string)) *LineBuffer {
	return &LineBuffer{emit: emit}
}

// Write appends a chunk of raw output, emitting every line it completes.
// It never fails; the return values satisfy io.Writer.
func (b *LineBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	segments := lineBreaks.Split(b.pending+string(p), -1)
	for _, line := range segments[:len(segments)-1] {
		b.emit(line)
	}
	b.pending = segments[len(segments)-1]

	return len(p), nil
}

// Flush emits the pending fragment as a line if it is non-empty after
// trimming surrounding whitespace, then clears it. Calling Flush with an
// empty buffer is a no-op, so redundant flushes are safe.
func (b *LineBuffer) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if line := strings.TrimSpace(b.pending); line != "" {
		b.emit(line)
	}
	b.pending = ""
}

// Capture wires one process's stdout and stderr into a Sink, one LineBuffer
// per stream. Lines on the same stream keep their arrival order; no ordering
// is guaranteed between the two streams.
type Capture struct {
	out  *LineBuffer
	err  *LineBuffer
	sink *Sink
}

// New creates a Capture emitting into sink.
func New(sink *Sink) *Capture {
	return &Capture{
		out:  NewLineBuffer(func(line string) { sink.Emit(Stdout, line) }),
		err:  NewLineBuffer(func(line string) { sink.Emit(Stderr, line) }),
		sink: sink,
	}
}

// Stdout returns the writer for the process's normal output stream.
func (c *Capture) Stdout() *LineBuffer { return c.out }

// Stderr returns the writer for the process's error output stream.
func (c *Capture) Stderr() *LineBuffer { return c.err }

// Flush forces any buffered partial output on both streams to be emitted.
// Safe to call multiple times and after the process has terminated.
func (c *Capture) Flush() {
	c.out.Flush()
	c.err.Flush()
}

// Close flushes both streams and releases the sink's file handle, if any.
func (c *Capture) Close() {
	c.Flush()
	c.sink.Close()
}
