package logging

import (
	"io"
	"strings"
	"sync"
)

// BlockTrailingNewlines is the newline run a block ends with: its last line
// break plus one blank line before whatever is emitted next.
const BlockTrailingNewlines = 2

// WriterSink writes to an io.Writer. Each message reaches the writer in a
// single Write call made under a mutex, so concurrent emitters never
// interleave partial messages.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Emit writes message padded so it ends with a blank line.
func (s *WriterSink) Emit(message string) {
	s.write(PadTrailingNewlines(message, BlockTrailingNewlines))
}

// EmitLine writes message and a newline.
func (s *WriterSink) EmitLine(message string) {
	s.write(message + "\n")
}

func (s *WriterSink) write(p string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Sinks have no error channel; a broken writer drops output.
	_, _ = io.WriteString(s.w, p)
}

// TrailingNewlines returns how many '\n' characters end s.
func TrailingNewlines(s string) int {
	count := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\n'; i-- {
		count++
	}
	return count
}

// PadTrailingNewlines appends newlines to s until it ends in at least n.
// Longer runs are left alone.
func PadTrailingNewlines(s string, n int) string {
	if missing := n - TrailingNewlines(s); missing > 0 {
		return s + strings.Repeat("\n", missing)
	}
	return s
}

// Discard is a sink that drops everything.
var Discard Sink = discardSink{}

type discardSink struct{}

func (discardSink) Emit(string)     {}
func (discardSink) EmitLine(string) {}

// CaptureSink records messages in memory. It is safe for concurrent use.
type CaptureSink struct {
	mu     sync.Mutex
	blocks []string
	lines  []string
}

// NewCaptureSink creates an empty capture sink.
func NewCaptureSink() *CaptureSink {
	return &CaptureSink{}
}

func (c *CaptureSink) Emit(message string) {
	c.mu.Lock()
	c.blocks = append(c.blocks, message)
	c.mu.Unlock()
}

func (c *CaptureSink) EmitLine(message string) {
	c.mu.Lock()
	c.lines = append(c.lines, message)
	c.mu.Unlock()
}

// Blocks returns a copy of the messages received through Emit.
func (c *CaptureSink) Blocks() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.blocks...)
}

// Lines returns a copy of the messages received through EmitLine.
func (c *CaptureSink) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}
