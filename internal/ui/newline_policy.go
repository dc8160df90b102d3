package ui

import (
	"strings"

	"github.com/samsaffron/streamui/internal/logging"
)

const (
	// BlockTrailingNewlines is the exact trailing newline run of a flushed
	// block: the block's last line break plus one blank separator line. It
	// matches the padding the output sink applies to events.
	BlockTrailingNewlines = logging.BlockTrailingNewlines
	// MaxStreamingConsecutiveNewlines is the default cap on newline runs in
	// streamed prose.
	MaxStreamingConsecutiveNewlines = 2
)

// StreamingNewlineCompactor caps runs of newlines in streamed text before it
// reaches a TextBuffer. Blank lines inside ``` and ~~~ fences are code and
// pass through untouched. State carries across chunks, so a run or a fence
// split between two chunks is handled the same as one arriving whole.
type StreamingNewlineCompactor struct {
	maxRun int
	run    int
	line   strings.Builder
	fence  fenceTracker
}

// NewStreamingNewlineCompactor returns a compactor allowing at most maxRun
// consecutive newlines. A maxRun of zero or less uses
// MaxStreamingConsecutiveNewlines.
func NewStreamingNewlineCompactor(maxRun int) *StreamingNewlineCompactor {
	if maxRun <= 0 {
		maxRun = MaxStreamingConsecutiveNewlines
	}
	return &StreamingNewlineCompactor{maxRun: maxRun}
}

// CompactChunk returns chunk with prose newline runs capped to maxRun.
func (c *StreamingNewlineCompactor) CompactChunk(chunk string) string {
	if c == nil || chunk == "" {
		return chunk
	}
	var b strings.Builder
	b.Grow(len(chunk))
	for i := 0; i < len(chunk); i++ {
		ch := chunk[i]
		if ch != '\n' {
			c.run = 0
			c.line.WriteByte(ch)
			b.WriteByte(ch)
			continue
		}

		inFence := c.fence.line(c.line.String()) && c.fence.open()
		c.line.Reset()
		if inFence {
			c.run = 0
			b.WriteByte(ch)
			continue
		}
		c.run++
		if c.run <= c.maxRun {
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// NormalizeTrailingNewlines replaces the trailing newline run of s with
// exactly n newlines. Content that is empty once trailing newlines are
// removed yields "".
func NormalizeTrailingNewlines(s string, n int) string {
	trimmed := strings.TrimRight(s, "\n")
	if trimmed == "" {
		return ""
	}
	return trimmed + strings.Repeat("\n", n)
}
