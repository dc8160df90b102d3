package ui

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/samsaffron/streamui/internal/ui/mdterm"
)

// TextBuffer accumulates streamed text and renders it as terminal markdown
// on demand. Text is pushed as chunks arrive and flushed at boundaries the
// caller picks (a timer tick, a tool call, the end of the stream); each
// flush renders everything pending and empties the buffer.
//
// A TextBuffer is not safe for concurrent use. One goroutine owns it.
type TextBuffer struct {
	content strings.Builder

	// fixedWidth is the render width, or 0 to query the terminal on every
	// render.
	fixedWidth   int
	defaultWidth int
	widthFunc    func() (int, bool)
	engine       MarkdownEngine
}

// TextBufferOption configures a TextBuffer.
type TextBufferOption func(*TextBuffer)

// WithMarkdownEngine sets the engine used to render flushed text.
func WithMarkdownEngine(e MarkdownEngine) TextBufferOption {
	return func(b *TextBuffer) {
		if e != nil {
			b.engine = e
		}
	}
}

// WithWidthFunc replaces the terminal width query used in auto-width mode.
// fn reports false when the width is unknown.
func WithWidthFunc(fn func() (int, bool)) TextBufferOption {
	return func(b *TextBuffer) {
		if fn != nil {
			b.widthFunc = fn
		}
	}
}

// WithDefaultWidth sets the width used when the terminal cannot be queried.
func WithDefaultWidth(n int) TextBufferOption {
	return func(b *TextBuffer) {
		if n > 0 {
			b.defaultWidth = n
		}
	}
}

// NewTextBuffer creates a buffer that renders at the terminal's current
// width, falling back to DefaultWidth.
func NewTextBuffer(opts ...TextBufferOption) *TextBuffer {
	b := &TextBuffer{
		defaultWidth: DefaultWidth,
		widthFunc:    TerminalWidth,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.engine == nil {
		styles := NewStyles(ResolveColorProfile("auto", os.Stdout), DefaultTheme())
		b.engine = NewNativeEngine(styles, true)
	}
	return b
}

// NewTextBufferWithWidth creates a buffer that always renders at width
// columns. It panics if width is not positive.
func NewTextBufferWithWidth(width int, opts ...TextBufferOption) *TextBuffer {
	if width <= 0 {
		panic(fmt.Sprintf("ui: text buffer width must be positive, got %d", width))
	}
	b := NewTextBuffer(opts...)
	b.fixedWidth = width
	return b
}

// Push appends chunk verbatim.
func (b *TextBuffer) Push(chunk string) {
	b.content.WriteString(chunk)
}

// Write appends p. It never fails.
func (b *TextBuffer) Write(p []byte) (int, error) {
	return b.content.Write(p)
}

// WriteString appends s. It never fails.
func (b *TextBuffer) WriteString(s string) (int, error) {
	return b.content.WriteString(s)
}

// IsEmpty reports whether no text is pending.
func (b *TextBuffer) IsEmpty() bool {
	return b.content.Len() == 0
}

// Len returns the number of pending bytes.
func (b *TextBuffer) Len() int {
	return b.content.Len()
}

// Width returns the width the next render would use.
func (b *TextBuffer) Width() int {
	if b.fixedWidth > 0 {
		return b.fixedWidth
	}
	if w, ok := b.widthFunc(); ok && w > 0 {
		return w
	}
	return b.defaultWidth
}

// Flush renders all pending text and empties the buffer. The result ends
// in exactly one blank line. ok is false when nothing was pending or the
// text rendered to nothing visible.
//
// Text that ends inside an unfinished construct renders as it stands: an
// open code fence as a code block, an unclosed emphasis marker literally.
func (b *TextBuffer) Flush() (string, bool) {
	if b.content.Len() == 0 {
		return "", false
	}
	text := b.content.String()
	b.content.Reset()
	return b.render(text)
}

// FlushReady renders pending text up to the last safe boundary (see
// FindSafeBoundary) and keeps the rest buffered. Use it while streaming to
// avoid rendering half-finished constructs, then Flush at the end of the
// stream.
func (b *TextBuffer) FlushReady() (string, bool) {
	text := b.content.String()
	cut := FindSafeBoundary(text)
	if cut <= 0 {
		return "", false
	}
	b.content.Reset()
	b.content.WriteString(text[cut:])
	return b.render(text[:cut])
}

func (b *TextBuffer) render(text string) (string, bool) {
	out := NormalizeTrailingNewlines(b.renderMarkdown(text, b.Width()), BlockTrailingNewlines)
	if out == "" {
		return "", false
	}
	return out, true
}

// renderMarkdown renders text with the engine. Engine failures fall back to
// the raw text word-wrapped to width.
func (b *TextBuffer) renderMarkdown(text string, width int) (out string) {
	defer func() {
		if p := recover(); p != nil {
			slog.Warn("markdown engine panicked, using raw text", "panic", p)
			out = wrapRaw(text, width)
		}
	}()

	rendered, err := b.engine.Render(text, width)
	if err != nil {
		slog.Warn("markdown render failed, using raw text", "error", err)
		return wrapRaw(text, width)
	}
	return rendered
}

func wrapRaw(text string, width int) string {
	return strings.Join(mdterm.Wrap(text, width), "\n")
}
