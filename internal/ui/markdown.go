package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/muesli/termenv"

	"github.com/samsaffron/streamui/internal/ui/mdterm"
)

// Markdown engine names accepted by NewMarkdownEngine.
const (
	EngineNative  = "native"
	EngineGlamour = "glamour"
)

// MarkdownEngine renders markdown for a terminal width columns wide.
// Implementations must not rewrap fenced code.
type MarkdownEngine interface {
	Render(markdown string, width int) (string, error)
}

// NewMarkdownEngine returns the named engine styled by styles.
func NewMarkdownEngine(name string, styles *Styles, highlight bool) (MarkdownEngine, error) {
	switch name {
	case "", EngineNative:
		return NewNativeEngine(styles, highlight), nil
	case EngineGlamour:
		return NewGlamourEngine(styles, highlight), nil
	default:
		return nil, fmt.Errorf("unknown markdown engine %q", name)
	}
}

// NewNativeEngine returns the goldmark-based renderer with theme-derived
// element styles.
func NewNativeEngine(styles *Styles, highlight bool) *mdterm.Renderer {
	return mdterm.New(
		mdterm.WithColorProfile(styles.Profile()),
		mdterm.WithStyles(styles.MarkdownStyles()),
		mdterm.WithHighlighting(highlight),
	)
}

// GlamourEngine renders through glamour. Creating a glamour renderer is
// expensive, so one is cached per width.
type GlamourEngine struct {
	style   ansi.StyleConfig
	profile termenv.Profile

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// NewGlamourEngine creates a glamour engine for the styles' theme and
// color profile.
func NewGlamourEngine(styles *Styles, highlight bool) *GlamourEngine {
	style := GlamourStyleFromTheme(styles.Theme())
	if !highlight {
		style.CodeBlock.Chroma = nil
	}
	return &GlamourEngine{
		style:     style,
		profile:   styles.Profile(),
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// renderer returns a cached renderer for the given width, creating one if
// needed. Callers hold e.mu.
func (e *GlamourEngine) renderer(width int) (*glamour.TermRenderer, error) {
	if r, ok := e.renderers[width]; ok {
		return r, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(e.style),
		glamour.WithColorProfile(e.profile),
		glamour.WithWordWrap(max(width, 0)),
	)
	if err != nil {
		return nil, err
	}
	e.renderers[width] = r
	return r, nil
}

// Render renders markdown with glamour. A TermRenderer reuses an internal
// buffer, so renders are serialized.
func (e *GlamourEngine) Render(markdown string, width int) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, err := e.renderer(width)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(markdown)
	if err != nil {
		return "", err
	}

	return strings.Trim(rendered, "\n"), nil
}
