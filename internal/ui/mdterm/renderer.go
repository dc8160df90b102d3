// Package mdterm renders markdown into styled, word-wrapped terminal text.
//
// The document is parsed with goldmark and walked block by block. Prose is
// styled one word at a time and wrapped at whitespace to the requested
// width, with list markers and quote bars narrowing the column available to
// their content. Code blocks are emitted line for line without rewrapping.
//
// Parsing never fails: input that ends inside a construct renders the way
// goldmark reads it at that point (an open fence is a code block running to
// the end, an unclosed emphasis marker is literal text).
package mdterm

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

const (
	quoteBar  = "│"
	ruleGlyph = "─"
	checked   = "[✓]"
	unchecked = "[ ]"
)

var bullets = []string{"•", "◦", "▪"}

// Renderer converts markdown to terminal text. It holds no per-call state
// and is safe for concurrent use.
type Renderer struct {
	md          goldmark.Markdown
	styles      Styles
	stylesSet   bool
	profile     termenv.Profile
	highlight   bool
	chromaStyle *chroma.Style
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyles sets the element styles.
func WithStyles(s Styles) Option {
	return func(r *Renderer) {
		r.styles = s
		r.stylesSet = true
	}
}

// WithColorProfile sets the profile used for code highlighting and, unless
// WithStyles is also given, for the default styles.
func WithColorProfile(p termenv.Profile) Option {
	return func(r *Renderer) {
		r.profile = p
	}
}

// WithHighlighting toggles chroma highlighting of fenced code blocks that
// name a known language.
func WithHighlighting(enabled bool) Option {
	return func(r *Renderer) {
		r.highlight = enabled
	}
}

// WithChromaStyle selects the chroma style by name. Unknown names fall back
// to chroma's default.
func WithChromaStyle(name string) Option {
	return func(r *Renderer) {
		if s := styles.Get(name); s != nil {
			r.chromaStyle = s
		}
	}
}

// New creates a Renderer. Without options it produces uncolored output.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		md:          goldmark.New(goldmark.WithExtensions(extension.GFM)),
		profile:     termenv.Ascii,
		highlight:   true,
		chromaStyle: styles.Get("monokai"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.chromaStyle == nil {
		r.chromaStyle = styles.Fallback
	}
	if !r.stylesSet {
		r.styles = DefaultStyles(NewLipglossRenderer(r.profile))
	}
	return r
}

// Render renders markdown for a terminal width columns wide. A width of zero
// or less disables wrapping. The result has no trailing newline.
func (r *Renderer) Render(markdown string, width int) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("mdterm: render failed: %v", p)
		}
	}()

	src := []byte(markdown)
	doc := r.md.Parser().Parse(text.NewReader(src))
	lines := r.renderBlocks(doc, src, state{width: width, base: plain(r.styles.Text)})
	return strings.Join(lines, "\n"), nil
}

// state carries the layout context down the block tree.
type state struct {
	width     int
	tight     bool
	base      span
	listDepth int
}

func (s state) narrower(n int) state {
	s.width = shrink(s.width, n)
	return s
}

// renderBlocks renders the block children of parent, separating them by a
// blank line unless they belong to a tight list item.
func (r *Renderer) renderBlocks(parent ast.Node, src []byte, st state) []string {
	var out []string
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		lines := r.renderBlock(n, src, st)
		if len(lines) == 0 {
			continue
		}
		if len(out) > 0 && !st.tight {
			out = append(out, "")
		}
		out = append(out, lines...)
	}
	return out
}

func (r *Renderer) renderBlock(n ast.Node, src []byte, st state) []string {
	switch n := n.(type) {
	case *ast.Heading:
		return r.renderHeading(n, src, st)
	case *ast.Paragraph, *ast.TextBlock:
		return Wrap(r.inline(n, src, st.base), st.width)
	case *ast.FencedCodeBlock:
		return r.highlightCode(codeLines(n.Lines(), src), string(n.Language(src)))
	case *ast.CodeBlock:
		return codeLines(n.Lines(), src)
	case *ast.Blockquote:
		return r.renderBlockquote(n, src, st)
	case *ast.List:
		return r.renderList(n, src, st)
	case *ast.ThematicBreak:
		width := st.width
		if width <= 0 {
			width = 40
		}
		return []string{r.styles.Rule.Render(strings.Repeat(ruleGlyph, width))}
	case *ast.HTMLBlock:
		lines := codeLines(n.Lines(), src)
		if n.HasClosure() {
			lines = append(lines, trimEOL(string(n.ClosureLine.Value(src))))
		}
		return lines
	case *east.Table:
		return r.renderTable(n, src, st)
	}

	if n.HasChildren() {
		return r.renderBlocks(n, src, st)
	}
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return codeLines(n.Lines(), src)
	}
	return nil
}

func (r *Renderer) renderHeading(n *ast.Heading, src []byte, st state) []string {
	sp := st.base.with(r.styles.Heading)
	var b strings.Builder
	writeStyled(&b, strings.Repeat("#", n.Level), sp)
	b.WriteByte(' ')
	b.WriteString(r.inline(n, src, sp))
	return Wrap(b.String(), st.width)
}

func (r *Renderer) renderBlockquote(n *ast.Blockquote, src []byte, st state) []string {
	inner := st.narrower(2)
	inner.tight = false
	inner.base = st.base.with(r.styles.QuoteText)

	bar := r.styles.QuoteBar.Render(quoteBar)
	lines := r.renderBlocks(n, src, inner)
	if len(lines) == 0 {
		return []string{bar}
	}
	for i, line := range lines {
		if line == "" {
			lines[i] = bar
			continue
		}
		lines[i] = bar + " " + line
	}
	return lines
}

func (r *Renderer) renderList(list *ast.List, src []byte, st state) []string {
	var markers []string
	number := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		if list.IsOrdered() {
			markers = append(markers, fmt.Sprintf("%d%c", number, list.Marker))
			number++
			continue
		}
		markers = append(markers, bullets[st.listDepth%len(bullets)])
	}

	markerWidth := 0
	for _, m := range markers {
		if w := ansi.StringWidth(m); w > markerWidth {
			markerWidth = w
		}
	}
	markerWidth++ // space between marker and content

	inner := st.narrower(markerWidth)
	inner.tight = list.IsTight
	inner.listDepth = st.listDepth + 1
	indent := strings.Repeat(" ", markerWidth)

	var out []string
	i := 0
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := markers[i]
		first := r.styles.ListMarker.Render(marker) + strings.Repeat(" ", markerWidth-ansi.StringWidth(marker))

		body := r.renderBlocks(item, src, inner)
		if len(body) == 0 {
			body = []string{""}
		}
		if i > 0 && !list.IsTight {
			out = append(out, "")
		}
		for j, line := range body {
			switch {
			case j == 0:
				out = append(out, strings.TrimRight(first+line, " "))
			case line == "":
				out = append(out, "")
			default:
				out = append(out, indent+line)
			}
		}
		i++
	}
	return out
}

// codeLines returns the raw source lines of a block without line endings.
func codeLines(segs *text.Segments, src []byte) []string {
	lines := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		line := trimEOL(string(seg.Value(src)))
		if seg.Padding > 0 {
			line = padding(seg, src) + line
		}
		lines = append(lines, line)
	}
	return lines
}

// padding restores the indentation goldmark cut from the front of seg. A
// tab only partly consumed by the enclosing block's indent is reported as
// padding columns; the tab itself is put back.
func padding(seg text.Segment, src []byte) string {
	if seg.Start > 0 && src[seg.Start-1] == '\t' {
		return "\t"
	}
	return strings.Repeat(" ", seg.Padding)
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
