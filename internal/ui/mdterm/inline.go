package mdterm

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"
)

// span is the style in effect for a run of inline text.
type span struct {
	style lipgloss.Style
}

func plain(s lipgloss.Style) span {
	return span{style: s}
}

// with layers s over the current style.
func (sp span) with(s lipgloss.Style) span {
	return span{style: s.Inherit(sp.style)}
}

// writeStyled writes s with each word rendered on its own, so escape
// sequences never cover whitespace and the wrapper can break anywhere a
// space is.
func writeStyled(b *strings.Builder, s string, sp span) {
	start := -1
	flush := func(end int) {
		if start >= 0 {
			b.WriteString(sp.style.Render(s[start:end]))
			start = -1
		}
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t':
			flush(i)
			b.WriteByte(' ')
		case '\n':
			flush(i)
			b.WriteByte('\n')
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(s))
}

// inline renders the inline children of n as one styled string. Soft line
// breaks become spaces; hard breaks stay newlines.
func (r *Renderer) inline(n ast.Node, src []byte, sp span) string {
	var b strings.Builder
	r.writeInline(&b, n, src, sp)
	return b.String()
}

func (r *Renderer) writeInline(b *strings.Builder, parent ast.Node, src []byte, sp span) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Text:
			writeStyled(b, textValue(n, src), sp)
			switch {
			case n.HardLineBreak():
				b.WriteByte('\n')
			case n.SoftLineBreak():
				b.WriteByte(' ')
			}
		case *ast.String:
			writeStyled(b, string(n.Value), sp)
		case *ast.CodeSpan:
			code := strings.ReplaceAll(plainText(n, src), "\n", " ")
			writeStyled(b, code, sp.with(r.styles.Code))
		case *ast.Emphasis:
			style := r.styles.Emph
			if n.Level >= 2 {
				style = r.styles.Strong
			}
			r.writeInline(b, n, src, sp.with(style))
		case *east.Strikethrough:
			r.writeInline(b, n, src, sp.with(r.styles.Strikethrough))
		case *ast.Link:
			label := r.inline(n, src, sp.with(r.styles.Link))
			b.WriteString(label)
			dest := string(n.Destination)
			if dest != "" && dest != ansi.Strip(label) {
				b.WriteByte(' ')
				writeStyled(b, "("+dest+")", sp.with(r.styles.LinkURL))
			}
		case *ast.AutoLink:
			writeStyled(b, string(n.Label(src)), sp.with(r.styles.Link))
		case *ast.Image:
			alt := plainText(n, src)
			if alt == "" {
				alt = "image"
			}
			writeStyled(b, "["+alt+"]", sp.with(r.styles.Muted))
			if dest := string(n.Destination); dest != "" {
				b.WriteByte(' ')
				writeStyled(b, "("+dest+")", sp.with(r.styles.LinkURL))
			}
		case *ast.RawHTML:
			var raw strings.Builder
			for i := 0; i < n.Segments.Len(); i++ {
				seg := n.Segments.At(i)
				raw.Write(seg.Value(src))
			}
			writeStyled(b, raw.String(), sp)
		case *east.TaskCheckBox:
			box := unchecked
			if n.IsChecked {
				box = checked
			}
			b.WriteString(r.styles.ListMarker.Render(box))
			b.WriteByte(' ')
		default:
			r.writeInline(b, n, src, sp)
		}
	}
}

// textValue returns the display form of a text node: backslash escapes
// dropped and entity and numeric character references resolved. Raw text,
// such as code span content, is returned unchanged.
func textValue(n *ast.Text, src []byte) string {
	v := n.Segment.Value(src)
	if n.IsRaw() {
		return string(v)
	}
	return string(util.UnescapePunctuations(util.ResolveNumericReferences(util.ResolveEntityNames(v))))
}

// plainText concatenates the text beneath n without styling.
func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.WriteString(textValue(c, src))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
