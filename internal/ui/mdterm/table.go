package mdterm

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	east "github.com/yuin/goldmark/extension/ast"
)

// renderTable lays a GFM table out in aligned columns. When the columns do
// not fit the width, each row is instead wrapped as a single line of cells.
func (r *Renderer) renderTable(t *east.Table, src []byte, st state) []string {
	var rows [][]string
	header := -1
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		sp := st.base
		if _, ok := row.(*east.TableHeader); ok {
			sp = sp.with(r.styles.Strong)
			header = len(rows)
		}
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, r.inline(cell, src, sp))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return nil
	}

	cols := 0
	for _, cells := range rows {
		cols = max(cols, len(cells))
	}
	widths := make([]int, cols)
	for _, cells := range rows {
		for i, c := range cells {
			widths[i] = max(widths[i], ansi.StringWidth(c))
		}
	}
	total := 3 * (cols - 1)
	for _, w := range widths {
		total += w
	}

	sep := " " + r.styles.TableBorder.Render("│") + " "
	if st.width > 0 && total > st.width {
		var out []string
		for i, cells := range rows {
			out = append(out, Wrap(strings.Join(cells, sep), st.width)...)
			if i == header {
				out = append(out, r.styles.TableBorder.Render(strings.Repeat(ruleGlyph, st.width)))
			}
		}
		return out
	}

	var out []string
	for i, cells := range rows {
		padded := make([]string, cols)
		for j := range padded {
			cell := ""
			if j < len(cells) {
				cell = cells[j]
			}
			align := east.AlignNone
			if j < len(t.Alignments) {
				align = t.Alignments[j]
			}
			padded[j] = pad(cell, widths[j], align)
		}
		out = append(out, strings.TrimRight(strings.Join(padded, sep), " "))
		if i == header {
			rule := make([]string, cols)
			for j, w := range widths {
				rule[j] = strings.Repeat(ruleGlyph, w)
			}
			out = append(out, r.styles.TableBorder.Render(strings.Join(rule, "─┼─")))
		}
	}
	return out
}

func pad(s string, width int, align east.Alignment) string {
	gap := width - ansi.StringWidth(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case east.AlignRight:
		return strings.Repeat(" ", gap) + s
	case east.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}
