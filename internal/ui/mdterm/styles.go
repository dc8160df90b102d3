package mdterm

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles applied to markdown elements.
// Styles are applied one word at a time, so only character attributes
// (colors, bold, italic, ...) are meaningful; padding and margins are ignored.
type Styles struct {
	Text          lipgloss.Style
	Heading       lipgloss.Style
	Strong        lipgloss.Style
	Emph          lipgloss.Style
	Strikethrough lipgloss.Style
	Code          lipgloss.Style
	Link          lipgloss.Style
	LinkURL       lipgloss.Style
	QuoteBar      lipgloss.Style
	QuoteText     lipgloss.Style
	ListMarker    lipgloss.Style
	Rule          lipgloss.Style
	TableBorder   lipgloss.Style
	Muted         lipgloss.Style
}

// NewLipglossRenderer returns a lipgloss renderer pinned to profile, so
// style output does not depend on whatever stdout happens to be.
func NewLipglossRenderer(profile termenv.Profile) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	return r
}

// DefaultStyles returns a neutral palette built on r.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Text:          r.NewStyle(),
		Heading:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Strong:        r.NewStyle().Bold(true),
		Emph:          r.NewStyle().Italic(true),
		Strikethrough: r.NewStyle().Strikethrough(true),
		Code:          r.NewStyle().Foreground(lipgloss.Color("3")),
		Link:          r.NewStyle().Foreground(lipgloss.Color("4")).Underline(true),
		LinkURL:       r.NewStyle().Faint(true),
		QuoteBar:      r.NewStyle().Foreground(lipgloss.Color("8")),
		QuoteText:     r.NewStyle().Italic(true),
		ListMarker:    r.NewStyle().Foreground(lipgloss.Color("6")),
		Rule:          r.NewStyle().Foreground(lipgloss.Color("8")),
		TableBorder:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Muted:         r.NewStyle().Faint(true),
	}
}
