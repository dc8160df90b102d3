package ui

import (
	"io"

	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/samsaffron/streamui/internal/ui/mdterm"
)

// Theme defines the color palette for rendered output
type Theme struct {
	Primary   lipgloss.Color // strong text, inline code, check marks
	Secondary lipgloss.Color // headings, tool names, links
	Success   lipgloss.Color // function names in code
	Error     lipgloss.Color // error messages and badges
	Warning   lipgloss.Color // durations, retry reasons, emphasis
	Muted     lipgloss.Color // dimmed/secondary text
	Text      lipgloss.Color // primary text
	Border    lipgloss.Color // quote bars, rules, table borders
}

// DefaultTheme returns the default color theme (gruvbox)
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#b8bb26"), // gruvbox green
		Secondary: lipgloss.Color("#83a598"), // gruvbox aqua
		Success:   lipgloss.Color("#b8bb26"), // gruvbox green
		Error:     lipgloss.Color("#fb4934"), // gruvbox red
		Warning:   lipgloss.Color("#fabd2f"), // gruvbox yellow
		Muted:     lipgloss.Color("#928374"), // gruvbox gray
		Text:      lipgloss.Color("#ebdbb2"), // gruvbox foreground
		Border:    lipgloss.Color("#83a598"), // gruvbox aqua (matches secondary)
	}
}

// ThemeConfig mirrors config.ThemeConfig for applying overrides
type ThemeConfig struct {
	Preset    string
	Primary   string
	Secondary string
	Success   string
	Error     string
	Warning   string
	Muted     string
	Text      string
}

// ThemeFromConfig creates a theme from the named preset (or the default)
// with per-color overrides applied. Unknown presets use the default theme.
func ThemeFromConfig(cfg ThemeConfig) *Theme {
	theme := DefaultTheme()
	if preset, ok := PresetThemes[cfg.Preset]; ok {
		theme = applyThemeOverrides(theme, preset.Config)
	}
	return applyThemeOverrides(theme, cfg)
}

func applyThemeOverrides(theme *Theme, cfg ThemeConfig) *Theme {
	if cfg.Primary != "" {
		theme.Primary = lipgloss.Color(cfg.Primary)
	}
	if cfg.Secondary != "" {
		theme.Secondary = lipgloss.Color(cfg.Secondary)
		theme.Border = lipgloss.Color(cfg.Secondary) // border follows secondary
	}
	if cfg.Success != "" {
		theme.Success = lipgloss.Color(cfg.Success)
	}
	if cfg.Error != "" {
		theme.Error = lipgloss.Color(cfg.Error)
	}
	if cfg.Warning != "" {
		theme.Warning = lipgloss.Color(cfg.Warning)
	}
	if cfg.Muted != "" {
		theme.Muted = lipgloss.Color(cfg.Muted)
	}
	if cfg.Text != "" {
		theme.Text = lipgloss.Color(cfg.Text)
	}
	return theme
}

// ResolveColorProfile maps a color mode ("auto", "always", "never") to the
// profile used for output written to w.
func ResolveColorProfile(mode string, w io.Writer) termenv.Profile {
	switch mode {
	case "never":
		return termenv.Ascii
	case "always":
		p := termenv.NewOutput(w, termenv.WithTTY(true)).ColorProfile()
		if p == termenv.Ascii {
			return termenv.ANSI
		}
		return p
	default:
		return termenv.NewOutput(w).EnvColorProfile()
	}
}

// Styles returns styled text helpers bound to a color profile
type Styles struct {
	renderer *lipgloss.Renderer
	theme    *Theme

	Title       lipgloss.Style
	Muted       lipgloss.Style
	Success     lipgloss.Style
	Error       lipgloss.Style
	Warning     lipgloss.Style
	Bold        lipgloss.Style
	Highlighted lipgloss.Style

	ToolName   lipgloss.Style // tool names in start/result lines
	Duration   lipgloss.Style // elapsed times
	ErrorBadge lipgloss.Style // the ERROR suffix on failed tools
	Dim        lipgloss.Style // error detail text
}

// NewStyles creates styles for the given profile and theme. Output does not
// depend on the process's terminal.
func NewStyles(profile termenv.Profile, theme *Theme) *Styles {
	r := mdterm.NewLipglossRenderer(profile)

	return &Styles{
		renderer: r,
		theme:    theme,

		Title: r.NewStyle().
			Bold(true).
			Foreground(theme.Text),

		Muted: r.NewStyle().
			Foreground(theme.Muted),

		Success: r.NewStyle().
			Foreground(theme.Success),

		Error: r.NewStyle().
			Foreground(theme.Error),

		Warning: r.NewStyle().
			Foreground(theme.Warning),

		Bold: r.NewStyle().
			Bold(true),

		Highlighted: r.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		ToolName: r.NewStyle().
			Foreground(theme.Secondary),

		Duration: r.NewStyle().
			Foreground(theme.Warning),

		ErrorBadge: r.NewStyle().
			Bold(true).
			Foreground(theme.Error),

		Dim: r.NewStyle().
			Faint(true),
	}
}

// PlainStyles returns styles that emit no escape sequences.
func PlainStyles() *Styles {
	return NewStyles(termenv.Ascii, DefaultTheme())
}

// Theme returns the theme used by these styles
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Profile returns the color profile these styles render for.
func (s *Styles) Profile() termenv.Profile {
	return s.renderer.ColorProfile()
}

// MarkdownStyles derives the element styles of the native markdown engine
// from the theme.
func (s *Styles) MarkdownStyles() mdterm.Styles {
	r, t := s.renderer, s.theme
	return mdterm.Styles{
		Text:          r.NewStyle(),
		Heading:       r.NewStyle().Bold(true).Foreground(t.Secondary),
		Strong:        r.NewStyle().Bold(true).Foreground(t.Primary),
		Emph:          r.NewStyle().Italic(true).Foreground(t.Warning),
		Strikethrough: r.NewStyle().Strikethrough(true),
		Code:          r.NewStyle().Foreground(t.Primary),
		Link:          r.NewStyle().Underline(true).Foreground(t.Secondary),
		LinkURL:       r.NewStyle().Foreground(t.Muted),
		QuoteBar:      r.NewStyle().Foreground(t.Border),
		QuoteText:     r.NewStyle().Italic(true).Foreground(t.Warning),
		ListMarker:    r.NewStyle().Foreground(t.Secondary),
		Rule:          r.NewStyle().Foreground(t.Muted),
		TableBorder:   r.NewStyle().Foreground(t.Border),
		Muted:         r.NewStyle().Foreground(t.Muted),
	}
}

// GlamourStyleFromTheme creates a glamour StyleConfig from the given theme.
// Document margins are zero so wrapped lines use the full width.
func GlamourStyleFromTheme(theme *Theme) ansi.StyleConfig {
	primary := string(theme.Primary)
	secondary := string(theme.Secondary)
	success := string(theme.Success)
	warning := string(theme.Warning)
	muted := string(theme.Muted)
	text := string(theme.Text)

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: &text,
			},
			Margin: uintPtr(0),
		},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color:  &warning,
				Italic: boolPtr(true),
			},
			Indent:      uintPtr(1),
			IndentToken: stringPtr("│ "),
		},
		List: ansi.StyleList{
			LevelIndent: 2,
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{
					Color: &text,
				},
			},
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockSuffix: "\n",
				Color:       &secondary,
				Bold:        boolPtr(true),
			},
		},
		H1: headingLevel("# "),
		H2: headingLevel("## "),
		H3: headingLevel("### "),
		H4: headingLevel("#### "),
		H5: headingLevel("##### "),
		H6: headingLevel("###### "),
		Strikethrough: ansi.StylePrimitive{
			CrossedOut: boolPtr(true),
		},
		Emph: ansi.StylePrimitive{
			Color:  &warning,
			Italic: boolPtr(true),
		},
		Strong: ansi.StylePrimitive{
			Bold:  boolPtr(true),
			Color: &primary,
		},
		HorizontalRule: ansi.StylePrimitive{
			Color:  &muted,
			Format: "\n────────\n",
		},
		Item: ansi.StylePrimitive{
			BlockPrefix: "• ",
		},
		Enumeration: ansi.StylePrimitive{
			BlockPrefix: ". ",
			Color:       &secondary,
		},
		Task: ansi.StyleTask{
			Ticked:   "[✓] ",
			Unticked: "[ ] ",
		},
		Link: ansi.StylePrimitive{
			Color:     &secondary,
			Underline: boolPtr(true),
		},
		LinkText: ansi.StylePrimitive{
			Color: &primary,
		},
		Image: ansi.StylePrimitive{
			Color:     &secondary,
			Underline: boolPtr(true),
		},
		ImageText: ansi.StylePrimitive{
			Color:  &muted,
			Format: "Image: {{.text}} →",
		},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: &primary,
			},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{
					Color: &text,
				},
				Margin: uintPtr(0),
			},
			Chroma: &ansi.Chroma{
				Text:                ansi.StylePrimitive{Color: &text},
				Comment:             ansi.StylePrimitive{Color: &muted},
				CommentPreproc:      ansi.StylePrimitive{Color: &muted},
				Keyword:             ansi.StylePrimitive{Color: &primary},
				KeywordReserved:     ansi.StylePrimitive{Color: &primary},
				KeywordNamespace:    ansi.StylePrimitive{Color: &primary},
				KeywordType:         ansi.StylePrimitive{Color: &secondary},
				Operator:            ansi.StylePrimitive{Color: &text},
				Punctuation:         ansi.StylePrimitive{Color: &text},
				Name:                ansi.StylePrimitive{Color: &text},
				NameBuiltin:         ansi.StylePrimitive{Color: &secondary},
				NameTag:             ansi.StylePrimitive{Color: &primary},
				NameAttribute:       ansi.StylePrimitive{Color: &success},
				NameConstant:        ansi.StylePrimitive{Color: &secondary},
				NameDecorator:       ansi.StylePrimitive{Color: &success},
				NameFunction:        ansi.StylePrimitive{Color: &success},
				LiteralNumber:       ansi.StylePrimitive{Color: &secondary},
				LiteralString:       ansi.StylePrimitive{Color: &warning},
				LiteralStringEscape: ansi.StylePrimitive{Color: &primary},
				GenericDeleted:      ansi.StylePrimitive{Color: &muted},
				GenericEmph:         ansi.StylePrimitive{Italic: boolPtr(true)},
				GenericInserted:     ansi.StylePrimitive{Color: &success},
				GenericStrong:       ansi.StylePrimitive{Bold: boolPtr(true)},
				GenericSubheading:   ansi.StylePrimitive{Color: &secondary},
			},
		},
		Table: ansi.StyleTable{
			CenterSeparator: stringPtr("┼"),
			ColumnSeparator: stringPtr("│"),
			RowSeparator:    stringPtr("─"),
		},
	}
}

func headingLevel(prefix string) ansi.StyleBlock {
	return ansi.StyleBlock{
		StylePrimitive: ansi.StylePrimitive{
			Prefix: prefix,
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func uintPtr(u uint) *uint {
	return &u
}

func stringPtr(s string) *string {
	return &s
}
