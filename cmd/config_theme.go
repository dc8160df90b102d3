package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/samsaffron/streamui/internal/ui"
	"github.com/samsaffron/streamui/internal/ui/mdterm"
)

// writeThemes prints a preview panel for every preset, marking current.
func writeThemes(w io.Writer, profile termenv.Profile, current string) error {
	if current == "" {
		current = ui.PresetThemeNames[0]
	}
	r := mdterm.NewLipglossRenderer(profile)

	panels := make([]string, 0, len(ui.PresetThemeNames))
	for _, name := range ui.PresetThemeNames {
		preset := ui.PresetThemes[name]
		panels = append(panels, renderThemePreview(r, profile, preset, name == current))
	}
	_, err := fmt.Fprintln(w, strings.Join(panels, "\n"))
	return err
}

// renderThemePreview renders a preview panel showing the theme colors
func renderThemePreview(r *lipgloss.Renderer, profile termenv.Profile, preset ui.ThemePreset, current bool) string {
	theme := ui.ThemeFromConfig(ui.ThemeConfig{Preset: preset.Name})
	s := ui.NewStyles(profile, theme)

	title := preset.Name
	if current {
		title += " (current)"
	}

	var b strings.Builder
	b.WriteString(s.Title.Render(title) + "\n")
	b.WriteString(s.Muted.Render(preset.Description) + "\n\n")
	b.WriteString(s.Highlighted.Render("● Primary: strong text") + "\n")
	b.WriteString(s.ToolName.Render("● Secondary: headings and tools") + "\n")
	b.WriteString(s.Success.Render("✓ Success message") + "\n")
	b.WriteString(s.Error.Render("✗ Error message") + "\n")
	b.WriteString(s.Warning.Render("⚠ Warning message") + "\n")
	b.WriteString(s.Muted.Render("○ Muted: explanation") + "\n\n")
	b.WriteString(strings.TrimSuffix(s.FormatToolExecuting("read_file", map[string]any{"path": "main.go"}), "\n") + "\n")
	b.WriteString(s.FormatToolResult("read_file", 0, 120, false))

	return r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(b.String())
}
