package ui

import "github.com/sahilm/fuzzy"

// ThemePreset is a named palette selectable with theme.preset.
type ThemePreset struct {
	Name        string
	Description string
	Config      ThemeConfig
}

// PresetThemeNames lists the presets in display order.
var PresetThemeNames = []string{
	"gruvbox",
	"dracula",
	"nord",
	"monokai",
	"classic",
}

// PresetThemes contains all predefined themes
var PresetThemes = map[string]ThemePreset{
	"gruvbox": {
		Name:        "gruvbox",
		Description: "Retro groove palette (default)",
	},
	"dracula": {
		Name:        "dracula",
		Description: "Dark palette with purple accents",
		Config: ThemeConfig{
			Primary:   "#bd93f9",
			Secondary: "#8be9fd",
			Success:   "#50fa7b",
			Error:     "#ff5555",
			Warning:   "#f1fa8c",
			Muted:     "#6272a4",
			Text:      "#f8f8f2",
		},
	},
	"nord": {
		Name:        "nord",
		Description: "Arctic blues",
		Config: ThemeConfig{
			Primary:   "#88c0d0",
			Secondary: "#81a1c1",
			Success:   "#a3be8c",
			Error:     "#bf616a",
			Warning:   "#ebcb8b",
			Muted:     "#4c566a",
			Text:      "#eceff4",
		},
	},
	"monokai": {
		Name:        "monokai",
		Description: "Matches the code highlighting palette",
		Config: ThemeConfig{
			Primary:   "#a6e22e",
			Secondary: "#66d9ef",
			Success:   "#a6e22e",
			Error:     "#f92672",
			Warning:   "#e6db74",
			Muted:     "#75715e",
			Text:      "#f8f8f2",
		},
	},
	"classic": {
		Name:        "classic",
		Description: "16-color terminal palette",
		Config: ThemeConfig{
			Primary:   "10",
			Secondary: "4",
			Success:   "10",
			Error:     "9",
			Warning:   "11",
			Muted:     "245",
			Text:      "15",
		},
	},
}

// IsPresetTheme reports whether name is a known preset. The empty name
// selects the default and is accepted.
func IsPresetTheme(name string) bool {
	if name == "" {
		return true
	}
	_, ok := PresetThemes[name]
	return ok
}

// SuggestPreset returns the preset name that best fuzzy-matches name, or ""
// when nothing matches.
func SuggestPreset(name string) string {
	matches := fuzzy.Find(name, PresetThemeNames)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
