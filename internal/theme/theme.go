package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the reader, including one color per
// tajwid highlighting category.
type Theme struct {
	Name string

	// Text colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color

	// UI element colors
	Border       lipgloss.Color
	BorderActive lipgloss.Color
	Highlight    lipgloss.Color

	// Tajwid category colors, keyed by rule id
	Tajwid map[string]lipgloss.Color
}

// Available themes
var (
	Mushaf = Theme{
		Name:         "Mushaf",
		Primary:      lipgloss.Color("#e8e3d3"),
		Secondary:    lipgloss.Color("#b8b09a"),
		Accent:       lipgloss.Color("#d4af37"),
		Muted:        lipgloss.Color("#6c6a60"),
		Error:        lipgloss.Color("#e06c75"),
		Border:       lipgloss.Color("#44453e"),
		BorderActive: lipgloss.Color("#d4af37"),
		Highlight:    lipgloss.Color("#3a3b33"),
		Tajwid: map[string]lipgloss.Color{
			"ghunnah":  lipgloss.Color("#98c379"),
			"iqlab":    lipgloss.Color("#61afef"),
			"idgham":   lipgloss.Color("#56b6c2"),
			"ikhfa":    lipgloss.Color("#c678dd"),
			"qalqalah": lipgloss.Color("#e5c07b"),
			"madd":     lipgloss.Color("#e06c75"),
			"shadda":   lipgloss.Color("#d19a66"),
		},
	}

	Madinah = Theme{
		Name:         "Madinah",
		Primary:      lipgloss.Color("#2f3b2f"),
		Secondary:    lipgloss.Color("#4f5d4f"),
		Accent:       lipgloss.Color("#1d6d53"),
		Muted:        lipgloss.Color("#8a948a"),
		Error:        lipgloss.Color("#b4423a"),
		Border:       lipgloss.Color("#d5dccf"),
		BorderActive: lipgloss.Color("#1d6d53"),
		Highlight:    lipgloss.Color("#e4ead9"),
		Tajwid: map[string]lipgloss.Color{
			"ghunnah":  lipgloss.Color("#2e7d32"),
			"iqlab":    lipgloss.Color("#1565c0"),
			"idgham":   lipgloss.Color("#00838f"),
			"ikhfa":    lipgloss.Color("#6a1b9a"),
			"qalqalah": lipgloss.Color("#b58900"),
			"madd":     lipgloss.Color("#c62828"),
			"shadda":   lipgloss.Color("#bf5f1f"),
		},
	}

	Night = Theme{
		Name:         "Night",
		Primary:      lipgloss.Color("#cdd6f4"),
		Secondary:    lipgloss.Color("#a6adc8"),
		Accent:       lipgloss.Color("#f5c2e7"),
		Muted:        lipgloss.Color("#6c7086"),
		Error:        lipgloss.Color("#f38ba8"),
		Border:       lipgloss.Color("#45475a"),
		BorderActive: lipgloss.Color("#89b4fa"),
		Highlight:    lipgloss.Color("#45475a"),
		Tajwid: map[string]lipgloss.Color{
			"ghunnah":  lipgloss.Color("#a6e3a1"),
			"iqlab":    lipgloss.Color("#89b4fa"),
			"idgham":   lipgloss.Color("#94e2d5"),
			"ikhfa":    lipgloss.Color("#cba6f7"),
			"qalqalah": lipgloss.Color("#f9e2af"),
			"madd":     lipgloss.Color("#f38ba8"),
			"shadda":   lipgloss.Color("#fab387"),
		},
	}
)

// AllThemes returns a list of all available themes
func AllThemes() []Theme {
	return []Theme{Mushaf, Madinah, Night}
}

// GetTheme returns a theme by name, defaulting to Mushaf if not found
func GetTheme(name string) Theme {
	themes := map[string]Theme{
		"mushaf":  Mushaf,
		"madinah": Madinah,
		"night":   Night,
	}

	if theme, ok := themes[name]; ok {
		return theme
	}
	return Mushaf
}
