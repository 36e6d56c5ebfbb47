package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/reactorsim/internal/advisor"
	"github.com/san-kum/reactorsim/internal/physics"
)

// Theme defines the control room palette
type Theme struct {
	Name     string
	Primary  lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Nominal  lipgloss.Color
	Unstable lipgloss.Color
	Critical lipgloss.Color
	Meltdown lipgloss.Color
}

var (
	ThemeControlRoom = Theme{
		Name:     "control-room",
		Primary:  lipgloss.Color("#00ffff"),
		Accent:   lipgloss.Color("#ffff00"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666688"),
		Nominal:  lipgloss.Color("#00ff88"),
		Unstable: lipgloss.Color("#ffcc00"),
		Critical: lipgloss.Color("#ff8800"),
		Meltdown: lipgloss.Color("#ff0000"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Primary:  lipgloss.Color("#00ff00"), // Green phosphor
		Accent:   lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Nominal:  lipgloss.Color("#88ff88"),
		Unstable: lipgloss.Color("#ccff00"),
		Critical: lipgloss.Color("#ffff00"),
		Meltdown: lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Primary:  lipgloss.Color("#ffffff"),
		Accent:   lipgloss.Color("#0088ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Nominal:  lipgloss.Color("#00ff00"),
		Unstable: lipgloss.Color("#ffaa00"),
		Critical: lipgloss.Color("#ff5500"),
		Meltdown: lipgloss.Color("#ff0000"),
	}

	// Default theme
	CurrentTheme = ThemeControlRoom

	Themes = []Theme{
		ThemeControlRoom,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeControlRoom
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeControlRoom
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// StatusColor maps a thermal status onto the theme.
func (t Theme) StatusColor(s physics.Status) lipgloss.Color {
	switch s {
	case physics.Nominal:
		return t.Nominal
	case physics.Unstable:
		return t.Unstable
	case physics.Critical:
		return t.Critical
	}
	return t.Meltdown
}

func (t Theme) LevelColor(l advisor.Level) lipgloss.Color {
	switch l {
	case advisor.Critical:
		return t.Meltdown
	case advisor.Warning:
		return t.Unstable
	}
	return t.Primary
}
