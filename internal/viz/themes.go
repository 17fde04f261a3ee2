package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme colours the panel and, for monochrome themes, the particles too.
type Theme struct {
	Name string
	// Primary tints monochrome particles and highlights the active attractor.
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	// Hand marks a tracked hand in the gesture panel.
	Hand lipgloss.Color
	// Live, Idle and Alert colour the running, paused and recording or
	// gesture-unavailable indicators.
	Live  lipgloss.Color
	Idle  lipgloss.Color
	Alert lipgloss.Color
	// Monochrome draws every particle in Primary instead of its own colour.
	Monochrome bool
}

// Themes in cycle order. The first is the fallback.
var Themes = []Theme{
	{
		Name: "neon",
		Primary: "#ff00ff", Secondary: "#00ffff", Accent: "#ffff00",
		Background: "#0a0a0a", Text: "#ffffff", Muted: "#666666",
		Hand: "#00ffff", Live: "#00ff00", Idle: "#ff8800", Alert: "#ff0000",
	},
	{
		Name: "retro", Monochrome: true,
		Primary: "#00ff00", Secondary: "#00cc00", Accent: "#88ff88",
		Background: "#001100", Text: "#00ff00", Muted: "#005500",
		Hand: "#88ff88", Live: "#88ff88", Idle: "#ffff00", Alert: "#ff0000",
	},
	{
		Name: "mono", Monochrome: true,
		Primary: "#ffffff", Secondary: "#cccccc", Accent: "#0088ff",
		Background: "#000000", Text: "#ffffff", Muted: "#888888",
		Hand: "#0088ff", Live: "#ffffff", Idle: "#888888", Alert: "#ff0000",
	},
	{
		Name: "ocean",
		Primary: "#0077be", Secondary: "#00a8cc", Accent: "#ffd700",
		Background: "#001a33", Text: "#e0f0ff", Muted: "#4488aa",
		Hand: "#ffd700", Live: "#00ff88", Idle: "#ffcc00", Alert: "#ff4444",
	},
	{
		Name: "sunset",
		Primary: "#ff6b6b", Secondary: "#feca57", Accent: "#ff9ff3",
		Background: "#2d1b2e", Text: "#fff5f5", Muted: "#8b6b8c",
		Hand: "#feca57", Live: "#5fd068", Idle: "#ffc048", Alert: "#ff4757",
	},
}

// GetTheme returns a theme by name, falling back to the first.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after name in Themes, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Colorful converts a theme colour for blending; unparsable values are black.
func Colorful(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{}
	}
	return col
}
