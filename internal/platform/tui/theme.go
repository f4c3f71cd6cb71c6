package tui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles shared by the watch view, the menu and
// the history browser.
type Theme struct {
	// Field cell colors
	Prey     lipgloss.Style
	Predator lipgloss.Style
	Empty    lipgloss.Style

	// HUD styles
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDControls  lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Prey:     lipgloss.NewStyle().Foreground(lipgloss.Color("46")),  // Lime green
		Predator: lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // Bright red
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")), // Dark gray

		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDControls:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// PastelTheme returns a softer pastel theme.
func PastelTheme() Theme {
	theme := DefaultTheme()
	theme.Prey = lipgloss.NewStyle().Foreground(lipgloss.Color("157"))     // Pastel green
	theme.Predator = lipgloss.NewStyle().Foreground(lipgloss.Color("218")) // Pastel pink
	return theme
}

// MonochromeTheme returns a grayscale theme; prey and predators are told
// apart by sign only.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Prey = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	theme.Predator = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true)
	theme.Empty = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return theme
}

var themes = map[string]func() Theme{
	"default": DefaultTheme,
	"pastel":  PastelTheme,
	"mono":    MonochromeTheme,
}

// ThemeNames lists the names accepted by ThemeByName.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName looks up a theme. An empty name selects the default.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return DefaultTheme(), true
	}
	f, ok := themes[name]
	if !ok {
		return Theme{}, false
	}
	return f(), true
}

// Global theme variable (can be changed at runtime)
var currentTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// CurrentTheme returns the current global theme.
func CurrentTheme() Theme {
	return currentTheme
}
