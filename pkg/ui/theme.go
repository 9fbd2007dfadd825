package ui

import "github.com/charmbracelet/lipgloss"

// Theme bundles the lipgloss styles used across the UI.
type Theme struct {
	AppBar        lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	Title         lipgloss.Style
	ItemCursor    lipgloss.Style
	Item          lipgloss.Style
	ItemSubtitle  lipgloss.Style
	PlayableBadge lipgloss.Style
	StatusBar     lipgloss.Style
	StatusError   lipgloss.Style
	Restriction   lipgloss.Style
	Hint          lipgloss.Style
}

// DefaultTheme builds the theme, optionally tinted with an accent color
// from configuration.
func DefaultTheme(accent string) Theme {
	if accent == "" {
		accent = "#7D56F4"
	}
	ac := lipgloss.Color(accent)
	dim := lipgloss.AdaptiveColor{Light: "#6b6b6b", Dark: "#8a8a8a"}
	return Theme{
		AppBar:        lipgloss.NewStyle().Bold(true).Padding(0, 1),
		TabActive:     lipgloss.NewStyle().Bold(true).Foreground(ac).Underline(true).Padding(0, 1),
		TabInactive:   lipgloss.NewStyle().Foreground(dim).Padding(0, 1),
		Title:         lipgloss.NewStyle().Bold(true),
		ItemCursor:    lipgloss.NewStyle().Bold(true).Foreground(ac),
		Item:          lipgloss.NewStyle(),
		ItemSubtitle:  lipgloss.NewStyle().Foreground(dim),
		PlayableBadge: lipgloss.NewStyle().Foreground(lipgloss.Color("#2aa84a")),
		StatusBar:     lipgloss.NewStyle().Foreground(dim),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#d64545")),
		Restriction:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d6a545")),
		Hint:          lipgloss.NewStyle().Foreground(dim).Italic(true),
	}
}
