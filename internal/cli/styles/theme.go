// Package styles holds the lipgloss styling shared by the CLI commands
// and the Bubble Tea models.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme groups the terminal styles used across commands.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Dim      lipgloss.Style
	OK       lipgloss.Style
	Fail     lipgloss.Style
	Badge    lipgloss.Style
}

// NewTheme returns the default terminal theme.
func NewTheme() *Theme {
	return &Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		Item: lipgloss.NewStyle().
			PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			PaddingLeft(1).
			Foreground(lipgloss.Color("212")).
			Bold(true),
		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		OK: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true),
		Fail: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("236")).
			Background(lipgloss.Color("117")).
			Padding(0, 1),
	}
}
