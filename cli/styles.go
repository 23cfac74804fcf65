// Package cli: this file contains the lipgloss styles shared by the
// terminal commands and the interactive editor.
package cli

import "github.com/charmbracelet/lipgloss"

// Palette shared with the built-in settings page.
var (
	colorAccent  = lipgloss.Color("#6c6cf5")
	colorMuted   = lipgloss.Color("#8888a0")
	colorSuccess = lipgloss.Color("#7ee09a")
	colorError   = lipgloss.Color("#f07878")
)

// theme holds the pre-built styles. A zero theme renders everything
// unstyled, which is what non-terminal output gets.
type theme struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Subtle  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

func newTheme(styled bool) *theme {
	t := &theme{}
	if !styled {
		return t
	}
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	t.Label = lipgloss.NewStyle().Foreground(colorMuted)
	t.Value = lipgloss.NewStyle()
	t.Subtle = lipgloss.NewStyle().Foreground(colorMuted)
	t.Success = lipgloss.NewStyle().Foreground(colorSuccess)
	t.Error = lipgloss.NewStyle().Foreground(colorError)
	return t
}
