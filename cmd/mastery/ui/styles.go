// Package ui provides the interactive terminal dashboard for the mastery
// tracker.
package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary = lipgloss.Color("#8BC34A") // lime green
	ColorAccent  = lipgloss.Color("#2196F3") // blue
	ColorMuted   = lipgloss.Color("#6c7a89")
	ColorError   = lipgloss.Color("#e53935")
	ColorWarning = lipgloss.Color("#FFC107")
)

// Styles holds the lipgloss styles used by the dashboard.
type Styles struct {
	Title    lipgloss.Style
	Username lipgloss.Style
	Selected lipgloss.Style
	Row      lipgloss.Style
	Level    lipgloss.Style
	Hours    lipgloss.Style
	Timer    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Prompt   lipgloss.Style
}

// DefaultStyles returns the dashboard styling.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1),
		Username: lipgloss.NewStyle().Bold(true),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Row:      lipgloss.NewStyle(),
		Level:    lipgloss.NewStyle().Foreground(ColorAccent),
		Hours:    lipgloss.NewStyle().Foreground(ColorMuted),
		Timer:    lipgloss.NewStyle().Bold(true).Foreground(ColorWarning),
		Status:   lipgloss.NewStyle().Foreground(ColorMuted).Italic(true),
		Error:    lipgloss.NewStyle().Foreground(ColorError),
		Help:     lipgloss.NewStyle().Foreground(ColorMuted),
		Prompt:   lipgloss.NewStyle().Foreground(ColorPrimary),
	}
}
