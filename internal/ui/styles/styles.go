// Package styles provides shared lipgloss styles for treehop's terminal output.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette
var (
	// Primary is the main accent color (cyan/teal)
	Primary color.Color = lipgloss.Color("62")

	// Accent is the highlight color for selected/active items (pink)
	Accent color.Color = lipgloss.Color("212")

	// Success is used for checkmarks and positive outcomes (green)
	Success color.Color = lipgloss.Color("82")

	// Error is used for error messages (red)
	Error color.Color = lipgloss.Color("196")

	// Warning is used for destructive prompts and force mode (orange)
	Warning color.Color = lipgloss.Color("214")

	// Muted is used for disabled/inactive text (gray)
	Muted color.Color = lipgloss.Color("240")
)

var (
	Bold = lipgloss.NewStyle().Bold(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)

	// TitleStyle renders list titles
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(Primary).
			Padding(0, 1)
)
