package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/josephgoksu/gantry/models"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")  // Cyan for in-progress work
	ColorBlue      = lipgloss.Color("75")  // Blue for relations

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	// Field label style for detail views
	StyleLabel = lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
)

var statusStyles = map[models.Status]lipgloss.Style{
	models.StatusNotStarted: StyleSubtle,
	models.StatusInProgress: lipgloss.NewStyle().Foreground(ColorCyan),
	models.StatusBlocked:    StyleWarning,
	models.StatusCompleted:  StyleSuccess,
}

var priorityStyles = map[models.Priority]lipgloss.Style{
	models.PriorityLowest:   StyleSubtle,
	models.PriorityLow:      StyleSubtle,
	models.PriorityNeutral:  StyleText,
	models.PriorityUnsure:   lipgloss.NewStyle().Foreground(ColorBlue),
	models.PriorityMedium:   StyleWarning,
	models.PriorityHigh:     lipgloss.NewStyle().Foreground(ColorWarning).Bold(true),
	models.PriorityCritical: lipgloss.NewStyle().Foreground(ColorError).Bold(true),
}

// StatusStyle returns the style for a status value.
func StatusStyle(s models.Status) lipgloss.Style {
	if style, ok := statusStyles[s]; ok {
		return style
	}
	return StyleText
}

// PriorityStyle returns the style for a priority level.
func PriorityStyle(p models.Priority) lipgloss.Style {
	if style, ok := priorityStyles[p]; ok {
		return style
	}
	return StyleText
}

// StatusBadge renders a status as its colored symbol plus name.
func StatusBadge(s models.Status) string {
	return StatusStyle(s).Render(s.Symbol() + " " + s.String())
}

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}
