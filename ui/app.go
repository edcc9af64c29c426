// Package ui renders command output: lipgloss styles and the tables shared
// by the CLI commands and the interactive session.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styling constants
var (
	// Colors
	PrimaryColor   = lipgloss.Color("205")
	SecondaryColor = lipgloss.Color("240")
	AccentColor    = lipgloss.Color("86")
	SuccessColor   = lipgloss.Color("46")
	WarningColor   = lipgloss.Color("214")
	ErrorColor     = lipgloss.Color("196")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	DimStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SuccessColor)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ErrorColor)
)

// Title renders a section heading
func Title(s string) string {
	return TitleStyle.Render(s)
}

// Success renders a confirmation line
func Success(s string) string {
	return SuccessStyle.Render(s)
}

// Warn renders a warning line
func Warn(s string) string {
	return WarningStyle.Render(s)
}

// Dim renders secondary text
func Dim(s string) string {
	return DimStyle.Render(s)
}

// Truncate shortens s to at most width runes, marking the cut with "..."
func Truncate(s string, width int) string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
