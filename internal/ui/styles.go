// Package ui holds the terminal styles shared by prompts and progress output.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	greenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	redStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	cyanStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	boldStyle  = lipgloss.NewStyle().Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("4")).
			Padding(0, 2)
)

// Green highlights commands and names.
func Green(s string) string { return greenStyle.Render(s) }

// Red highlights the tool name in the greeting and validation errors.
func Red(s string) string { return redStyle.Render(s) }

// Cyan marks answered values.
func Cyan(s string) string { return cyanStyle.Render(s) }

// Faint renders defaults and hints.
func Faint(s string) string { return faintStyle.Render(s) }

// Bold renders question text.
func Bold(s string) string { return boldStyle.Render(s) }

// Banner boxes a greeting message.
func Banner(s string) string { return bannerStyle.Render(s) }
