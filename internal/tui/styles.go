package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#2563EB") // blue
	okColor     = lipgloss.Color("#16A34A") // green
	errColor    = lipgloss.Color("#DC2626") // red
	dimColor    = lipgloss.Color("#6B7280") // gray
	titleColor  = lipgloss.Color("#F59E0B") // amber
	linkColor   = lipgloss.Color("#38BDF8") // light blue

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(okColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(titleColor)

	sourceStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	dateStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true)

	linkStyle = lipgloss.NewStyle().
			Foreground(linkColor).
			Underline(true)

	groupStyle = lipgloss.NewStyle().
			Foreground(okColor).
			Bold(true).
			Underline(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor)
)
