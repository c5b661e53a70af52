package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colourPrimary = lipgloss.Color("#7C3AED")
	colourMuted   = lipgloss.Color("#6C7086")
	colourSuccess = lipgloss.Color("#A6E3A1")
	colourWarning = lipgloss.Color("#F9E2AF")
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colourPrimary)
	labelStyle   = lipgloss.NewStyle().Foreground(colourMuted)
	successStyle = lipgloss.NewStyle().Foreground(colourSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colourWarning)
)

func heading(s string) string { return headingStyle.Render(s) }

func label(s string) string { return labelStyle.Render(s) }

func success(s string) string { return successStyle.Render(s) }

func warning(s string) string { return warningStyle.Render(s) }
