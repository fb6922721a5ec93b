package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Bold(true)
	userStyle  = lipgloss.NewStyle().Bold(true)
	botStyle   = lipgloss.NewStyle()
)
