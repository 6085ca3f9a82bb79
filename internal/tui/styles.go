package tui

import (
	"github.com/charmbracelet/lipgloss"

	"myplan/internal/tui/theme"
)

var (
	StatusBarStyle = theme.StatusBar

	HelpStyle  = lipgloss.NewStyle().Foreground(theme.TextMuted)
	AlertStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Danger)
)
