package agenda

import (
	"github.com/charmbracelet/lipgloss"

	"myplan/internal/tui/theme"
)

// -- item_line.go styles --
var (
	reasonDueStyle  = lipgloss.NewStyle().Foreground(theme.Warning).Bold(true)
	reasonMeetStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	kindStyle       = theme.Kind
	selectedStyle   = lipgloss.NewStyle().Bold(true).Foreground(theme.TextBright).Background(theme.Primary)
	cursorStyle     = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	normalStyle     = lipgloss.NewStyle()
	completedStyle  = theme.Done
	emptyStyle      = lipgloss.NewStyle().Foreground(theme.TextMuted).Italic(true)
	navHintStyle    = theme.Muted
	countStyle      = theme.Muted
)

// -- month.go styles --
var (
	calDayHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(theme.TextMuted).Width(5).Align(lipgloss.Center)
	calDayStyle        = lipgloss.NewStyle().Width(5).Align(lipgloss.Center)
	calTodayStyle      = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Bold(true).Foreground(theme.Success)
	calCursorStyle     = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Bold(true).Foreground(theme.TextBright).Background(theme.Primary)
	calHasItemsStyle   = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Foreground(theme.Warning)
	calEmptyStyle      = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Foreground(theme.TextMuted)
	calMonthTitleStyle = theme.Title
	detailHeaderStyle  = theme.Subtitle
)
