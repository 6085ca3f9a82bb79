package theme

import (
	"github.com/charmbracelet/lipgloss"

	"myplan/internal/tasks/data"
)

// Palette: ANSI 0-15 plus one 256-color surface.
var (
	Text       = lipgloss.Color("7")
	TextMuted  = lipgloss.Color("8")
	TextBright = lipgloss.Color("15")

	Primary       = lipgloss.Color("4")
	Secondary     = lipgloss.Color("6")
	Accent        = lipgloss.Color("5")
	Success       = lipgloss.Color("2")
	Warning       = lipgloss.Color("3")
	Danger        = lipgloss.Color("1")
	Surface       = lipgloss.Color("236")
	Border        = lipgloss.Color("8")
	BorderFocused = lipgloss.Color("4")
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Subtitle = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	Muted    = lipgloss.NewStyle().Foreground(TextMuted)
	Bold     = lipgloss.NewStyle().Bold(true)

	Error = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	Ok    = lipgloss.NewStyle().Bold(true).Foreground(Success)

	Cursor     = lipgloss.NewStyle().Bold(true).Foreground(Success)
	SelectedBg = lipgloss.NewStyle().Foreground(TextBright).Background(Surface)

	Done    = lipgloss.NewStyle().Foreground(TextMuted).Strikethrough(true)
	Overdue = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Due     = lipgloss.NewStyle().Foreground(Secondary)
	Kind    = lipgloss.NewStyle().Foreground(Accent)
)

var (
	ModalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	ModalHelp  = lipgloss.NewStyle().Foreground(TextMuted)

	StatusBar = lipgloss.NewStyle().
			Foreground(TextMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	HelpHint = lipgloss.NewStyle().Foreground(TextMuted)

	TabActive   = lipgloss.NewStyle().Bold(true).Foreground(Primary).Underline(true)
	TabInactive = lipgloss.NewStyle().Foreground(TextMuted)
	TabBar      = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(Border).
			PaddingLeft(1)
)

// Picker cells.
var (
	PickerSelected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(Warning)
	PickerToday    = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	PickerDay      = lipgloss.NewStyle().Foreground(Text)
	PickerHeader   = lipgloss.NewStyle().Bold(true).Foreground(TextMuted)
	PickerHand     = lipgloss.NewStyle().Foreground(Accent)
	PickerMonth    = lipgloss.NewStyle().Bold(true).Foreground(Accent)
)

var priorityColors = map[data.Priority]lipgloss.Color{
	data.PriorityLow:      Secondary,
	data.PriorityMedium:   Warning,
	data.PriorityHigh:     Danger,
	data.PriorityCritical: Accent,
}

// PriorityStyle colors a priority badge. NONE is muted.
func PriorityStyle(p data.Priority) lipgloss.Style {
	c, ok := priorityColors[p]
	if !ok {
		return Muted
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}
