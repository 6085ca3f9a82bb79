package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"myplan/internal/tui/theme"
)

type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection is a titled group of key bindings.
type HelpSection struct {
	Title string
	Binds []HelpBind
}

var (
	helpKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary).Width(14)
	helpDescStyle = lipgloss.NewStyle().Foreground(theme.Text)
)

// RenderHelpPopup centers a boxed key reference in the given area.
func RenderHelpPopup(sections []HelpSection, width, height int) string {
	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.Title.Render(section.Title) + "\n")
		for _, bind := range section.Binds {
			b.WriteString("  " + helpKeyStyle.Render(bind.Key) + helpDescStyle.Render(bind.Desc) + "\n")
		}
	}
	b.WriteString("\n" + theme.ModalHelp.Render("Press any key to close"))
	return Overlay(theme.ModalBox.Render(b.String()), width, height)
}
