package tasks

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"myplan/internal/tasks/data"
	"myplan/internal/tui/theme"
)

var (
	searchStyle = lipgloss.NewStyle().Foreground(theme.Success)
	countStyle  = lipgloss.NewStyle().Foreground(theme.Warning)
)

// InfoBar is the header above the list: the non-empty tabs with their
// counts, and the search line while a search is active.
type InfoBar struct {
	Buckets data.Buckets
	Tab     data.Tab
	Search  string // rendered search input; empty when not searching
	Matches int
	Width   int
}

func (b InfoBar) View() string {
	var parts []string
	for _, tab := range data.Tabs {
		n := len(b.Buckets[tab])
		if n == 0 {
			continue
		}
		label := fmt.Sprintf("%s (%d)", tab, n)
		if tab == b.Tab && b.Search == "" {
			parts = append(parts, theme.TabActive.Render(label))
		} else {
			parts = append(parts, theme.TabInactive.Render(label))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, theme.TabInactive.Render("No tasks"))
	}
	out := theme.TabBar.Width(max(b.Width, 1)).Render(strings.Join(parts, "   "))
	if b.Search != "" {
		out += "\n" + searchStyle.Render("/") + b.Search + "  " + countStyle.Render(fmt.Sprintf("%d match(es)", b.Matches))
	}
	return out
}
