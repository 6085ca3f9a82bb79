package shared

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"myplan/internal/tasks/data"
	"myplan/internal/tui/theme"
)

// StyledTaskLine renders one list row, cut to width cells when width > 0.
// Format: [x] ‹PRIORITY› Title  kind  3/5  due-label
func StyledTaskLine(t data.Task, now time.Time, width int) string {
	var parts []string

	if t.Completed {
		parts = append(parts, theme.Done.Render("[x]"))
	} else {
		parts = append(parts, "[ ]")
	}

	if t.Priority != "" && t.Priority != data.PriorityNone {
		badge := "‹" + t.Priority.Label() + "›"
		if t.Completed {
			parts = append(parts, theme.Muted.Render(badge))
		} else {
			parts = append(parts, theme.PriorityStyle(t.Priority).Render(badge))
		}
	}

	if t.Completed {
		parts = append(parts, theme.Done.Render(t.Title))
	} else {
		parts = append(parts, t.Title)
	}

	if kind := t.Kind(); kind != data.TypeManual {
		parts = append(parts, theme.Kind.Render(strings.ToLower(string(kind))))
	}

	if n := len(t.SubTasks); n > 0 {
		parts = append(parts, theme.Muted.Render(fmt.Sprintf("%d/%d", n-t.PendingSubTasks(), n)))
	}

	due := data.RelativeDue(t.DueDate, now)
	switch {
	case due == "Now" && !t.Completed:
		parts = append(parts, theme.Warn.Render("now"))
	case t.Completed:
		parts = append(parts, theme.Muted.Render(due))
	case t.IsOverdue(now):
		parts = append(parts, theme.Overdue.Render(due+" late"))
	default:
		parts = append(parts, theme.Due.Render("in "+due))
	}

	line := strings.Join(parts, " ")
	if width > 0 && ansi.StringWidth(line) > width {
		line = ansi.Truncate(line, width, "…")
	}
	return line
}
