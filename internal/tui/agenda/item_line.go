package agenda

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	agendapkg "myplan/internal/agenda"
	"myplan/internal/tasks/data"
)

// RenderItemLine renders one agenda item: cursor, time, title and kind on
// the left, the reason and relative date on the right.
func RenderItemLine(item agendapkg.Item, selected bool, width int, now time.Time) string {
	var parts []string

	if selected {
		parts = append(parts, cursorStyle.Render(">"))
	} else {
		parts = append(parts, " ")
	}
	parts = append(parts, item.At.Format(time.Kitchen))

	title := itemTitle(item)
	switch {
	case selected:
		parts = append(parts, selectedStyle.Render(title))
	case item.Completed():
		parts = append(parts, completedStyle.Render(title))
	default:
		parts = append(parts, normalStyle.Render(title))
	}

	if context := itemContext(item); context != "" {
		parts = append(parts, context)
	}

	line := strings.Join(parts, " ")
	reasonDate := formatReasonDate(item, now)
	padding := width - lipgloss.Width(line) - lipgloss.Width(reasonDate) - 1
	if padding < 1 {
		padding = 1
	}
	return line + strings.Repeat(" ", padding) + reasonDate
}

func itemTitle(item agendapkg.Item) string {
	t := item.Task
	if t.Priority != "" && t.Priority != data.PriorityNone {
		return "(" + t.Priority.Label() + ") " + t.Title
	}
	return t.Title
}

func itemContext(item agendapkg.Item) string {
	t := item.Task
	switch t.Kind() {
	case data.TypeMeeting:
		start, end := data.MeetingWindow(t)
		return kindStyle.Render("[" + data.MeetingDuration(start, end) + "]")
	case data.TypeManual:
		if n := len(t.SubTasks); n > 0 {
			return countStyle.Render(fmt.Sprintf("[%d/%d]", n-t.PendingSubTasks(), n))
		}
		return ""
	default:
		return kindStyle.Render("<" + strings.ToLower(string(t.Kind())) + ">")
	}
}

func formatReasonDate(item agendapkg.Item, now time.Time) string {
	style := reasonDueStyle
	if item.Reason == agendapkg.ReasonMeeting {
		style = reasonMeetStyle
	}
	rel := data.RelativeDue(item.At, now)
	if item.At.Before(now) && rel != "Now" {
		rel += " ago"
	}
	return style.Render(item.Reason.String() + " " + rel)
}
