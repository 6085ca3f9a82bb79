package tasks

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"myplan/internal/logs"
	"myplan/internal/tasks/data"
	"myplan/internal/tui/theme"
)

var (
	rendererMu sync.Mutex
	renderers  = map[string]*glamour.TermRenderer{}
)

// RenderMarkdown renders md with a cached renderer per style, width and
// color profile. A fixed style avoids the terminal queries WithAutoStyle
// makes.
func RenderMarkdown(md, style string, width int) string {
	width = max(width, 20)
	profile := lipgloss.ColorProfile()
	key := fmt.Sprintf("%s:%d:%d", style, width, profile)

	rendererMu.Lock()
	defer rendererMu.Unlock()
	r := renderers[key]
	if r == nil {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
			glamour.WithColorProfile(profile),
		)
		if err != nil {
			logs.Logger.Printf("markdown renderer %s: %v", key, err)
			return md
		}
		renderers[key] = r
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// TaskMarkdown lays a task out as a markdown document.
func TaskMarkdown(t data.Task, now time.Time) string {
	t = data.Hydrate(t)
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Title)

	status := "open"
	if t.Completed {
		status = "done"
	} else if t.IsOverdue(now) {
		status = "overdue by " + data.RelativeDue(t.DueDate, now)
	}
	fmt.Fprintf(&b, "- **Type:** %s\n", strings.ToLower(string(t.Kind())))
	fmt.Fprintf(&b, "- **Priority:** %s\n", t.Priority.Label())
	fmt.Fprintf(&b, "- **Due:** %s\n", t.DueDate.Format("Mon 02 Jan 2006 03:04 PM"))
	fmt.Fprintf(&b, "- **Status:** %s\n", status)

	switch t.Kind() {
	case data.TypeLearning:
		fmt.Fprintf(&b, "- **Progress:** %d/%d videos (%d%%)\n", t.CompletedVideos, t.TotalVideos,
			data.LearningProgress(t.CompletedVideos, t.TotalVideos))
	case data.TypeLoan:
		a, err := data.Amortize(t.LoanOutstanding, t.LoanInterestRate, t.LoanEmi)
		fmt.Fprintf(&b, "- **Outstanding:** %.2f at %.2f%%, EMI %.2f\n", t.LoanOutstanding, t.LoanInterestRate, t.LoanEmi)
		if err != nil {
			b.WriteString("- **Tenure:** never repaid at this EMI\n")
		} else {
			fmt.Fprintf(&b, "- **Tenure:** %d months, interest %.2f\n", a.TenureMonths, a.TotalInterest)
		}
	case data.TypeMeeting:
		start, end := data.MeetingWindow(t)
		fmt.Fprintf(&b, "- **When:** %s to %s (%s)\n", start.Format("03:04 PM"), end.Format("03:04 PM"), data.MeetingDuration(start, end))
		if t.MeetingLink != "" {
			fmt.Fprintf(&b, "- **Link:** %s\n", t.MeetingLink)
		}
	}

	if d := strings.TrimSpace(t.Description); d != "" && t.Kind() == data.TypeManual {
		b.WriteString("\n" + d + "\n")
	}
	if t.Kind() == data.TypeMeeting && strings.TrimSpace(t.MeetingInfo) != "" {
		b.WriteString("\n## Notes\n\n" + strings.TrimSpace(t.MeetingInfo) + "\n")
	}
	if len(t.SubTasks) > 0 {
		b.WriteString("\n## Subtasks\n\n")
		for _, st := range t.SubTasks {
			mark := " "
			if st.Completed {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s\n", mark, st.Title)
		}
	}
	return b.String()
}

// DetailModel shows one task rendered as markdown in a scrollable pane.
type DetailModel struct {
	task     data.Task
	viewport viewport.Model
	style    string
}

// DetailClosedMsg is sent when the detail pane is dismissed.
type DetailClosedMsg struct{}

func NewDetail(t data.Task, style string, width, height int, now time.Time) *DetailModel {
	vp := viewport.New(width, max(height-2, 3))
	vp.SetContent(RenderMarkdown(TaskMarkdown(t, now), style, width-2))
	return &DetailModel{task: t, viewport: vp, style: style}
}

func (m *DetailModel) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc", "q", "v", "enter":
			return func() tea.Msg { return DetailClosedMsg{} }
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *DetailModel) View() string {
	return m.viewport.View() + "\n" + theme.HelpHint.Render("[j/k] scroll  [esc] close")
}
