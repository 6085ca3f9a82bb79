package tasks

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"myplan/internal/tasks/data"
	"myplan/internal/tui/theme"
)

// ScanModal takes pasted invite or OCR text and previews the meeting it
// describes.
type ScanModal struct {
	area  textarea.Model
	now   func() time.Time
	Width int
}

// ScanResultMsg carries the meeting built from the pasted text.
type ScanResultMsg struct {
	Task      data.Task
	Cancelled bool
}

func NewScanModal(width int, now func() time.Time) *ScanModal {
	ta := textarea.New()
	ta.Placeholder = "Paste the invite text here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 8000
	ta.SetWidth(max(width-8, 20))
	ta.SetHeight(10)
	ta.Focus()
	return &ScanModal{area: ta, now: now, Width: width}
}

func (m *ScanModal) Focus() tea.Cmd {
	return m.area.Focus()
}

func (m *ScanModal) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "ctrl+s":
			if strings.TrimSpace(m.area.Value()) == "" {
				return nil
			}
			task := m.scan()
			return func() tea.Msg { return ScanResultMsg{Task: task} }
		case "esc":
			return func() tea.Msg { return ScanResultMsg{Cancelled: true} }
		}
	}
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return cmd
}

func (m *ScanModal) scan() data.Task {
	return data.ScanMeeting(m.area.Value()).ToTask(m.now())
}

func (m *ScanModal) View() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Scan meeting invite") + "\n\n")
	b.WriteString(m.area.View() + "\n\n")

	if strings.TrimSpace(m.area.Value()) != "" {
		t := m.scan()
		start, end := data.MeetingWindow(t)
		b.WriteString(theme.Subtitle.Render("Detected") + "\n")
		b.WriteString("  " + t.Title + "\n")
		b.WriteString("  " + start.Format("Mon 02 Jan 2006") + ", " + data.MeetingDescription(start, end) + "\n")
		if t.MeetingLink != "" {
			b.WriteString("  " + theme.Due.Render(t.MeetingLink) + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(theme.ModalHelp.Render("[ctrl+s] continue to editor  [esc] cancel"))
	return theme.ModalBox.Width(m.Width).Render(b.String())
}
