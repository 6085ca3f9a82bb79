package tasks

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"myplan/internal/tui/theme"
)

// ConfirmationModal is a yes/no prompt about one task.
type ConfirmationModal struct {
	Message string
	Details string
	TaskID  string
	Width   int
}

// ConfirmationResultMsg carries the answer and the task it was about.
type ConfirmationResultMsg struct {
	TaskID    string
	Confirmed bool
}

func NewConfirmationModal(message, details, taskID string, width int) *ConfirmationModal {
	return &ConfirmationModal{
		Message: message,
		Details: details,
		TaskID:  taskID,
		Width:   width,
	}
}

func (m *ConfirmationModal) Update(msg tea.KeyMsg) tea.Cmd {
	id := m.TaskID
	switch msg.String() {
	case "y", "Y", "enter":
		return func() tea.Msg { return ConfirmationResultMsg{TaskID: id, Confirmed: true} }
	case "n", "N", "esc":
		return func() tea.Msg { return ConfirmationResultMsg{TaskID: id} }
	}
	return nil
}

func (m *ConfirmationModal) View() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(m.Message) + "\n")
	if m.Details != "" {
		b.WriteString("\n" + m.Details + "\n")
	}
	b.WriteString("\n" + theme.Ok.Render("[y]") + " Yes  " + theme.Error.Render("[n/esc]") + " No")
	return theme.ModalBox.Width(m.Width).Render(b.String())
}
