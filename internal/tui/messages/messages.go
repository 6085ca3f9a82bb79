package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"myplan/internal/tasks/data"
)

// TasksLoadedMsg carries a fresh list from the provider. Quiet marks a
// scheduled reload.
type TasksLoadedMsg struct {
	Tasks []data.Task
	Err   error
	Quiet bool
}

// TaskSavedMsg reports the outcome of a create or update.
type TaskSavedMsg struct {
	Task    data.Task
	Created bool
	Err     error
}

// TaskDeletedMsg reports the outcome of a delete.
type TaskDeletedMsg struct {
	ID  string
	Err error
}

// SaveTaskMsg asks the app to persist a task. An empty ID creates it.
type SaveTaskMsg struct {
	Task data.Task
}

// DeleteTaskMsg asks the app to delete a task.
type DeleteTaskMsg struct {
	ID string
}

// ToggleTaskMsg asks the app to flip a task's completed flag.
type ToggleTaskMsg struct {
	ID string
}

// RefreshMsg asks the app to reload the list from the provider.
type RefreshMsg struct{}

// StatusMsg sets the status line. Alert renders it as an error.
type StatusMsg struct {
	Text  string
	Alert bool
}

func Status(text string, alert bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text, Alert: alert}
	}
}

func Refresh() tea.Msg {
	return RefreshMsg{}
}

// FocusTaskMsg asks the list to select a task, switching tab if needed.
type FocusTaskMsg struct {
	ID string
}
