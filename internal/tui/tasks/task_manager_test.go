package tasks

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"myplan/internal/tasks/data"
	"myplan/internal/tui/messages"
)

var managerNow = time.Date(2024, 5, 2, 12, 0, 0, 0, time.Local)

func newManager(tasks ...data.Task) TaskManagerModel {
	m := NewTaskManagerModel(Options{
		DefaultTab:  data.TabToday,
		ClockRadius: 6,
		Now:         func() time.Time { return managerNow },
	})
	m.SetSize(100, 30)
	m.SetTasks(tasks)
	return m
}

func task(id, title string, due time.Time) data.Task {
	return data.Task{ID: id, Title: title, DueDate: due, Priority: data.PriorityNone, TaskType: data.TypeManual}
}

// send runs one message through the manager and resolves the command it
// returns, feeding internal results back in like the runtime would.
func send(m TaskManagerModel, msg tea.Msg) (TaskManagerModel, tea.Msg) {
	m, cmd := m.Update(msg)
	if cmd == nil {
		return m, nil
	}
	out := cmd()
	switch out.(type) {
	case TaskEditorResultMsg, ConfirmationResultMsg, ScanResultMsg, DetailClosedMsg:
		return send(m, out)
	}
	return m, out
}

func TestTaskManager_EmptyTabSwitches(t *testing.T) {
	m := newManager(
		task("a", "Overdue thing", managerNow.AddDate(0, 0, -1)),
		task("b", "Later thing", managerNow.AddDate(0, 0, 3)),
	)
	if m.ActiveTab() != data.TabOverdue {
		t.Fatalf("tab = %s, want Overdue since Today is empty", m.ActiveTab())
	}

	m, _ = send(m, runes("l"))
	if m.ActiveTab() != data.TabLater {
		t.Errorf("tab = %s, want Later", m.ActiveTab())
	}
	m, _ = send(m, runes("l"))
	if m.ActiveTab() != data.TabOverdue {
		t.Errorf("tab should wrap past hidden Today, got %s", m.ActiveTab())
	}

	view := m.View()
	if strings.Contains(view, "Today (") {
		t.Error("empty Today tab should be hidden")
	}
}

func TestTaskManager_TabSwitchesWhenEmptied(t *testing.T) {
	m := newManager(
		task("a", "Today thing", managerNow),
		task("b", "Later thing", managerNow.AddDate(0, 0, 3)),
	)
	if m.ActiveTab() != data.TabToday {
		t.Fatalf("tab = %s", m.ActiveTab())
	}
	m.SetTasks([]data.Task{task("b", "Later thing", managerNow.AddDate(0, 0, 3))})
	if m.ActiveTab() != data.TabLater {
		t.Errorf("tab = %s, want Later", m.ActiveTab())
	}
}

func TestTaskManager_ToggleAndDelete(t *testing.T) {
	m := newManager(
		task("a", "First", managerNow.Add(-time.Hour)),
		task("b", "Second", managerNow.Add(time.Hour)),
	)

	m, _ = send(m, runes("j"))
	m, msg := send(m, runes(" "))
	toggle, ok := msg.(messages.ToggleTaskMsg)
	if !ok || toggle.ID != "b" {
		t.Fatalf("expected toggle of b, got %#v", msg)
	}

	m, _ = send(m, runes("D"))
	if !m.IsInModalState() {
		t.Fatal("delete should ask for confirmation")
	}
	m, msg = send(m, runes("y"))
	del, ok := msg.(messages.DeleteTaskMsg)
	if !ok || del.ID != "b" {
		t.Fatalf("expected delete of b, got %#v", msg)
	}
	if m.IsInModalState() {
		t.Error("confirmation should be closed")
	}
}

func TestTaskManager_DeleteCancelled(t *testing.T) {
	m := newManager(task("a", "First", managerNow))
	m, _ = send(m, runes("D"))
	m, msg := send(m, runes("n"))
	if msg != nil {
		t.Errorf("cancelled delete emitted %#v", msg)
	}
	if m.IsInModalState() {
		t.Error("confirmation should be closed")
	}
}

func TestTaskManager_CursorFollowsTask(t *testing.T) {
	m := newManager(
		task("a", "First", managerNow.Add(-2*time.Hour)),
		task("b", "Second", managerNow.Add(time.Hour)),
	)
	m, _ = send(m, runes("j"))

	m.SetTasks([]data.Task{
		task("a", "First", managerNow.Add(-2*time.Hour)),
		task("c", "Inserted", managerNow.Add(-time.Hour)),
		task("b", "Second", managerNow.Add(time.Hour)),
	})
	_, msg := send(m, runes(" "))
	if toggle, ok := msg.(messages.ToggleTaskMsg); !ok || toggle.ID != "b" {
		t.Errorf("cursor should stay on b, got %#v", msg)
	}
}

func TestTaskManager_Search(t *testing.T) {
	m := newManager(
		task("a", "Pay rent", managerNow.AddDate(0, 0, -1)),
		task("b", "Call plumber", managerNow),
		task("c", "Renew passport", managerNow.AddDate(0, 1, 0)),
	)

	// Input focus returns cursor blink commands; leave them unrun.
	m, _ = m.Update(runes("/"))
	for _, r := range "rent" {
		m, _ = m.Update(runes(string(r)))
	}
	found := map[string]bool{}
	for _, match := range m.Displayed() {
		found[match.ID] = true
	}
	if !found["a"] {
		t.Errorf("rent should match across tabs, got %+v", m.Displayed())
	}
	if found["b"] {
		t.Error("plumber should not match")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if len(m.Displayed()) != 1 || m.Displayed()[0].ID != "b" {
		t.Errorf("after esc the Today tab should be back, got %+v", m.Displayed())
	}
}

func TestTaskManager_NewMeeting(t *testing.T) {
	m := newManager()

	m, _ = send(m, runes("n"))
	m, _ = send(m, runes("g"))
	if m.editor == nil {
		t.Fatal("choosing a type should open the editor")
	}
	if m.editor.Task().TaskType != data.TypeMeeting {
		t.Errorf("type = %s", m.editor.Task().TaskType)
	}

	m, msg := send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	save, ok := msg.(messages.SaveTaskMsg)
	if !ok {
		t.Fatalf("expected SaveTaskMsg, got %#v", msg)
	}
	if save.Task.Title != "Meeting" || save.Task.MeetingStartTime == nil {
		t.Errorf("saved = %+v", save.Task)
	}
	if m.editor != nil {
		t.Error("editor should close after saving")
	}
}

func TestTaskManager_ScanOpensEditor(t *testing.T) {
	m := newManager()
	m, _ = m.Update(runes("s"))
	if m.scan == nil {
		t.Fatal("s should open the scan modal")
	}
	m, _ = send(m, ScanResultMsg{Task: data.Task{Title: "Design review", TaskType: data.TypeMeeting, DueDate: managerNow}})
	if m.editor == nil || m.editor.Task().Title != "Design review" {
		t.Fatal("scan result should open the editor")
	}
}

func TestTaskManager_Refresh(t *testing.T) {
	m := newManager()
	_, msg := send(m, runes("r"))
	if _, ok := msg.(messages.RefreshMsg); !ok {
		t.Errorf("expected RefreshMsg, got %#v", msg)
	}
}
