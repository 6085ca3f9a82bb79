package tasks

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"myplan/internal/tasks/data"
	"myplan/internal/tui/shared"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func cursorTo(t *testing.T, m *TaskEditorModel, id string) {
	t.Helper()
	for i, row := range m.rows {
		if row.id == id {
			m.cursor = i
			return
		}
	}
	t.Fatalf("no editor row %q", id)
}

func TestTaskEditor_DueDateThroughPicker(t *testing.T) {
	due := time.Date(2024, 5, 2, 9, 0, 0, 0, time.Local)
	m := NewTaskEditor(data.Task{Title: "Pay rent", DueDate: due, TaskType: data.TypeManual}, 6)
	m.SetSize(100, 40)

	cursorTo(t, m, fDue)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.PickerOpen() {
		t.Fatal("enter on the due row should open the picker")
	}

	moved := due.AddDate(0, 0, 3)
	m.Update(shared.DateTimeChangedMsg{ID: fDue, Value: moved})
	if !m.Task().DueDate.Equal(moved) {
		t.Errorf("due = %v, want %v", m.Task().DueDate, moved)
	}
	if !m.PickerOpen() {
		t.Error("picker should stay open after an edit")
	}

	m.Update(shared.DateTimePickerClosedMsg{ID: fDue})
	if m.PickerOpen() {
		t.Error("picker should close")
	}
	if !strings.Contains(m.View(), "*") {
		t.Error("changed due row should be marked as modified")
	}
}

func TestTaskEditor_MeetingStartKeepsLength(t *testing.T) {
	start := time.Date(2024, 5, 2, 10, 0, 0, 0, time.Local)
	end := start.Add(45 * time.Minute)
	m := NewTaskEditor(data.Task{
		Title: "Standup", TaskType: data.TypeMeeting, DueDate: start,
		MeetingStartTime: &start, MeetingEndTime: &end,
	}, 6)
	m.SetSize(100, 40)
	cursorTo(t, m, fMeetingStart)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	later := start.Add(4 * time.Hour)
	m.Update(shared.DateTimeChangedMsg{ID: fMeetingStart, Value: later})

	got := m.Task()
	if !got.MeetingStartTime.Equal(later) {
		t.Errorf("start = %v, want %v", got.MeetingStartTime, later)
	}
	if want := later.Add(45 * time.Minute); !got.MeetingEndTime.Equal(want) {
		t.Errorf("end = %v, want %v", got.MeetingEndTime, want)
	}
	if !got.DueDate.Equal(later) {
		t.Errorf("due should follow the start, got %v", got.DueDate)
	}
}

func TestTaskEditor_SaveNeedsTitle(t *testing.T) {
	m := NewTaskEditor(data.Task{TaskType: data.TypeManual, DueDate: time.Now()}, 6)

	if cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS}); cmd != nil {
		t.Fatal("saving an untitled manual task should be refused")
	}
	if !strings.Contains(m.View(), "A title is required") {
		t.Error("missing title error in view")
	}

	m.Update(TextInputResultMsg{Field: fTitle, Value: "Water plants"})
	cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	res, ok := cmd().(TaskEditorResultMsg)
	if !ok || !res.Saved {
		t.Fatalf("expected a saved result, got %#v", res)
	}
	if res.Task.Title != "Water plants" || res.Task.Priority != data.PriorityNone {
		t.Errorf("saved task = %+v", res.Task)
	}
}

func TestTaskEditor_UntitledTrackerGetsAutoTitle(t *testing.T) {
	m := NewTaskEditor(data.Task{TaskType: data.TypeLearning, DueDate: time.Now()}, 6)
	m.Update(TextInputResultMsg{Field: fVideosTotal, Value: "10"})
	m.Update(TextInputResultMsg{Field: fVideosDone, Value: "4"})

	res := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})().(TaskEditorResultMsg)
	if res.Task.Title != "Learning Goal" {
		t.Errorf("title = %q", res.Task.Title)
	}
	if res.Task.Description != data.LearningDescription(4, 10) {
		t.Errorf("description = %q", res.Task.Description)
	}
}

func TestTaskEditor_Subtasks(t *testing.T) {
	m := NewTaskEditor(data.Task{Title: "Move", TaskType: data.TypeManual, DueDate: time.Now()}, 6)

	m.Update(TextInputResultMsg{Field: fAddSubTask, Value: "Pack boxes"})
	m.Update(TextInputResultMsg{Field: fAddSubTask, Value: "Book van"})
	if n := len(m.Task().SubTasks); n != 2 {
		t.Fatalf("subtasks = %d, want 2", n)
	}

	cursorTo(t, m, subTaskPrefix+"0")
	m.Update(runes(" "))
	if !m.Task().SubTasks[0].Completed {
		t.Error("space should toggle the subtask")
	}

	m.Update(runes("d"))
	subs := m.Task().SubTasks
	if len(subs) != 1 || subs[0].Title != "Book van" {
		t.Errorf("after delete: %+v", subs)
	}
}

func TestTaskEditor_LoanSummary(t *testing.T) {
	m := NewTaskEditor(data.Task{
		Title: "Car", TaskType: data.TypeLoan, DueDate: time.Now(),
		LoanAmount: 10000, LoanOutstanding: 10000, LoanInterestRate: 24, LoanEmi: 100,
	}, 6)
	if !strings.Contains(m.trackerSummary(), "never repaid") {
		t.Errorf("summary = %q", m.trackerSummary())
	}

	m.Update(TextInputResultMsg{Field: fLoanEmi, Value: "1000"})
	a, err := data.Amortize(10000, 24, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(m.trackerSummary(), fmt.Sprintf("Tenure: %d months", a.TenureMonths)) {
		t.Errorf("summary = %q", m.trackerSummary())
	}
}

func TestTaskEditor_EscReturnsOriginal(t *testing.T) {
	m := NewTaskEditor(data.Task{ID: "t1", Title: "Keep", TaskType: data.TypeManual, DueDate: time.Now()}, 6)
	m.Update(TextInputResultMsg{Field: fTitle, Value: "Changed"})

	res := m.Update(tea.KeyMsg{Type: tea.KeyEsc})().(TaskEditorResultMsg)
	if res.Saved || res.Task.Title != "Keep" {
		t.Errorf("esc result = %+v", res)
	}
}

func TestTaskEditor_LateEditAfterClose(t *testing.T) {
	due := time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)
	m := NewTaskEditor(data.Task{Title: "Pay rent", DueDate: due, TaskType: data.TypeManual}, 6)
	m.SetSize(100, 40)
	cursorTo(t, m, fDue)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	step := m.Update(runes("l"))
	closing := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if step == nil || closing == nil {
		t.Fatal("expected picker commands")
	}

	m.Update(closing())
	if m.PickerOpen() {
		t.Fatal("picker should be closed")
	}
	m.Update(step())
	if m.PickerOpen() {
		t.Error("a late edit must not reopen the picker")
	}
	if want := due.AddDate(0, 0, 1); !m.Task().DueDate.Equal(want) {
		t.Errorf("due = %v, want %v", m.Task().DueDate, want)
	}
}

func TestTaskEditor_IgnoresOtherFieldEdits(t *testing.T) {
	due := time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)
	m := NewTaskEditor(data.Task{Title: "Pay rent", DueDate: due, TaskType: data.TypeManual}, 6)
	m.SetSize(100, 40)
	cursorTo(t, m, fDue)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.Update(shared.DateTimeChangedMsg{ID: fMeetingStart, Value: due.AddDate(0, 1, 0)})
	if !m.Task().DueDate.Equal(due) {
		t.Errorf("edit for another field changed due to %v", m.Task().DueDate)
	}
	if !m.PickerOpen() {
		t.Error("picker should stay open")
	}
}
