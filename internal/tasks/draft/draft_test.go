package draft

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"myplan/internal/tasks/data"
)

const loanNote = `---
due: 2024-07-01 09:30
priority: high
loan:
  amount: 150000
  outstanding: 100000
  rate: 12
  emi: 2000
---

# Car loan

Refinance before the rate resets.
Ask about prepayment.

- [ ] call the bank
- [x] collect statements
- plain bullet
`

func TestParse_LoanNote(t *testing.T) {
	d, err := Parse([]byte(loanNote))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title != "Car loan" {
		t.Errorf("expected 'Car loan', got %q", d.Title)
	}
	if d.Description != "Refinance before the rate resets.\nAsk about prepayment." {
		t.Errorf("unexpected description %q", d.Description)
	}
	if len(d.SubTasks) != 2 {
		t.Fatalf("expected 2 subtasks, got %+v", d.SubTasks)
	}
	if d.SubTasks[0].Title != "call the bank" || d.SubTasks[0].Completed {
		t.Errorf("unexpected first subtask %+v", d.SubTasks[0])
	}
	if !d.SubTasks[1].Completed {
		t.Errorf("expected second subtask checked")
	}

	task, err := d.Task(time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.TaskType != data.TypeLoan || task.LoanEmi != 2000 {
		t.Errorf("unexpected loan fields %+v", task)
	}
	if task.Priority != data.PriorityHigh {
		t.Errorf("expected HIGH, got %s", task.Priority)
	}
	if task.DueDate.Hour() != 9 || task.DueDate.Minute() != 30 || task.DueDate.Day() != 1 {
		t.Errorf("unexpected due %v", task.DueDate)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	d, err := Parse([]byte("Just a thought.\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title != "" || d.Description != "Just a thought." {
		t.Errorf("unexpected draft %+v", d)
	}
	now := time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)
	task, err := d.Task(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !task.DueDate.Equal(now) || task.TaskType != data.TypeManual {
		t.Errorf("expected defaults, got %+v", task)
	}
}

func TestParse_BadFrontmatter(t *testing.T) {
	if _, err := Parse([]byte("---\ndue: [unclosed\n---\n# x\n")); err == nil {
		t.Error("expected frontmatter error")
	}
	d, err := Parse([]byte("---\npriority: someday\n---\n# x\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := d.Task(time.Now()); err == nil {
		t.Error("expected priority error")
	}
}

func TestRead_TitleFromFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "water-plants.md")
	if err := os.WriteFile(path, []byte("Every other day.\n"), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, err := Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title != "water-plants" {
		t.Errorf("expected filename title, got %q", d.Title)
	}
}

func TestRender_ReadsBack(t *testing.T) {
	start := time.Date(2024, 5, 14, 15, 30, 0, 0, time.Local)
	end := start.Add(45 * time.Minute)
	task := data.Task{
		Title:            "Planning review",
		DueDate:          start,
		Priority:         data.PriorityMedium,
		TaskType:         data.TypeMeeting,
		Description:      data.MeetingDescription(start, end),
		MeetingStartTime: &start,
		MeetingEndTime:   &end,
		MeetingLink:      "https://zoom.us/j/1",
		SubTasks:         []data.SubTask{{Title: "agenda", Completed: true}},
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "meeting.md")
	if err := Write(task, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, err := Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := d.Task(time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Title != task.Title || got.Priority != task.Priority || got.TaskType != data.TypeMeeting {
		t.Errorf("unexpected task %+v", got)
	}
	if got.MeetingEndTime == nil || !got.MeetingEndTime.Equal(end) {
		t.Errorf("expected end %v, got %v", end, got.MeetingEndTime)
	}
	if got.MeetingLink != task.MeetingLink {
		t.Errorf("expected link, got %q", got.MeetingLink)
	}
	if len(got.SubTasks) != 1 || !got.SubTasks[0].Completed {
		t.Errorf("unexpected subtasks %+v", got.SubTasks)
	}
}
