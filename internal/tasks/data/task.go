package data

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Priority mirrors the backend enum.
type Priority string

const (
	PriorityNone     Priority = "NONE"
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Priorities in cycling order.
var Priorities = []Priority{PriorityNone, PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// Label is the human form shown in lists.
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityCritical:
		return "Critical"
	}
	return "None"
}

// Next returns the following priority, wrapping after CRITICAL.
func (p Priority) Next() Priority {
	for i, q := range Priorities {
		if q == p {
			return Priorities[(i+1)%len(Priorities)]
		}
	}
	return PriorityLow
}

// ParsePriority accepts the enum name in any case. Empty means NONE.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return PriorityNone, nil
	}
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	for _, q := range Priorities {
		if q == p {
			return p, nil
		}
	}
	return PriorityNone, fmt.Errorf("unknown priority %q", s)
}

// TaskType distinguishes plain to-dos from the tracker kinds.
type TaskType string

const (
	TypeManual   TaskType = "MANUAL"
	TypeLearning TaskType = "LEARNING"
	TypeLoan     TaskType = "LOAN"
	TypeMeeting  TaskType = "MEETING"
)

// ParseTaskType accepts the enum name in any case. Empty means MANUAL.
func ParseTaskType(s string) (TaskType, error) {
	switch TaskType(strings.ToUpper(strings.TrimSpace(s))) {
	case "", TypeManual:
		return TypeManual, nil
	case TypeLearning:
		return TypeLearning, nil
	case TypeLoan:
		return TypeLoan, nil
	case TypeMeeting:
		return TypeMeeting, nil
	}
	return TypeManual, fmt.Errorf("unknown task type %q", s)
}

type SubTask struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task is the backend's task document.
type Task struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Completed   bool      `json:"completed"`
	DueDate     time.Time `json:"dueDate"`
	Priority    Priority  `json:"priority"`
	Description string    `json:"description,omitempty"`
	SubTasks    []SubTask `json:"subTasks"`
	TaskType    TaskType  `json:"taskType,omitempty"`

	TotalVideos     int `json:"totalVideos,omitempty"`
	CompletedVideos int `json:"completedVideos,omitempty"`

	LoanAmount       float64 `json:"loanAmount,omitempty"`
	LoanOutstanding  float64 `json:"loanOutstanding,omitempty"`
	LoanInterestRate float64 `json:"loanInterestRate,omitempty"`
	LoanEmi          float64 `json:"loanEmi,omitempty"`

	MeetingStartTime *time.Time `json:"meetingStartTime,omitempty"`
	MeetingEndTime   *time.Time `json:"meetingEndTime,omitempty"`
	MeetingInfo      string     `json:"meetingInfo,omitempty"`
	MeetingLink      string     `json:"meetingLink,omitempty"`
}

var nowFunc = time.Now

func (t Task) String() string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %s (%s, due %s)", mark, t.Title, t.Priority.Label(), t.DueDate.Format("2006-01-02 15:04"))
}

// ShortID is the id prefix shown in CLI output.
func (t Task) ShortID() string {
	if len(t.ID) > 8 {
		return t.ID[:8]
	}
	return t.ID
}

// Kind returns the explicit task type or, for tasks written before the
// backend stored one, infers it from the description.
func (t Task) Kind() TaskType {
	if t.TaskType != "" {
		return t.TaskType
	}
	return InferType(t.Description)
}

// InferType guesses a task type from its generated description.
func InferType(description string) TaskType {
	switch {
	case strings.Contains(description, "Progress:"):
		return TypeLearning
	case strings.Contains(description, "Loan:"):
		return TypeLoan
	case strings.Contains(description, "Meeting:"):
		return TypeMeeting
	}
	return TypeManual
}

// IsOverdue reports a past due time on an open task.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueDate.Before(now)
}

// PendingSubTasks counts unfinished subtasks.
func (t Task) PendingSubTasks() int {
	n := 0
	for _, st := range t.SubTasks {
		if !st.Completed {
			n++
		}
	}
	return n
}

type taskAlias Task

type taskWire struct {
	taskAlias
	DueDate          json.RawMessage `json:"dueDate"`
	MeetingStartTime json.RawMessage `json:"meetingStartTime"`
	MeetingEndTime   json.RawMessage `json:"meetingEndTime"`
}

// UnmarshalJSON accepts the date shapes the backend has been seen to emit:
// RFC 3339 text, zone-less ISO text and epoch milliseconds. A missing or
// unreadable due date becomes the current time.
func (t *Task) UnmarshalJSON(b []byte) error {
	var w taskWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*t = Task(w.taskAlias)

	if due, ok := decodeTime(w.DueDate); ok {
		t.DueDate = due
	} else {
		t.DueDate = nowFunc()
	}
	if start, ok := decodeTime(w.MeetingStartTime); ok {
		t.MeetingStartTime = &start
	}
	if end, ok := decodeTime(w.MeetingEndTime); ok {
		t.MeetingEndTime = &end
	}
	if t.Priority == "" {
		t.Priority = PriorityNone
	}
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func decodeTime(raw json.RawMessage) (time.Time, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return time.Time{}, false
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms), true
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return time.Time{}, false
	}
	return ParseTime(text)
}

// ParseTime tries each known layout. Zone-less text is read as local time.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if v, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return v, true
		}
	}
	return time.Time{}, false
}
