package data

import (
	"errors"
	"strings"
	"time"
)

// ErrTitleRequired is returned for a manual task with a blank title.
var ErrTitleRequired = errors.New("title is required")

// AutoTitle returns the placeholder title used when a tracker task is saved
// without one. Manual tasks have none.
func AutoTitle(kind TaskType) string {
	switch kind {
	case TypeLearning:
		return "Learning Goal"
	case TypeLoan:
		return "Loan / EMI"
	case TypeMeeting:
		return "Meeting"
	}
	return ""
}

// Prepare readies a task for saving: it trims the title, applies the
// automatic title, drops blank subtasks and regenerates the description of
// tracker tasks from their fields. For meetings the due date follows the
// start time.
func Prepare(t Task) (Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	kind := t.Kind()
	t.TaskType = kind
	if t.Title == "" {
		t.Title = AutoTitle(kind)
	}
	if t.Title == "" {
		return t, ErrTitleRequired
	}
	if t.Priority == "" {
		t.Priority = PriorityNone
	}

	subs := make([]SubTask, 0, len(t.SubTasks))
	for _, st := range t.SubTasks {
		st.Title = strings.TrimSpace(st.Title)
		if st.Title != "" {
			subs = append(subs, st)
		}
	}
	t.SubTasks = subs

	switch kind {
	case TypeLearning:
		t.Description = LearningDescription(t.CompletedVideos, t.TotalVideos)
	case TypeLoan:
		t.Description = LoanDescription(LoanOf(t))
	case TypeMeeting:
		start, end := MeetingWindow(t)
		t.MeetingStartTime = &start
		t.MeetingEndTime = &end
		t.DueDate = start
		t.Description = MeetingDescription(start, end)
	}
	return t, nil
}

// MeetingWindow returns the stored meeting window, defaulting to an hour
// starting at the due time.
func MeetingWindow(t Task) (time.Time, time.Time) {
	start := t.DueDate
	if t.MeetingStartTime != nil {
		start = *t.MeetingStartTime
	}
	end := start.Add(time.Hour)
	if t.MeetingEndTime != nil {
		end = *t.MeetingEndTime
	}
	return start, end
}

// Hydrate fills the structured tracker fields of a task that only carries
// the generated description, as older backends drop them on update.
func Hydrate(t Task) Task {
	kind := t.Kind()
	t.TaskType = kind
	switch kind {
	case TypeLearning:
		if t.TotalVideos == 0 && t.CompletedVideos == 0 {
			if c, total, ok := ParseLearning(t.Description); ok {
				t.CompletedVideos, t.TotalVideos = c, total
			}
		}
	case TypeLoan:
		if t.LoanAmount == 0 && t.LoanOutstanding == 0 && t.LoanEmi == 0 {
			if l, ok := ParseLoan(t.Description); ok {
				t.LoanAmount = l.Amount
				t.LoanOutstanding = l.Outstanding
				t.LoanInterestRate = l.Rate
				t.LoanEmi = l.Emi
			}
		}
	case TypeMeeting:
		if t.MeetingStartTime == nil || t.MeetingEndTime == nil {
			if start, end, ok := ParseMeeting(t.Description, t.DueDate); ok {
				t.MeetingStartTime = &start
				t.MeetingEndTime = &end
			}
		}
	}
	return t
}
