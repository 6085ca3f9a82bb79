package tasks

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"myplan/internal/tasks/data"
	"myplan/internal/tui/shared"
	"myplan/internal/tui/theme"
)

var (
	editorLabelStyle    = lipgloss.NewStyle().Foreground(theme.Secondary).Width(14)
	editorValueStyle    = lipgloss.NewStyle().Foreground(theme.Text)
	editorModifiedStyle = lipgloss.NewStyle().Foreground(theme.Warning)
	editorFocusStyle    = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldNumber
	fieldCount
	fieldLink
	fieldPriority
	fieldDate
	fieldSubTask
	fieldAddSubTask
)

const (
	fTitle           = "title"
	fPriority        = "priority"
	fDue             = "due"
	fDescription     = "description"
	fVideosTotal     = "videosTotal"
	fVideosDone      = "videosDone"
	fLoanAmount      = "loanAmount"
	fLoanOutstanding = "loanOutstanding"
	fLoanRate        = "loanRate"
	fLoanEmi         = "loanEmi"
	fMeetingStart    = "meetingStart"
	fMeetingEnd      = "meetingEnd"
	fMeetingLink     = "meetingLink"
	fMeetingInfo     = "meetingInfo"
	fAddSubTask      = "addSubTask"
	subTaskPrefix    = "subtask:"
)

type editorRow struct {
	id    string
	label string
	kind  fieldKind
	index int // subtask index for fieldSubTask rows
}

func baseRows(kind data.TaskType) []editorRow {
	rows := []editorRow{
		{id: fTitle, label: "Title", kind: fieldText},
		{id: fPriority, label: "Priority", kind: fieldPriority},
	}
	switch kind {
	case data.TypeLearning:
		rows = append(rows,
			editorRow{id: fDue, label: "Due", kind: fieldDate},
			editorRow{id: fVideosTotal, label: "Videos", kind: fieldCount},
			editorRow{id: fVideosDone, label: "Watched", kind: fieldCount},
		)
	case data.TypeLoan:
		rows = append(rows,
			editorRow{id: fDue, label: "Next EMI", kind: fieldDate},
			editorRow{id: fLoanAmount, label: "Amount", kind: fieldNumber},
			editorRow{id: fLoanOutstanding, label: "Outstanding", kind: fieldNumber},
			editorRow{id: fLoanRate, label: "Rate %", kind: fieldNumber},
			editorRow{id: fLoanEmi, label: "EMI", kind: fieldNumber},
		)
	case data.TypeMeeting:
		rows = append(rows,
			editorRow{id: fMeetingStart, label: "Starts", kind: fieldDate},
			editorRow{id: fMeetingEnd, label: "Ends", kind: fieldDate},
			editorRow{id: fMeetingLink, label: "Link", kind: fieldLink},
			editorRow{id: fMeetingInfo, label: "Info", kind: fieldText},
		)
	default:
		rows = append(rows,
			editorRow{id: fDue, label: "Due", kind: fieldDate},
			editorRow{id: fDescription, label: "Description", kind: fieldText},
		)
	}
	return rows
}

// TaskEditorModel edits one task. The date fields are edited through a
// shared DateTimePicker that this model hosts.
type TaskEditorModel struct {
	task     data.Task
	original data.Task
	kind     data.TaskType
	rows     []editorRow
	cursor   int

	input  *TextInputModel
	picker *shared.DateTimePicker
	// pickerField is the date row the picker was last opened for.
	pickerField string

	err    string
	Width  int
	Height int
}

// TaskEditorResultMsg is sent when the editor closes.
type TaskEditorResultMsg struct {
	Task  data.Task
	Saved bool
}

// NewTaskEditor opens task for editing. Tracker fields missing from the
// task are recovered from its description first.
func NewTaskEditor(task data.Task, clockRadius int) *TaskEditorModel {
	task = data.Hydrate(task)
	task.SubTasks = append([]data.SubTask(nil), task.SubTasks...)
	if task.Priority == "" {
		task.Priority = data.PriorityNone
	}
	if task.Kind() == data.TypeMeeting {
		start, end := data.MeetingWindow(task)
		task.MeetingStartTime, task.MeetingEndTime = &start, &end
	}
	m := &TaskEditorModel{
		task:     task,
		original: task,
		kind:     task.Kind(),
		picker:   shared.NewDateTimePicker(clockRadius),
		Width:    64,
	}
	m.original.SubTasks = append([]data.SubTask(nil), task.SubTasks...)
	m.rebuildRows()
	return m
}

func (m *TaskEditorModel) SetSize(width, height int) {
	m.Width = width
	m.Height = height
	m.picker.SetSize(width, height)
	if m.input != nil {
		m.input.SetWidth(min(width, 72))
	}
}

// Task returns the task as currently edited.
func (m *TaskEditorModel) Task() data.Task {
	return m.task
}

// PickerOpen reports whether the date-time picker has the screen.
func (m *TaskEditorModel) PickerOpen() bool {
	return m.picker.Visible()
}

func (m *TaskEditorModel) rebuildRows() {
	rows := baseRows(m.kind)
	for i := range m.task.SubTasks {
		rows = append(rows, editorRow{id: fmt.Sprintf("%s%d", subTaskPrefix, i), label: "Subtask", kind: fieldSubTask, index: i})
	}
	rows = append(rows, editorRow{id: fAddSubTask, label: "", kind: fieldAddSubTask})
	m.rows = rows
	m.cursor = min(max(m.cursor, 0), len(m.rows)-1)
}

func (m *TaskEditorModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case shared.DateTimeChangedMsg:
		if msg.ID != m.pickerField {
			return nil
		}
		// Edits can land after the close; they must not reopen the picker.
		m.applyDate(msg.ID, msg.Value)
		m.picker.SetProps(m.picker.Visible(), msg.Value)
		return nil
	case shared.DateTimePickerClosedMsg:
		if msg.ID != m.pickerField {
			return nil
		}
		m.picker.SetProps(false, m.dateValue(msg.ID))
		return nil
	case TextInputResultMsg:
		m.input = nil
		if !msg.Cancelled {
			m.applyText(msg.Field, msg.Value)
		}
		return nil
	}

	if m.picker.Visible() {
		return m.picker.Update(msg)
	}
	if m.input != nil {
		return m.input.Update(msg)
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	m.err = ""
	row := m.rows[m.cursor]

	switch k.String() {
	case "j", "down", "tab":
		m.cursor = (m.cursor + 1) % len(m.rows)
	case "k", "up", "shift+tab":
		m.cursor = (m.cursor - 1 + len(m.rows)) % len(m.rows)
	case "ctrl+s":
		return m.save()
	case "esc":
		original := m.original
		return func() tea.Msg { return TaskEditorResultMsg{Task: original} }
	case " ", "x":
		switch row.kind {
		case fieldPriority:
			m.task.Priority = m.task.Priority.Next()
		case fieldSubTask:
			m.task.SubTasks[row.index].Completed = !m.task.SubTasks[row.index].Completed
		}
	case "d":
		if row.kind == fieldSubTask {
			m.task.SubTasks = append(m.task.SubTasks[:row.index], m.task.SubTasks[row.index+1:]...)
			m.rebuildRows()
		}
	case "+", "=":
		m.step(row, 1)
	case "-":
		m.step(row, -1)
	case "enter":
		return m.edit(row)
	}
	return nil
}

func (m *TaskEditorModel) edit(row editorRow) tea.Cmd {
	switch row.kind {
	case fieldPriority:
		m.task.Priority = m.task.Priority.Next()
		return nil
	case fieldDate:
		m.picker.SetSize(m.Width, m.Height)
		m.pickerField = row.id
		m.picker.Open(row.id, row.label, m.dateValue(row.id))
		return nil
	case fieldSubTask:
		return m.openInput(row.id, "Subtask", "", m.task.SubTasks[row.index].Title, nil)
	case fieldAddSubTask:
		return m.openInput(fAddSubTask, "New subtask", "what needs doing", "", nil)
	case fieldNumber:
		return m.openInput(row.id, row.label, "0", m.textValue(row.id), ValidateNumber)
	case fieldCount:
		return m.openInput(row.id, row.label, "0", m.textValue(row.id), ValidateCount)
	case fieldLink:
		return m.openInput(row.id, row.label, "https://", m.textValue(row.id), ValidateLink)
	}
	placeholder := ""
	if row.id == fTitle {
		placeholder = data.AutoTitle(m.kind)
	}
	return m.openInput(row.id, row.label, placeholder, m.textValue(row.id), nil)
}

func (m *TaskEditorModel) openInput(field, prompt, placeholder, value string, validator func(string) error) tea.Cmd {
	m.input = NewTextInput(field, prompt, placeholder, validator)
	m.input.SetWidth(min(max(m.Width, 30), 72))
	m.input.SetValue(value)
	return m.input.Input.Focus()
}

func (m *TaskEditorModel) save() tea.Cmd {
	t, err := data.Prepare(m.task)
	if err != nil {
		if errors.Is(err, data.ErrTitleRequired) {
			m.err = "A title is required"
		} else {
			m.err = err.Error()
		}
		return nil
	}
	return func() tea.Msg { return TaskEditorResultMsg{Task: t, Saved: true} }
}

func (m *TaskEditorModel) step(row editorRow, delta int) {
	switch row.id {
	case fVideosTotal:
		m.task.TotalVideos = max(m.task.TotalVideos+delta, 0)
		m.task.CompletedVideos = min(m.task.CompletedVideos, m.task.TotalVideos)
	case fVideosDone:
		m.task.CompletedVideos = min(max(m.task.CompletedVideos+delta, 0), m.task.TotalVideos)
	}
}

func (m *TaskEditorModel) dateValue(id string) time.Time {
	return dateOf(m.task, id)
}

func dateOf(t data.Task, id string) time.Time {
	switch id {
	case fMeetingStart:
		if t.MeetingStartTime != nil {
			return *t.MeetingStartTime
		}
	case fMeetingEnd:
		if t.MeetingEndTime != nil {
			return *t.MeetingEndTime
		}
	}
	return t.DueDate
}

func (m *TaskEditorModel) applyDate(id string, v time.Time) {
	switch id {
	case fMeetingStart:
		// Moving the start keeps the meeting's length.
		oldStart, oldEnd := data.MeetingWindow(m.task)
		start, end := v, v.Add(oldEnd.Sub(oldStart))
		m.task.MeetingStartTime, m.task.MeetingEndTime = &start, &end
		m.task.DueDate = v
	case fMeetingEnd:
		end := v
		m.task.MeetingEndTime = &end
	default:
		m.task.DueDate = v
	}
}

func (m *TaskEditorModel) textValue(id string) string {
	return textOf(m.task, id)
}

func textOf(t data.Task, id string) string {
	switch id {
	case fTitle:
		return t.Title
	case fDescription:
		return t.Description
	case fVideosTotal:
		return strconv.Itoa(t.TotalVideos)
	case fVideosDone:
		return strconv.Itoa(t.CompletedVideos)
	case fLoanAmount:
		return formatAmount(t.LoanAmount)
	case fLoanOutstanding:
		return formatAmount(t.LoanOutstanding)
	case fLoanRate:
		return formatAmount(t.LoanInterestRate)
	case fLoanEmi:
		return formatAmount(t.LoanEmi)
	case fMeetingLink:
		return t.MeetingLink
	case fMeetingInfo:
		return t.MeetingInfo
	}
	return ""
}

func (m *TaskEditorModel) applyText(field, value string) {
	f, _ := strconv.ParseFloat(value, 64)
	n, _ := strconv.Atoi(value)
	switch {
	case field == fTitle:
		m.task.Title = value
	case field == fDescription:
		m.task.Description = value
	case field == fVideosTotal:
		m.task.TotalVideos = n
		m.task.CompletedVideos = min(m.task.CompletedVideos, n)
	case field == fVideosDone:
		m.task.CompletedVideos = n
		if n > m.task.TotalVideos {
			m.task.TotalVideos = n
		}
	case field == fLoanAmount:
		m.task.LoanAmount = f
	case field == fLoanOutstanding:
		m.task.LoanOutstanding = f
	case field == fLoanRate:
		m.task.LoanInterestRate = f
	case field == fLoanEmi:
		m.task.LoanEmi = f
	case field == fMeetingLink:
		m.task.MeetingLink = value
	case field == fMeetingInfo:
		m.task.MeetingInfo = value
	case field == fAddSubTask:
		if value != "" {
			m.task.SubTasks = append(m.task.SubTasks, data.SubTask{Title: value})
			m.rebuildRows()
		}
	case strings.HasPrefix(field, subTaskPrefix):
		i, err := strconv.Atoi(strings.TrimPrefix(field, subTaskPrefix))
		if err == nil && i < len(m.task.SubTasks) {
			if value == "" {
				m.task.SubTasks = append(m.task.SubTasks[:i], m.task.SubTasks[i+1:]...)
				m.rebuildRows()
			} else {
				m.task.SubTasks[i].Title = value
			}
		}
	}
}

func formatAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (m *TaskEditorModel) displayValue(row editorRow) string {
	t := m.task
	switch row.kind {
	case fieldPriority:
		return t.Priority.Label()
	case fieldDate:
		return m.dateValue(row.id).Format("Mon 02 Jan 2006 03:04 PM")
	case fieldSubTask:
		st := t.SubTasks[row.index]
		mark := "[ ]"
		if st.Completed {
			mark = "[x]"
		}
		return mark + " " + st.Title
	case fieldAddSubTask:
		return theme.Muted.Render("+ add subtask")
	}
	v := m.textValue(row.id)
	if v == "" {
		return theme.Muted.Render("(none)")
	}
	return v
}

func (m *TaskEditorModel) modified(row editorRow) bool {
	if row.kind == fieldSubTask || row.kind == fieldAddSubTask {
		return false
	}
	switch row.kind {
	case fieldPriority:
		return m.task.Priority != m.original.Priority
	case fieldDate:
		return !dateOf(m.original, row.id).Equal(dateOf(m.task, row.id))
	}
	return textOf(m.original, row.id) != textOf(m.task, row.id)
}

// trackerSummary is the live line under tracker fields.
func (m *TaskEditorModel) trackerSummary() string {
	t := m.task
	switch m.kind {
	case data.TypeLearning:
		return data.LearningDescription(t.CompletedVideos, t.TotalVideos)
	case data.TypeLoan:
		a, err := data.Amortize(t.LoanOutstanding, t.LoanInterestRate, t.LoanEmi)
		if errors.Is(err, data.ErrNeverRepaid) {
			return theme.Error.Render("EMI does not cover the interest: never repaid")
		}
		if a.TenureMonths == 0 {
			return theme.Muted.Render("Enter outstanding, rate and EMI to see the tenure")
		}
		return fmt.Sprintf("Tenure: %d months · Payable: %.2f · Interest: %.2f", a.TenureMonths, a.TotalPayable, a.TotalInterest)
	case data.TypeMeeting:
		start, end := data.MeetingWindow(t)
		return "Lasts " + data.MeetingDuration(start, end)
	}
	return ""
}

func (m *TaskEditorModel) View() string {
	if m.picker.Visible() {
		return m.picker.View()
	}
	if m.input != nil {
		return m.input.View()
	}

	var b strings.Builder
	heading := "Edit task"
	if m.task.ID == "" {
		heading = "New task"
	}
	b.WriteString(theme.Title.Render(heading) + "  " + theme.Kind.Render(strings.ToLower(string(m.kind))) + "\n\n")

	for i, row := range m.rows {
		prefix := "  "
		if i == m.cursor {
			prefix = editorFocusStyle.Render("> ")
		}
		value := m.displayValue(row)
		if m.modified(row) {
			value = editorModifiedStyle.Render(value + " *")
		} else {
			value = editorValueStyle.Render(value)
		}
		b.WriteString(prefix + editorLabelStyle.Render(row.label) + value + "\n")
	}

	if summary := m.trackerSummary(); summary != "" {
		b.WriteString("\n" + summary + "\n")
	}
	if m.err != "" {
		b.WriteString("\n" + theme.Error.Render(m.err) + "\n")
	}
	b.WriteString("\n" + theme.ModalHelp.Render("[j/k] move  [enter] edit  [space] cycle/toggle  [+/-] step  [d] drop subtask"))
	b.WriteString("\n" + theme.ModalHelp.Render("[ctrl+s] save  [esc] cancel"))

	return theme.ModalBox.Width(min(m.Width, 80)).Render(b.String())
}
