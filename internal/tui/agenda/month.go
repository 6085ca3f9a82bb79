package agenda

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	agendapkg "myplan/internal/agenda"
	"myplan/internal/tasks/data"
	"myplan/internal/tui/messages"
)

// MonthModel is the month agenda view: a calendar grid with the selected
// day's tasks underneath.
type MonthModel struct {
	now        func() time.Time
	viewMonth  time.Time // first of the month being viewed
	cursorDate time.Time
	tasks      []data.Task
	bucketMap  map[string]agendapkg.DateBucket
	// Detail panel: items for the cursor day
	detailItems []agendapkg.Item
	detailIdx   int
	inDetail    bool
	width       int
	height      int
}

// NewMonthModel creates a month view opened on today. now may be nil.
func NewMonthModel(now func() time.Time) MonthModel {
	if now == nil {
		now = time.Now
	}
	m := MonthModel{now: now}
	m.jumpTo(now())
	return m
}

// SetTasks replaces the data and keeps the cursor where it is.
func (m *MonthModel) SetTasks(tasks []data.Task) {
	m.tasks = tasks
	m.refreshData()
}

// SetSize updates the view dimensions
func (m *MonthModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// CursorDate is the day under the calendar cursor.
func (m MonthModel) CursorDate() time.Time {
	return m.cursorDate
}

// InDetail reports whether keys move within the day's task list.
func (m MonthModel) InDetail() bool {
	return m.inDetail
}

func (m *MonthModel) jumpTo(day time.Time) {
	m.cursorDate = day
	m.viewMonth = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.Local)
	m.refreshData()
}

func (m *MonthModel) refreshData() {
	buckets := agendapkg.Query(m.tasks, agendapkg.MonthRange(m.viewMonth))
	m.bucketMap = make(map[string]agendapkg.DateBucket, len(buckets))
	for _, b := range buckets {
		m.bucketMap[dayKey(b.Date)] = b
	}
	m.refreshDetail()
}

func (m *MonthModel) refreshDetail() {
	if bucket, ok := m.bucketMap[dayKey(m.cursorDate)]; ok {
		m.detailItems = bucket.AllItems()
	} else {
		m.detailItems = nil
	}
	if m.detailIdx >= len(m.detailItems) {
		m.detailIdx = max(0, len(m.detailItems)-1)
	}
	if len(m.detailItems) == 0 {
		m.inDetail = false
	}
}

// Update handles key events for the month view
func (m MonthModel) Update(msg tea.Msg) (MonthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inDetail {
			return m.updateDetail(msg)
		}
		return m.updateCalendar(msg)
	}
	return m, nil
}

func (m MonthModel) updateCalendar(msg tea.KeyMsg) (MonthModel, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		m.moveCursor(-1)
	case "l", "right":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-7)
	case "j", "down":
		m.moveCursor(7)
	case "H":
		m.jumpTo(m.viewMonth.AddDate(0, -1, 0))
	case "L":
		m.jumpTo(m.viewMonth.AddDate(0, 1, 0))
	case "t":
		m.jumpTo(m.now())
	case "enter":
		if len(m.detailItems) == 0 {
			return m, messages.Status("Nothing on "+m.cursorDate.Format("Mon, Jan 2"), false)
		}
		m.inDetail = true
		m.detailIdx = 0
	}
	return m, nil
}

func (m MonthModel) updateDetail(msg tea.KeyMsg) (MonthModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.detailIdx < len(m.detailItems)-1 {
			m.detailIdx++
		}
	case "k", "up":
		if m.detailIdx > 0 {
			m.detailIdx--
		}
	case "esc":
		m.inDetail = false
	case "enter":
		if m.detailIdx < len(m.detailItems) {
			id := m.detailItems[m.detailIdx].Task.ID
			m.inDetail = false
			return m, func() tea.Msg {
				return messages.FocusTaskMsg{ID: id}
			}
		}
	}
	return m, nil
}

func (m *MonthModel) moveCursor(days int) {
	m.cursorDate = m.cursorDate.AddDate(0, 0, days)
	if m.cursorDate.Year() != m.viewMonth.Year() || m.cursorDate.Month() != m.viewMonth.Month() {
		m.jumpTo(m.cursorDate)
		return
	}
	m.refreshDetail()
}

// View renders the month agenda view
func (m MonthModel) View() string {
	var sb strings.Builder

	title := calMonthTitleStyle.Render(" " + m.viewMonth.Format("January 2006"))
	nav := navHintStyle.Render("[h/l: day] [k/j: week] [H/L: month] [t: today] [enter: tasks] [c: list]")
	titleLine := title
	if padding := m.width - lipgloss.Width(title) - lipgloss.Width(nav) - 1; padding > 0 {
		titleLine += strings.Repeat(" ", padding) + nav
	}
	sb.WriteString(titleLine)
	sb.WriteString("\n\n")

	sb.WriteString(m.renderCalendar())
	sb.WriteString("\n")
	sb.WriteString(m.renderDetailPanel())

	return lipgloss.NewStyle().MaxHeight(max(m.height, 1)).Render(sb.String())
}

func (m MonthModel) renderCalendar() string {
	var sb strings.Builder

	for _, d := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		sb.WriteString(calDayHeaderStyle.Render(d))
	}
	sb.WriteString("\n")

	startWeekday := int(m.viewMonth.Weekday())
	daysInMonth := m.viewMonth.AddDate(0, 1, -1).Day()
	today := m.now()

	currentDay := 1 - startWeekday
	for week := 0; week < 6 && currentDay <= daysInMonth; week++ {
		for weekday := 0; weekday < 7; weekday++ {
			if currentDay < 1 || currentDay > daysInMonth {
				sb.WriteString(calEmptyStyle.Render(""))
				currentDay++
				continue
			}
			date := time.Date(m.viewMonth.Year(), m.viewMonth.Month(), currentDay, 0, 0, 0, 0, time.Local)
			count := m.bucketMap[dayKey(date)].TotalCount()

			dayStr := fmt.Sprintf("%2d", currentDay)
			if count > 0 {
				dayStr += "*"
			}

			switch {
			case isSameDay(date, m.cursorDate):
				sb.WriteString(calCursorStyle.Render(dayStr))
			case isSameDay(date, today):
				sb.WriteString(calTodayStyle.Render(dayStr))
			case count > 0:
				sb.WriteString(calHasItemsStyle.Render(dayStr))
			default:
				sb.WriteString(calDayStyle.Render(dayStr))
			}
			currentDay++
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m MonthModel) renderDetailPanel() string {
	var sb strings.Builder

	header := detailHeaderStyle.Render(" " + m.cursorDate.Format("Mon, Jan 2"))
	if len(m.detailItems) == 0 {
		sb.WriteString(header + "  " + emptyStyle.Render("No tasks") + "\n")
		return sb.String()
	}

	sb.WriteString(header + " " + countStyle.Render(fmt.Sprintf("(%d tasks)", len(m.detailItems))))
	if m.inDetail {
		sb.WriteString("  " + navHintStyle.Render("[j/k: navigate] [enter: open] [esc: back]"))
	}
	sb.WriteString("\n")

	now := m.now()
	for i, item := range m.detailItems {
		selected := m.inDetail && i == m.detailIdx
		sb.WriteString("     ")
		sb.WriteString(RenderItemLine(item, selected, m.width-6, now))
		sb.WriteString("\n")
	}

	return sb.String()
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func isSameDay(d1, d2 time.Time) bool {
	return d1.Year() == d2.Year() && d1.Month() == d2.Month() && d1.Day() == d2.Day()
}
