package tasks

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"myplan/internal/tasks/data"
	"myplan/internal/tui/messages"
	"myplan/internal/tui/shared"
	"myplan/internal/tui/theme"
)

var (
	cursorStyle = lipgloss.NewStyle().Foreground(theme.Success)
	emptyStyle  = lipgloss.NewStyle().Foreground(theme.TextMuted).Italic(true)
)

// Options carries the display settings the manager needs from config.
type Options struct {
	DefaultTab    data.Tab
	ClockRadius   int
	MarkdownStyle string
	Now           func() time.Time
}

// taskSource adapts a task slice for fuzzy matching on title and
// description.
type taskSource []data.Task

func (s taskSource) String(i int) string {
	return s[i].Title + " " + s[i].Description
}

func (s taskSource) Len() int {
	return len(s)
}

// TaskManagerModel is the tabbed task list and the modals launched from it.
type TaskManagerModel struct {
	tasks   []data.Task
	buckets data.Buckets
	tab     data.Tab
	display []data.Task

	cursor       int
	scrollOffset int

	searchActive bool
	searchTyping bool
	searchInput  textinput.Model

	choosingType bool
	editor       *TaskEditorModel
	confirm      *ConfirmationModal
	scan         *ScanModal
	detail       *DetailModel

	help     help.Model
	showHelp bool
	opts     Options

	width  int
	height int
}

func NewTaskManagerModel(opts Options) TaskManagerModel {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultTab == "" {
		opts.DefaultTab = data.TabToday
	}
	if opts.MarkdownStyle == "" {
		opts.MarkdownStyle = "dark"
	}
	m := TaskManagerModel{
		tab:     opts.DefaultTab,
		help:    help.New(),
		opts:    opts,
		buckets: data.Buckets{},
	}
	return m
}

func (m *TaskManagerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	if m.editor != nil {
		m.editor.SetSize(width, height)
	}
	m.ensureCursorVisible()
}

// SetTasks replaces the list, keeping the cursor on the same task when it
// is still present.
func (m *TaskManagerModel) SetTasks(tasks []data.Task) {
	var selectedID string
	if t := m.selectedTask(); t != nil {
		selectedID = t.ID
	}
	m.tasks = tasks
	m.refresh()
	if selectedID != "" {
		m.FocusTask(selectedID)
	}
}

// FocusTask moves the cursor onto a task, switching tabs if needed.
func (m *TaskManagerModel) FocusTask(id string) {
	if !m.searchActive {
		for _, tab := range data.Tabs {
			for _, t := range m.buckets[tab] {
				if t.ID == id && tab != m.tab {
					m.tab = tab
					m.refresh()
				}
			}
		}
	}
	for i, t := range m.display {
		if t.ID == id {
			m.cursor = i
			m.ensureCursorVisible()
			return
		}
	}
}

// ActiveTab is the tab whose tasks are listed.
func (m *TaskManagerModel) ActiveTab() data.Tab {
	return m.tab
}

// Displayed returns the rows currently listed.
func (m *TaskManagerModel) Displayed() []data.Task {
	return m.display
}

func (m *TaskManagerModel) refresh() {
	now := m.opts.Now()
	m.buckets = data.Categorize(m.tasks, now)
	m.tab = m.buckets.FirstNonEmpty(m.tab)

	if m.searchActive && m.searchInput.Value() != "" {
		source := taskSource(m.tasks)
		matches := fuzzy.FindFrom(m.searchInput.Value(), source)
		m.display = make([]data.Task, 0, len(matches))
		for _, match := range matches {
			m.display = append(m.display, m.tasks[match.Index])
		}
	} else {
		m.display = m.buckets[m.tab]
	}

	m.cursor = min(m.cursor, len(m.display)-1)
	m.cursor = max(m.cursor, 0)
	m.ensureCursorVisible()
}

// IsInModalState reports whether keys belong to a modal rather than to the
// app's global bindings.
func (m *TaskManagerModel) IsInModalState() bool {
	return m.editor != nil || m.confirm != nil || m.scan != nil || m.detail != nil ||
		m.choosingType || m.searchTyping || m.showHelp
}

func (m TaskManagerModel) Update(msg tea.Msg) (TaskManagerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case TaskEditorResultMsg:
		m.editor = nil
		if !msg.Saved {
			return m, nil
		}
		task := msg.Task
		return m, func() tea.Msg { return messages.SaveTaskMsg{Task: task} }
	case ConfirmationResultMsg:
		m.confirm = nil
		if !msg.Confirmed {
			return m, nil
		}
		id := msg.TaskID
		return m, func() tea.Msg { return messages.DeleteTaskMsg{ID: id} }
	case ScanResultMsg:
		m.scan = nil
		if msg.Cancelled {
			return m, nil
		}
		m.openEditor(msg.Task)
		return m, nil
	case DetailClosedMsg:
		m.detail = nil
		return m, nil
	}

	switch {
	case m.editor != nil:
		return m, m.editor.Update(msg)
	case m.confirm != nil:
		if k, ok := msg.(tea.KeyMsg); ok {
			return m, m.confirm.Update(k)
		}
		return m, nil
	case m.scan != nil:
		return m, m.scan.Update(msg)
	case m.detail != nil:
		return m, m.detail.Update(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			m.moveCursor(1)
		}
	}
	return m, nil
}

func (m TaskManagerModel) handleKey(msg tea.KeyMsg) (TaskManagerModel, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.choosingType {
		return m.handleTypeChoice(msg)
	}
	if m.searchActive {
		if handled, cmd := m.handleSearchKey(msg); handled {
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, listKeys.Down):
		m.moveCursor(1)
	case key.Matches(msg, listKeys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, listKeys.NextTab):
		m.stepTab(1)
	case key.Matches(msg, listKeys.PrevTab):
		m.stepTab(-1)
	case key.Matches(msg, listKeys.Toggle):
		if t := m.selectedTask(); t != nil {
			id := t.ID
			return m, func() tea.Msg { return messages.ToggleTaskMsg{ID: id} }
		}
	case key.Matches(msg, listKeys.New):
		m.choosingType = true
	case key.Matches(msg, listKeys.Edit):
		if t := m.selectedTask(); t != nil {
			m.openEditor(*t)
		}
	case key.Matches(msg, listKeys.Delete):
		if t := m.selectedTask(); t != nil {
			m.confirm = NewConfirmationModal("Delete task?", t.Title, t.ID, 50)
		}
	case key.Matches(msg, listKeys.Search):
		return m, m.startSearch()
	case key.Matches(msg, listKeys.Scan):
		m.scan = NewScanModal(min(m.width, 80), m.opts.Now)
		return m, m.scan.Focus()
	case key.Matches(msg, listKeys.Detail):
		if t := m.selectedTask(); t != nil {
			m.detail = NewDetail(*t, m.opts.MarkdownStyle, min(m.width, 100), m.height, m.opts.Now())
		}
	case key.Matches(msg, listKeys.Refresh):
		return m, messages.Refresh
	case key.Matches(msg, listKeys.Help):
		m.showHelp = true
	}
	return m, nil
}

func (m TaskManagerModel) handleTypeChoice(msg tea.KeyMsg) (TaskManagerModel, tea.Cmd) {
	kinds := map[string]data.TaskType{
		"m": data.TypeManual,
		"l": data.TypeLearning,
		"o": data.TypeLoan,
		"g": data.TypeMeeting,
	}
	m.choosingType = false
	kind, ok := kinds[msg.String()]
	if !ok {
		return m, nil
	}
	now := m.opts.Now().Truncate(time.Minute)
	m.openEditor(data.Task{
		DueDate:  now,
		Priority: data.PriorityNone,
		TaskType: kind,
		SubTasks: []data.SubTask{},
	})
	return m, nil
}

func (m *TaskManagerModel) openEditor(t data.Task) {
	m.editor = NewTaskEditor(t, m.opts.ClockRadius)
	m.editor.SetSize(m.width, m.height)
}

func (m *TaskManagerModel) startSearch() tea.Cmd {
	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "fuzzy search..."
	m.searchInput.CharLimit = 128
	m.searchInput.Width = 40
	m.searchActive = true
	m.searchTyping = true
	m.cursor = 0
	return m.searchInput.Focus()
}

// handleSearchKey returns false for keys the list should handle itself.
func (m *TaskManagerModel) handleSearchKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchActive = false
		m.searchTyping = false
		m.searchInput.Reset()
		m.refresh()
		return true, nil
	case "enter":
		if m.searchTyping {
			m.searchTyping = false
			m.searchInput.Blur()
			return true, nil
		}
		return false, nil
	case "/":
		if !m.searchTyping {
			m.searchTyping = true
			return true, m.searchInput.Focus()
		}
	}
	if !m.searchTyping {
		return false, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.cursor = 0
	m.refresh()
	return true, cmd
}

func (m *TaskManagerModel) stepTab(delta int) {
	if m.searchActive {
		return
	}
	var visible []data.Tab
	for _, tab := range data.Tabs {
		if len(m.buckets[tab]) > 0 {
			visible = append(visible, tab)
		}
	}
	if len(visible) == 0 {
		return
	}
	idx := 0
	for i, tab := range visible {
		if tab == m.tab {
			idx = i
		}
	}
	m.tab = visible[(idx+delta+len(visible))%len(visible)]
	m.cursor = 0
	m.scrollOffset = 0
	m.refresh()
}

func (m *TaskManagerModel) moveCursor(delta int) {
	m.cursor = min(max(m.cursor+delta, 0), max(len(m.display)-1, 0))
	m.ensureCursorVisible()
}

func (m *TaskManagerModel) selectedTask() *data.Task {
	if m.cursor >= 0 && m.cursor < len(m.display) {
		return &m.display[m.cursor]
	}
	return nil
}

func (m *TaskManagerModel) visibleRows() int {
	used := 4 // tab bar (2) + gap (1) + hints (1)
	if m.searchActive {
		used++
	}
	return max(m.height-used, 1)
}

func (m *TaskManagerModel) ensureCursorVisible() {
	visible := m.visibleRows()
	m.scrollOffset = max(m.scrollOffset, 0)
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

func (m TaskManagerModel) View() string {
	switch {
	case m.editor != nil:
		if m.editor.PickerOpen() {
			return m.editor.View()
		}
		return shared.Overlay(m.editor.View(), m.width, m.height)
	case m.confirm != nil:
		return shared.Overlay(m.confirm.View(), m.width, m.height)
	case m.scan != nil:
		return shared.Overlay(m.scan.View(), m.width, m.height)
	case m.detail != nil:
		return m.detail.View()
	case m.showHelp:
		return shared.RenderHelpPopup(helpSections(), m.width, m.height)
	}

	bar := InfoBar{Buckets: m.buckets, Tab: m.tab, Width: m.width}
	if m.searchActive {
		bar.Search = m.searchInput.View()
		bar.Matches = len(m.display)
	}
	var b strings.Builder
	b.WriteString(bar.View() + "\n")
	b.WriteString(m.renderRows())

	hints := m.help.View(listKeys)
	if m.choosingType {
		hints = theme.Warn.Render("New task: [m]anual  [l]earning  l[o]an  meetin[g]  [esc] cancel")
	}
	return shared.WithBottomHints(b.String(), lipgloss.PlaceHorizontal(m.width, lipgloss.Center, hints), m.height, lipgloss.Top)
}

func (m *TaskManagerModel) renderRows() string {
	if len(m.display) == 0 {
		if m.searchActive {
			return emptyStyle.Render("No matches.")
		}
		return emptyStyle.Render("Nothing here. Press n to add a task or s to scan an invite.")
	}

	now := m.opts.Now()
	end := min(m.scrollOffset+m.visibleRows(), len(m.display))
	var b strings.Builder
	for i := m.scrollOffset; i < end; i++ {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		b.WriteString(prefix + shared.StyledTaskLine(m.display[i], now, m.width-2) + "\n")
	}
	return b.String()
}

func helpSections() []shared.HelpSection {
	return []shared.HelpSection{
		{Title: "Tasks", Binds: []shared.HelpBind{
			{Key: "j / k", Desc: "Move"},
			{Key: "h / l, tab", Desc: "Switch tab"},
			{Key: "space", Desc: "Toggle done"},
			{Key: "n", Desc: "New task (then m/l/o/g)"},
			{Key: "enter", Desc: "Edit"},
			{Key: "D", Desc: "Delete"},
			{Key: "/", Desc: "Fuzzy search"},
			{Key: "s", Desc: "Scan a meeting invite"},
			{Key: "v", Desc: "View details"},
			{Key: "r", Desc: "Reload from server"},
			{Key: "c", Desc: "Month calendar"},
		}},
		{Title: "Date & time picker", Binds: []shared.HelpBind{
			{Key: "h j k l", Desc: "Move day / step clock"},
			{Key: "H / L", Desc: "Previous / next month"},
			{Key: "t", Desc: "Jump to this month"},
			{Key: "tab", Desc: "Calendar / clock"},
			{Key: "[ / ]", Desc: "Edit hour / minute"},
			{Key: "a / p", Desc: "AM / PM"},
			{Key: "mouse", Desc: "Click days, drag the clock hand"},
			{Key: "enter / esc", Desc: "Close"},
		}},
	}
}
