package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robfig/cron/v3"

	"myplan/internal/config"
	"myplan/internal/logs"
	"myplan/internal/tasks/data"
	"myplan/internal/tasks/service"
	agendaview "myplan/internal/tui/agenda"
	"myplan/internal/tui/messages"
	taskview "myplan/internal/tui/tasks"
)

// statusBarHeight is the border line plus the text line.
const statusBarHeight = 2

// AppModel is the root model. It owns the provider and runs every call
// against it as a command so the UI never blocks on the network.
type AppModel struct {
	cfg      *config.Config
	taskSvc  service.TaskService
	refresh  cron.Schedule
	taskView taskview.TaskManagerModel
	calendar agendaview.MonthModel

	// showCalendar swaps the task list for the month agenda.
	showCalendar bool

	status string
	alert  bool

	width  int
	height int
	ready  bool
}

// NewAppModel creates the root application model
func NewAppModel(cfg *config.Config, taskSvc service.TaskService) AppModel {
	tab, ok := data.ParseTab(cfg.DefaultTab)
	if !ok {
		tab = data.TabToday
	}
	view := taskview.NewTaskManagerModel(taskview.Options{
		DefaultTab:    tab,
		ClockRadius:   cfg.ClockRadius,
		MarkdownStyle: cfg.MarkdownStyle,
	})
	view.SetTasks(taskSvc.List())
	calendar := agendaview.NewMonthModel(nil)
	calendar.SetTasks(taskSvc.List())

	refresh, err := cfg.Refresh()
	if err != nil {
		logs.Logger.Printf("Auto-refresh disabled: %v", err)
	}

	return AppModel{
		cfg:      cfg,
		taskSvc:  taskSvc,
		refresh:  refresh,
		taskView: view,
		calendar: calendar,
	}
}

// autoRefreshMsg fires on the configured refresh schedule.
type autoRefreshMsg struct{}

func (m AppModel) Init() tea.Cmd {
	return m.scheduleRefresh(time.Now())
}

// scheduleRefresh waits for the next tick of the refresh schedule after
// now. It returns nil when auto-refresh is off.
func (m AppModel) scheduleRefresh(now time.Time) tea.Cmd {
	if m.refresh == nil {
		return nil
	}
	next := m.refresh.Next(now)
	if next.IsZero() {
		return nil
	}
	return tea.Tick(next.Sub(now), func(time.Time) tea.Msg {
		return autoRefreshMsg{}
	})
}

func (m AppModel) withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.cfg.Timeout())
}

// reloadCmd fetches the list. A quiet reload leaves the status line alone
// unless it fails.
func (m AppModel) reloadCmd(quiet bool) tea.Cmd {
	svc := m.taskSvc
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()
		err := svc.Reload(ctx)
		return messages.TasksLoadedMsg{Tasks: svc.List(), Err: err, Quiet: quiet}
	}
}

func (m AppModel) saveCmd(t data.Task) tea.Cmd {
	svc := m.taskSvc
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()
		if t.ID == "" {
			saved, err := svc.Create(ctx, t)
			if err != nil {
				return messages.TaskSavedMsg{Task: t, Created: true, Err: err}
			}
			return messages.TaskSavedMsg{Task: *saved, Created: true}
		}
		saved, err := svc.Update(ctx, t)
		if err != nil {
			return messages.TaskSavedMsg{Task: t, Err: err}
		}
		return messages.TaskSavedMsg{Task: *saved}
	}
}

func (m AppModel) toggleCmd(id string) tea.Cmd {
	svc := m.taskSvc
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()
		saved, err := svc.ToggleComplete(ctx, id)
		if err != nil {
			return messages.TaskSavedMsg{Task: data.Task{ID: id}, Err: err}
		}
		return messages.TaskSavedMsg{Task: *saved}
	}
}

func (m AppModel) deleteCmd(id string) tea.Cmd {
	svc := m.taskSvc
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()
		return messages.TaskDeletedMsg{ID: id, Err: svc.Delete(ctx, id)}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.taskView.SetSize(msg.Width, msg.Height-statusBarHeight)
		m.calendar.SetSize(msg.Width, msg.Height-statusBarHeight)
		return m, nil

	case messages.RefreshMsg:
		m.setStatus("Loading tasks...", false)
		return m, m.reloadCmd(false)

	case autoRefreshMsg:
		return m, tea.Batch(m.reloadCmd(true), m.scheduleRefresh(time.Now()))

	case messages.SaveTaskMsg:
		m.setStatus("Saving...", false)
		return m, m.saveCmd(msg.Task)

	case messages.ToggleTaskMsg:
		return m, m.toggleCmd(msg.ID)

	case messages.DeleteTaskMsg:
		return m, m.deleteCmd(msg.ID)

	case messages.TasksLoadedMsg:
		if msg.Err != nil {
			logs.Logger.Printf("Error loading tasks: %v", msg.Err)
			m.setStatus("Sync error: could not load tasks", true)
			return m, nil
		}
		m.setTasks(msg.Tasks)
		if !msg.Quiet {
			m.setStatus(fmt.Sprintf("Loaded %d tasks", len(msg.Tasks)), false)
		}
		return m, nil

	case messages.TaskSavedMsg:
		if msg.Err != nil {
			logs.Logger.Printf("Error saving task %q: %v", msg.Task.ID, msg.Err)
			m.setStatus("Sync error: could not save task", true)
			return m, nil
		}
		m.setTasks(m.taskSvc.List())
		m.taskView.FocusTask(msg.Task.ID)
		verb := "Saved"
		if msg.Created {
			verb = "Created"
		}
		m.setStatus(fmt.Sprintf("%s %q", verb, msg.Task.Title), false)
		return m, nil

	case messages.TaskDeletedMsg:
		if msg.Err != nil {
			logs.Logger.Printf("Error deleting task %q: %v", msg.ID, msg.Err)
			m.setStatus("Sync error: could not delete task", true)
			return m, nil
		}
		m.setTasks(m.taskSvc.List())
		m.setStatus("Task deleted", false)
		return m, nil

	case messages.StatusMsg:
		m.setStatus(msg.Text, msg.Alert)
		return m, nil

	case messages.FocusTaskMsg:
		m.showCalendar = false
		m.taskView.FocusTask(msg.ID)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showCalendar {
			return m.updateCalendar(msg)
		}
		if !m.taskView.IsInModalState() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "c":
				m.showCalendar = true
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.taskView, cmd = m.taskView.Update(msg)
	return m, cmd
}

func (m AppModel) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.calendar.InDetail() {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "c", "esc":
			m.showCalendar = false
			return m, nil
		case "r":
			return m, messages.Refresh
		}
	}
	var cmd tea.Cmd
	m.calendar, cmd = m.calendar.Update(msg)
	return m, cmd
}

func (m *AppModel) setTasks(tasks []data.Task) {
	m.taskView.SetTasks(tasks)
	m.calendar.SetTasks(tasks)
}

func (m *AppModel) setStatus(text string, alert bool) {
	m.status = text
	m.alert = alert
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	content := m.taskView.View()
	if m.showCalendar {
		content = lipgloss.Place(m.width, m.height-statusBarHeight, lipgloss.Left, lipgloss.Top, m.calendar.View())
	}

	statusText := HelpStyle.Render("myplan | " + m.cfg.APIURL + " | ?:help | q:quit")
	if m.status != "" {
		if m.alert {
			statusText = AlertStyle.Render(m.status)
		} else {
			statusText = HelpStyle.Render(m.status)
		}
	}
	statusBar := StatusBarStyle.Width(m.width).Render(statusText)

	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

// Run starts the full-screen program. loadErr is the outcome of the first
// fetch and shows in the status bar when set.
func Run(cfg *config.Config, svc service.TaskService, loadErr error) error {
	m := NewAppModel(cfg, svc)
	if loadErr != nil {
		m.setStatus("Sync error: could not load tasks (r to retry)", true)
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
