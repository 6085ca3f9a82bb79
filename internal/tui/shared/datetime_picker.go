package shared

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"myplan/internal/picker"
	"myplan/internal/tui/theme"
)

// DateTimeChangedMsg carries one edit out of the picker. The host applies
// it and hands the value back through SetProps.
type DateTimeChangedMsg struct {
	ID    string
	Value time.Time
}

// DateTimePickerClosedMsg is sent once when the picker is dismissed.
type DateTimePickerClosedMsg struct {
	ID string
}

// Content layout inside the modal box, in cells from the box's content
// origin. The box border is one cell and its padding is (1, 2).
const (
	boxOffsetX = 3
	boxOffsetY = 2

	rowTabs   = 2
	rowNav    = 4
	rowBody   = 6
	rowGrid   = 7
	cellWidth = 3
	gridWidth = 7*cellWidth - 1

	tabWidth     = 6
	timeTabStart = tabWidth + 2
	hourStart    = 0
	minuteStart  = 5
	amStart      = 10
	pmStart      = 14
)

type region int

const (
	regionNone region = iota
	regionDateTab
	regionTimeTab
	regionPrevMonth
	regionNextMonth
	regionDay
	regionHour
	regionMinute
	regionAM
	regionPM
	regionFace
)

var pickerBoxStyle = theme.ModalBox.BorderForeground(theme.Accent)

// DateTimePicker draws a picker.Machine as a modal and turns keys and mouse
// events into machine calls. It never stores the value: edits leave as
// DateTimeChangedMsg and come back through SetProps, and the machine reads
// its own newest edit until they do.
type DateTimePicker struct {
	machine *picker.Machine
	id      string
	title   string
	radius  int
	width   int
	height  int

	edits  []time.Time
	closed bool
}

// NewDateTimePicker builds a hidden picker whose clock face has the given
// radius in rows.
func NewDateTimePicker(radius int, opts ...picker.Option) *DateTimePicker {
	if radius < 4 {
		radius = 4
	}
	p := &DateTimePicker{radius: radius, title: "Date & time"}
	opts = append([]picker.Option{picker.WithRadius(float64(radius))}, opts...)
	p.machine = picker.New(p.onChange, p.onClose, opts...)
	return p
}

func (p *DateTimePicker) onChange(v time.Time) {
	p.edits = append(p.edits, v)
}

func (p *DateTimePicker) onClose() {
	p.closed = true
}

// Open shows the picker for the field named id.
func (p *DateTimePicker) Open(id, title string, value time.Time) {
	p.id = id
	if title != "" {
		p.title = title
	}
	p.machine.SetProps(true, value)
}

// SetProps forwards visibility and the host's current value.
func (p *DateTimePicker) SetProps(visible bool, value time.Time) {
	p.machine.SetProps(visible, value)
}

func (p *DateTimePicker) Visible() bool {
	return p.machine.View().Visible
}

// Machine exposes the underlying state machine.
func (p *DateTimePicker) Machine() *picker.Machine {
	return p.machine
}

func (p *DateTimePicker) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Update handles a key or mouse message while the picker is open.
func (p *DateTimePicker) Update(msg tea.Msg) tea.Cmd {
	if !p.Visible() {
		return nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		p.handleKey(msg)
	case tea.MouseMsg:
		p.handleMouse(msg)
	}
	return p.flush()
}

func (p *DateTimePicker) flush() tea.Cmd {
	var cmds []tea.Cmd
	id := p.id
	if n := len(p.edits); n > 0 {
		v := p.edits[n-1]
		cmds = append(cmds, func() tea.Msg {
			return DateTimeChangedMsg{ID: id, Value: v}
		})
	}
	p.edits = p.edits[:0]
	if p.closed {
		p.closed = false
		cmds = append(cmds, func() tea.Msg {
			return DateTimePickerClosedMsg{ID: id}
		})
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Sequence(cmds...)
}

func (p *DateTimePicker) handleKey(msg tea.KeyMsg) {
	m := p.machine
	switch msg.String() {
	case "esc", "enter", "q":
		m.Close()
		return
	case "tab", "shift+tab":
		m.ToggleMode()
		return
	}

	if m.View().Mode == picker.DateMode {
		switch msg.String() {
		case "h", "left":
			m.StepDay(-1)
		case "l", "right":
			m.StepDay(1)
		case "k", "up":
			m.StepDay(-7)
		case "j", "down":
			m.StepDay(7)
		case "H", "pgup":
			m.ChangeMonth(-1)
		case "L", "pgdown":
			m.ChangeMonth(1)
		case "t":
			m.GoToToday()
		}
		return
	}

	switch msg.String() {
	case "a":
		m.SetMeridiem(picker.AM)
	case "p":
		m.SetMeridiem(picker.PM)
	case "[":
		m.SelectHour()
	case "]":
		m.SelectMinute()
	case "k", "up", "l", "right":
		m.Nudge(1)
	case "j", "down", "h", "left":
		m.Nudge(-1)
	case "K":
		m.Nudge(5)
	case "J":
		m.Nudge(-5)
	}
}

func (p *DateTimePicker) handleMouse(msg tea.MouseMsg) {
	m := p.machine
	g := m.Gesture()
	col, row := p.toContent(msg.X, msg.Y)
	faceX, faceY := float64(col)/2, float64(row-rowBody)

	switch msg.Action {
	case tea.MouseActionMotion:
		g.Move(faceX, faceY)
		return
	case tea.MouseActionRelease:
		g.Release()
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.wheel(1)
		return
	case tea.MouseButtonWheelDown:
		p.wheel(-1)
		return
	case tea.MouseButtonLeft:
	default:
		return
	}

	switch p.hit(col, row) {
	case regionDateTab:
		m.SetMode(picker.DateMode)
	case regionTimeTab:
		m.SetMode(picker.TimeMode)
	case regionPrevMonth:
		m.ChangeMonth(-1)
	case regionNextMonth:
		m.ChangeMonth(1)
	case regionDay:
		grid := m.Grid()
		if i := (row-rowGrid)*7 + col/cellWidth; i < len(grid) {
			m.SelectDay(grid[i])
		}
	case regionHour:
		m.SelectHour()
	case regionMinute:
		m.SelectMinute()
	case regionAM:
		m.SetMeridiem(picker.AM)
	case regionPM:
		m.SetMeridiem(picker.PM)
	case regionFace:
		g.Start(faceX, faceY)
	}
}

func (p *DateTimePicker) wheel(delta int) {
	if p.machine.View().Mode == picker.DateMode {
		p.machine.ChangeMonth(-delta)
		return
	}
	p.machine.Nudge(delta)
}

// toContent converts screen coordinates into the box's content coordinates,
// reproducing the centering lipgloss.Place applies in View.
func (p *DateTimePicker) toContent(x, y int) (int, int) {
	box := p.renderBox()
	left := centerOffset(p.width, lipgloss.Width(box))
	top := centerOffset(p.height, lipgloss.Height(box))
	return x - left - boxOffsetX, y - top - boxOffsetY
}

func centerOffset(avail, size int) int {
	gap := avail - size
	if gap <= 0 {
		return 0
	}
	return gap - int(math.Round(float64(gap)*0.5))
}

func (p *DateTimePicker) hit(col, row int) region {
	if col < 0 || row < 0 {
		return regionNone
	}
	view := p.machine.View()
	switch {
	case row == rowTabs && col < tabWidth:
		return regionDateTab
	case row == rowTabs && col >= timeTabStart && col < timeTabStart+tabWidth:
		return regionTimeTab
	}

	if view.Mode == picker.DateMode {
		switch {
		case row == rowNav && col == 0:
			return regionPrevMonth
		case row == rowNav && col == gridWidth-1:
			return regionNextMonth
		case row >= rowGrid && row < rowGrid+6 && col < gridWidth && col%cellWidth < 2:
			return regionDay
		}
		return regionNone
	}

	if row == rowNav {
		switch {
		case col >= hourStart && col < hourStart+2:
			return regionHour
		case col >= minuteStart && col < minuteStart+2:
			return regionMinute
		case col >= amStart && col < amStart+2:
			return regionAM
		case col >= pmStart && col < pmStart+2:
			return regionPM
		}
		return regionNone
	}
	if row >= rowBody && row <= rowBody+2*p.radius && col <= 4*p.radius {
		return regionFace
	}
	return regionNone
}

func (p *DateTimePicker) View() string {
	if !p.Visible() {
		return ""
	}
	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, p.renderBox())
}

func (p *DateTimePicker) renderBox() string {
	view := p.machine.View()
	v := p.machine.Value()

	lines := []string{
		theme.ModalTitle.Render(p.title),
		"",
		p.renderTabs(view, v),
		"",
	}
	if view.Mode == picker.DateMode {
		lines = append(lines, p.renderMonthNav(view), "", p.renderGrid(v))
	} else {
		lines = append(lines, p.renderTimeReadout(view, v), "", p.renderFace(view, v))
	}
	lines = append(lines, "", theme.ModalHelp.Render(p.helpText(view.Mode)))
	return pickerBoxStyle.Render(strings.Join(lines, "\n"))
}

func (p *DateTimePicker) renderTabs(view picker.ViewState, v time.Time) string {
	dateTab, timeTab := theme.TabInactive, theme.TabInactive
	if view.Mode == picker.DateMode {
		dateTab = theme.TabActive
	} else {
		timeTab = theme.TabActive
	}
	return dateTab.Render(" Date ") + "  " + timeTab.Render(" Time ") +
		"   " + theme.Muted.Render(v.Format("Mon 02 Jan 2006 03:04 PM"))
}

func (p *DateTimePicker) renderMonthNav(view picker.ViewState) string {
	label := theme.PickerMonth.Render(view.Cursor.Format("January 2006"))
	return "‹" + lipgloss.PlaceHorizontal(gridWidth-2, lipgloss.Center, label) + "›"
}

func (p *DateTimePicker) renderGrid(v time.Time) string {
	var b strings.Builder
	for i, label := range picker.WeekdayLabels {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(theme.PickerHeader.Render(label))
	}

	today := p.machine.Today()
	for i, cell := range p.machine.Grid() {
		if i%7 == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
		if cell.IsPadding() {
			b.WriteString("  ")
			continue
		}
		text := fmt.Sprintf("%2d", cell.Day)
		switch {
		case picker.SameDay(cell.Date, v):
			b.WriteString(theme.PickerSelected.Render(text))
		case picker.SameDay(cell.Date, today):
			b.WriteString(theme.PickerToday.Render(text))
		default:
			b.WriteString(theme.PickerDay.Render(text))
		}
	}
	return b.String()
}

func (p *DateTimePicker) renderTimeReadout(view picker.ViewState, v time.Time) string {
	hour, minute := theme.PickerDay, theme.PickerDay
	if view.SubMode == picker.HourMode {
		hour = theme.PickerSelected
	} else {
		minute = theme.PickerSelected
	}
	am, pm := theme.Muted, theme.Muted
	if view.Meridiem == picker.AM {
		am = theme.PickerSelected
	} else {
		pm = theme.PickerSelected
	}
	return hour.Render(picker.DisplayHour(v)) + " : " + minute.Render(picker.DisplayMinute(v)) +
		"   " + am.Render("AM") + "  " + pm.Render("PM")
}

// renderFace draws the clock with two columns per face unit, so the circle
// looks round in cells that are twice as tall as wide.
func (p *DateTimePicker) renderFace(view picker.ViewState, v time.Time) string {
	r := p.radius
	rows, cols := 2*r+1, 4*r+1
	grid := make([][]string, rows)
	for i := range grid {
		grid[i] = make([]string, cols)
		for j := range grid[i] {
			grid[i][j] = " "
		}
	}

	radius := float64(r)
	hand := picker.HandAngle(v, view.SubMode)
	for d := 1.0; d <= 0.6*radius; d += 0.5 {
		row, col := faceCell(radius, hand, d, rows, cols)
		grid[row][col] = theme.PickerHand.Render("·")
	}
	grid[r][2*r] = theme.PickerHand.Render("●")

	for _, n := range picker.FaceLabels(view.SubMode) {
		text := picker.LabelText(view.SubMode, n)
		style := theme.PickerDay
		if picker.LabelSelected(view.SubMode, n, v) {
			style = theme.PickerSelected
		}
		row, col := faceCell(radius, picker.LabelAngle(view.SubMode, n), 0.85*radius, rows, cols)
		start := min(max(col-len(text)/2, 0), cols-len(text))
		for i, ch := range text {
			grid[row][start+i] = style.Render(string(ch))
		}
	}

	out := make([]string, rows)
	for i, line := range grid {
		out[i] = strings.Join(line, "")
	}
	return strings.Join(out, "\n")
}

func faceCell(radius, angleDeg, dist float64, rows, cols int) (int, int) {
	a := angleDeg * math.Pi / 180
	x := radius + dist*math.Sin(a)
	y := radius - dist*math.Cos(a)
	row := min(max(int(math.Round(y)), 0), rows-1)
	col := min(max(int(math.Round(2*x)), 0), cols-1)
	return row, col
}

func (p *DateTimePicker) helpText(mode picker.Mode) string {
	if mode == picker.DateMode {
		return "hjkl: day • H/L: month • t: today • tab: time • enter: done"
	}
	return "[/]: hour/minute • jk: step • J/K: ±5 • a/p: am/pm • drag face • tab: date • enter: done"
}
