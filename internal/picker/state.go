package picker

import "time"

// Mode selects which body of the picker is shown.
type Mode int

const (
	DateMode Mode = iota
	TimeMode
)

func (m Mode) String() string {
	if m == TimeMode {
		return "TIME"
	}
	return "DATE"
}

// ViewState is the picker's own state. It never holds the selected value.
type ViewState struct {
	Visible  bool
	Mode     Mode
	SubMode  SubMode
	Meridiem Meridiem
	Cursor   time.Time // first of the month shown in the grid
}

// Shared is the state cell read by the gesture tracker on every event. The
// machine owns it; the tracker only holds a pointer.
type Shared struct {
	View  ViewState
	Value time.Time // latest edit, or the host's value once it caught up

	// pending holds edits sent through onChange that the host has not
	// handed back yet, oldest first.
	pending []time.Time
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock overrides the time source used for "today" and for replacing
// invalid values.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// WithRadius sets the clock face radius in face units.
func WithRadius(r float64) Option {
	return func(m *Machine) {
		m.radius = r
	}
}

// Machine is the picker state machine. The host owns the value: every edit
// goes out through onChange and comes back through SetProps. Until the host
// answers, the machine keeps reading its own latest edit.
type Machine struct {
	shared   *Shared
	gesture  *GestureTracker
	onChange func(time.Time)
	onClose  func()
	now      func() time.Time
	radius   float64
}

// New builds a hidden picker. onChange receives every committed edit;
// onClose is called once per Close.
func New(onChange func(time.Time), onClose func(), opts ...Option) *Machine {
	m := &Machine{
		shared:   &Shared{},
		onChange: onChange,
		onClose:  onClose,
		now:      time.Now,
		radius:   8,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.shared.Value = m.now()
	m.gesture = newGestureTracker(m.shared, m.radius, m.commit, m.releaseDrag)
	return m
}

// SetProps is how the host renders the picker: visibility plus the current
// value. A hidden-to-visible transition resets all view state.
func (m *Machine) SetProps(visible bool, value time.Time) {
	value = Sanitize(value, m.now)
	opening := visible && !m.shared.View.Visible
	if opening {
		m.shared.pending = nil
		m.shared.Value = value
		m.shared.View = ViewState{
			Visible:  true,
			Mode:     DateMode,
			SubMode:  HourMode,
			Meridiem: MeridiemOf(value.Hour()),
			Cursor:   monthOf(value),
		}
		return
	}
	m.shared.Value = m.shared.acknowledge(value)
	m.shared.View.Visible = visible
	if !visible {
		m.gesture.reset()
	}
}

// View returns a copy of the current view state.
func (m *Machine) View() ViewState {
	return m.shared.View
}

// Value returns the value edits build on: the newest edit the host has not
// acknowledged, else the last value the host supplied.
func (m *Machine) Value() time.Time {
	return m.shared.Value
}

// Gesture returns the tracker bound to this picker's clock face.
func (m *Machine) Gesture() *GestureTracker {
	return m.gesture
}

// Grid returns the cells for the month under the cursor.
func (m *Machine) Grid() []Cell {
	c := m.shared.View.Cursor
	return BuildMonthGrid(c.Year(), c.Month(), c.Location())
}

// Today reports the current moment from the picker's clock.
func (m *Machine) Today() time.Time {
	return m.now()
}

// ToggleMode flips between the calendar and the clock.
func (m *Machine) ToggleMode() {
	if !m.shared.View.Visible {
		return
	}
	if m.shared.View.Mode == DateMode {
		m.shared.View.Mode = TimeMode
	} else {
		m.shared.View.Mode = DateMode
	}
}

// SetMode shows the requested body.
func (m *Machine) SetMode(mode Mode) {
	if !m.shared.View.Visible {
		return
	}
	m.shared.View.Mode = mode
}

// SelectHour makes the clock edit hours, whatever it was editing before.
func (m *Machine) SelectHour() {
	if !m.shared.View.Visible {
		return
	}
	m.shared.View.SubMode = HourMode
}

// SelectMinute makes the clock edit minutes.
func (m *Machine) SelectMinute() {
	if !m.shared.View.Visible {
		return
	}
	m.shared.View.SubMode = MinuteMode
}

// SetMeridiem switches AM/PM and writes the adjusted hour back immediately.
// Selecting the meridiem already shown changes nothing.
func (m *Machine) SetMeridiem(to Meridiem) {
	if !m.shared.View.Visible || m.shared.View.Meridiem == to {
		return
	}
	m.shared.View.Meridiem = to
	m.commit(ToggleMeridiem(m.shared.Value, to))
}

// SelectDay commits the tapped day with the current time of day. Padding
// cells are ignored.
func (m *Machine) SelectDay(c Cell) {
	if !m.shared.View.Visible || c.IsPadding() {
		return
	}
	v := m.shared.Value
	m.commit(withDate(v, c.Date.Year(), c.Date.Month(), c.Date.Day()))
}

// StepDay moves the selected date by days and keeps the grid on the month
// of the result.
func (m *Machine) StepDay(days int) {
	if !m.shared.View.Visible {
		return
	}
	next := m.shared.Value.AddDate(0, 0, days)
	m.shared.View.Cursor = monthOf(next)
	m.commit(next)
}

// Nudge steps the clock field under edit by delta dial positions.
func (m *Machine) Nudge(delta int) {
	if !m.shared.View.Visible {
		return
	}
	view := m.shared.View
	m.commit(Nudge(m.shared.Value, view.SubMode, view.Meridiem, delta))
}

// GoToToday moves the grid to the current month. The value and the mode stay.
func (m *Machine) GoToToday() {
	if !m.shared.View.Visible {
		return
	}
	now := m.now()
	m.shared.View.Cursor = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, m.shared.View.Cursor.Location())
}

// ChangeMonth moves the grid by delta months.
func (m *Machine) ChangeMonth(delta int) {
	if !m.shared.View.Visible {
		return
	}
	c := m.shared.View.Cursor
	m.shared.View.Cursor = time.Date(c.Year(), c.Month()+time.Month(delta), 1, 0, 0, 0, 0, c.Location())
}

// Close hides the picker and tells the host.
func (m *Machine) Close() {
	if !m.shared.View.Visible {
		return
	}
	m.shared.View.Visible = false
	m.gesture.reset()
	if m.onClose != nil {
		m.onClose()
	}
}

func (m *Machine) commit(v time.Time) {
	m.shared.pending = append(m.shared.pending, v)
	m.shared.Value = v
	if m.onChange != nil {
		m.onChange(v)
	}
}

func (m *Machine) releaseDrag() {
	if m.shared.View.SubMode == HourMode {
		m.shared.View.SubMode = MinuteMode
	}
}

// acknowledge matches a value from the host against the pending edits. An
// echo of a pending edit retires it and everything older; the value to read
// stays the newest edit still in flight. Anything else is the host
// overriding the picker, which drops the pending edits.
func (s *Shared) acknowledge(value time.Time) time.Time {
	for i, v := range s.pending {
		if !v.Equal(value) {
			continue
		}
		s.pending = s.pending[i+1:]
		if n := len(s.pending); n > 0 {
			return s.pending[n-1]
		}
		s.pending = nil
		return value
	}
	s.pending = nil
	return value
}
