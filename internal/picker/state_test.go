package picker

import (
	"math"
	"testing"
	"time"
)

// fakeHost plays the owner of the value: it records every change and feeds
// it straight back into the picker, the way a host re-render would.
type fakeHost struct {
	value   time.Time
	changes []time.Time
	closed  int
	m       *Machine
}

func newHost(t *testing.T, value time.Time, now time.Time, radius float64) *fakeHost {
	t.Helper()
	h := &fakeHost{value: value}
	h.m = New(h.onChange, h.onClose,
		WithClock(func() time.Time { return now }),
		WithRadius(radius),
	)
	return h
}

func (h *fakeHost) onChange(v time.Time) {
	h.value = v
	h.changes = append(h.changes, v)
	h.m.SetProps(h.m.View().Visible, v)
}

func (h *fakeHost) onClose() {
	h.closed++
}

func (h *fakeHost) open() {
	h.m.SetProps(true, h.value)
}

func TestOpen_InitialState(t *testing.T) {
	value := time.Date(2024, 1, 10, 9, 5, 0, 0, time.UTC)
	h := newHost(t, value, value, 100)
	h.open()

	view := h.m.View()
	if !view.Visible {
		t.Fatal("expected visible")
	}
	if view.Mode != DateMode {
		t.Errorf("expected DATE mode, got %s", view.Mode)
	}
	if view.SubMode != HourMode {
		t.Errorf("expected HOUR sub-mode, got %s", view.SubMode)
	}
	if view.Meridiem != AM {
		t.Errorf("expected AM, got %s", view.Meridiem)
	}
	if view.Cursor.Year() != 2024 || view.Cursor.Month() != time.January {
		t.Errorf("expected cursor January 2024, got %v", view.Cursor)
	}
}

func TestOpen_ResetsEveryTime(t *testing.T) {
	value := time.Date(2024, 1, 10, 15, 5, 0, 0, time.UTC)
	h := newHost(t, value, value, 100)
	h.open()
	h.m.ToggleMode()
	h.m.SelectMinute()
	h.m.ChangeMonth(3)
	h.m.Close()

	h.open()
	view := h.m.View()
	if view.Mode != DateMode || view.SubMode != HourMode {
		t.Errorf("expected reset modes, got %s/%s", view.Mode, view.SubMode)
	}
	if view.Meridiem != PM {
		t.Errorf("expected PM for 15:05, got %s", view.Meridiem)
	}
	if view.Cursor.Month() != time.January {
		t.Errorf("expected cursor back on January, got %s", view.Cursor.Month())
	}
}

func TestSetProps_InvalidValueBecomesNow(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	h := newHost(t, time.Time{}, now, 100)
	h.open()
	if !h.m.Value().Equal(now) {
		t.Errorf("expected now, got %v", h.m.Value())
	}
	if h.m.View().Cursor.Month() != time.June {
		t.Errorf("expected cursor on June, got %s", h.m.View().Cursor.Month())
	}
	if len(h.changes) != 0 {
		t.Errorf("substitution must not be reported as a change")
	}
}

func TestSelectDay_PreservesTimeOfDay(t *testing.T) {
	value := time.Date(2024, 3, 1, 14, 30, 45, 123, time.UTC)
	h := newHost(t, value, value, 100)
	h.open()

	var day15 Cell
	for _, c := range h.m.Grid() {
		if c.Day == 15 {
			day15 = c
		}
	}
	h.m.SelectDay(day15)

	want := time.Date(2024, 3, 15, 14, 30, 45, 123, time.UTC)
	if len(h.changes) != 1 || !h.changes[0].Equal(want) {
		t.Fatalf("expected one change to %v, got %v", want, h.changes)
	}
	if h.m.View().Mode != DateMode {
		t.Error("day selection must not switch mode")
	}
}

func TestSelectDay_IgnoresPadding(t *testing.T) {
	value := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	h := newHost(t, value, value, 100)
	h.open()
	h.m.SelectDay(h.m.Grid()[0])
	if len(h.changes) != 0 {
		t.Errorf("padding tap should not commit, got %v", h.changes)
	}
}

func TestChangeMonth_RoundTrip(t *testing.T) {
	value := time.Date(2024, 12, 31, 10, 0, 0, 0, time.UTC)
	h := newHost(t, value, value, 100)
	h.open()

	h.m.ChangeMonth(1)
	c := h.m.View().Cursor
	if c.Year() != 2025 || c.Month() != time.January {
		t.Fatalf("expected January 2025, got %v", c)
	}
	h.m.ChangeMonth(-1)
	c = h.m.View().Cursor
	if c.Year() != 2024 || c.Month() != time.December {
		t.Errorf("expected December 2024, got %v", c)
	}
	if len(h.changes) != 0 {
		t.Error("month navigation must not touch the value")
	}
}

func TestGoToToday_KeepsValueAndMode(t *testing.T) {
	value := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	h := newHost(t, value, now, 100)
	h.open()
	h.m.ToggleMode()

	h.m.GoToToday()
	view := h.m.View()
	if view.Cursor.Year() != 2026 || view.Cursor.Month() != time.October {
		t.Errorf("expected October 2026, got %v", view.Cursor)
	}
	if view.Mode != TimeMode {
		t.Error("today must not change mode")
	}
	if !h.m.Value().Equal(value) {
		t.Error("today must not change the value")
	}
}

func TestSetMeridiem_WritesBack(t *testing.T) {
	value := time.Date(2024, 1, 10, 9, 5, 0, 0, time.UTC)
	h := newHost(t, value, value, 100)
	h.open()

	h.m.SetMeridiem(AM)
	if len(h.changes) != 0 {
		t.Fatalf("AM on an AM value should be a no-op, got %v", h.changes)
	}

	h.m.SetMeridiem(PM)
	if h.value.Hour() != 21 {
		t.Fatalf("expected 21, got %d", h.value.Hour())
	}
	h.m.SetMeridiem(AM)
	if h.value.Hour() != 9 {
		t.Errorf("expected 9, got %d", h.value.Hour())
	}
}

func TestHourDisplayTap_ForcesHourMode(t *testing.T) {
	value := time.Date(2024, 1, 10, 9, 5, 0, 0, time.UTC)
	h := newHost(t, value, value, 100)
	h.open()
	h.m.ToggleMode()
	h.m.SelectMinute()
	h.m.SelectHour()
	if h.m.View().SubMode != HourMode {
		t.Error("expected HOUR after tapping the hour display")
	}
	h.m.SelectHour()
	if h.m.View().SubMode != HourMode {
		t.Error("expected HOUR to stay HOUR")
	}
}

func TestDragScenario_HourThenMinute(t *testing.T) {
	const r = 100.0
	value := time.Date(2024, 1, 10, 13, 5, 0, 0, time.UTC)
	h := newHost(t, value, value, r)
	h.open()
	h.m.ToggleMode()
	if h.m.View().Meridiem != PM {
		t.Fatal("expected PM")
	}

	g := h.m.Gesture()
	g.Start(r, 0)
	g.Move(2*r, r) // 3 o'clock
	if h.value.Hour() != 15 {
		t.Fatalf("expected hour 15, got %d", h.value.Hour())
	}
	g.Release()
	if h.m.View().SubMode != MinuteMode {
		t.Fatal("expected auto-advance to MINUTE")
	}

	g.Start(0, r) // 9 o'clock
	if h.value.Minute() != 45 {
		t.Errorf("expected minute 45, got %d", h.value.Minute())
	}
	if h.value.Hour() != 15 {
		t.Errorf("hour set earlier in the drag must survive, got %d", h.value.Hour())
	}
	g.Release()
	if h.m.View().SubMode != MinuteMode {
		t.Error("minute release must not transition")
	}
}

func TestGesture_LiveCommitsEveryMove(t *testing.T) {
	const r = 50.0
	value := time.Date(2024, 1, 10, 1, 0, 0, 0, time.UTC)
	h := newHost(t, value, value, r)
	h.open()
	h.m.ToggleMode()

	g := h.m.Gesture()
	g.Start(r, 0)
	for _, angle := range []float64{30, 60, 90} {
		rad := (angle - 90) * math.Pi / 180
		g.Move(r+r*math.Cos(rad), r+r*math.Sin(rad))
	}
	if len(h.changes) != 4 {
		t.Fatalf("expected 4 commits, got %d", len(h.changes))
	}
	if h.changes[0].Hour() != 0 || h.changes[3].Hour() != 3 {
		t.Errorf("unexpected hours %v", h.changes)
	}
}

func TestGesture_ReadsLatestMeridiem(t *testing.T) {
	const r = 100.0
	value := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	h := newHost(t, value, value, r)
	h.open()
	h.m.ToggleMode()

	g := h.m.Gesture()
	g.Start(2*r, r)
	if h.value.Hour() != 3 {
		t.Fatalf("expected 3 AM, got %d", h.value.Hour())
	}
	h.m.SetMeridiem(PM)
	g.Move(2*r, r)
	if h.value.Hour() != 15 {
		t.Errorf("expected move to see PM and give 15, got %d", h.value.Hour())
	}
}

func TestGesture_IgnoredInDateMode(t *testing.T) {
	value := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	h := newHost(t, value, value, 100)
	h.open()
	h.m.Gesture().Start(200, 100)
	if len(h.changes) != 0 {
		t.Error("clock drags are only live in TIME mode")
	}
}

func TestClose_NotifiesOnce(t *testing.T) {
	value := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	h := newHost(t, value, value, 100)
	h.open()
	h.m.Close()
	h.m.Close()
	if h.closed != 1 {
		t.Errorf("expected one close, got %d", h.closed)
	}
	if h.m.View().Visible {
		t.Error("expected hidden after close")
	}
}

func TestStepDay_FollowsMonth(t *testing.T) {
	value := time.Date(2024, 1, 31, 9, 15, 0, 0, time.UTC)
	h := newHost(t, value, value, 100)
	h.open()
	h.m.StepDay(1)
	if h.value.Month() != time.February || h.value.Day() != 1 || h.value.Hour() != 9 {
		t.Errorf("unexpected value %v", h.value)
	}
	if h.m.View().Cursor.Month() != time.February {
		t.Errorf("expected cursor on February")
	}
}

// laggingHost queues every change and only hands values back when asked,
// the way an event loop delivers edits after more input has arrived.
type laggingHost struct {
	value  time.Time
	queued []time.Time
	m      *Machine
}

func (h *laggingHost) deliver() {
	for _, v := range h.queued {
		h.value = v
		h.m.SetProps(h.m.View().Visible, v)
	}
	h.queued = nil
}

func newLaggingHost(value, now time.Time, radius float64) *laggingHost {
	h := &laggingHost{value: value}
	h.m = New(func(v time.Time) { h.queued = append(h.queued, v) }, nil,
		WithClock(func() time.Time { return now }),
		WithRadius(radius),
	)
	h.m.SetProps(true, value)
	return h
}

func TestGesture_SeesEditsBeforeHostAnswers(t *testing.T) {
	const r = 8.0
	value := time.Date(2024, 1, 10, 13, 0, 0, 0, time.UTC)
	h := newLaggingHost(value, value, r)
	h.m.SetMode(TimeMode)

	g := h.m.Gesture()
	g.Start(2*r, r) // 3 o'clock
	g.Release()
	g.Start(0, r) // 9 o'clock, now minutes
	g.Release()

	if got := h.m.Value(); got.Hour() != 15 || got.Minute() != 45 {
		t.Errorf("picker should read its own edits, got %s", got.Format("15:04"))
	}
	h.deliver()
	if h.value.Hour() != 15 || h.value.Minute() != 45 {
		t.Errorf("expected host to end at 15:45, got %s", h.value.Format("15:04"))
	}
	if got := h.m.Value(); !got.Equal(h.value) {
		t.Errorf("picker and host disagree: %v vs %v", got, h.value)
	}
}

func TestStepDay_QueuedSteps(t *testing.T) {
	value := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	h := newLaggingHost(value, value, 8)

	h.m.StepDay(1)
	h.m.StepDay(1)
	h.deliver()

	if h.value.Day() != 12 {
		t.Errorf("expected 12 May, got %v", h.value)
	}
}

func TestSetProps_HostOverrideDropsPending(t *testing.T) {
	value := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	h := newLaggingHost(value, value, 8)

	h.m.StepDay(1)
	other := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	h.m.SetProps(true, other)
	if !h.m.Value().Equal(other) {
		t.Errorf("host value should win, got %v", h.m.Value())
	}
}
