// Package picker holds the state and geometry behind the date/time picker:
// the month grid, the analog clock mapping, the open/close state machine and
// the drag tracker that feeds pointer positions into the clock.
//
// Nothing here renders. The TUI layer draws whatever View and Grid report and
// forwards input events back in.
package picker

import "time"

// Valid reports whether v is a usable calendar date-time. The zero time and
// years outside 1..9999 are rejected.
func Valid(v time.Time) bool {
	if v.IsZero() {
		return false
	}
	y := v.Year()
	return y >= 1 && y <= 9999
}

// Sanitize returns v when it is valid and now() otherwise.
func Sanitize(v time.Time, now func() time.Time) time.Time {
	if Valid(v) {
		return v
	}
	return now()
}

// withDate keeps the wall-clock time of v and moves it onto the given day.
func withDate(v time.Time, year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, v.Hour(), v.Minute(), v.Second(), v.Nanosecond(), v.Location())
}

func withHour(v time.Time, hour int) time.Time {
	return time.Date(v.Year(), v.Month(), v.Day(), hour, v.Minute(), v.Second(), v.Nanosecond(), v.Location())
}

func withMinute(v time.Time, minute int) time.Time {
	return time.Date(v.Year(), v.Month(), v.Day(), v.Hour(), minute, v.Second(), v.Nanosecond(), v.Location())
}

// monthOf returns midnight on the first of v's month.
func monthOf(v time.Time) time.Time {
	return time.Date(v.Year(), v.Month(), 1, 0, 0, 0, 0, v.Location())
}
