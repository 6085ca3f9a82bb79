package picker

import (
	"fmt"
	"math"
	"time"
)

// SubMode selects which field a drag on the clock face edits.
type SubMode int

const (
	HourMode SubMode = iota
	MinuteMode
)

func (s SubMode) String() string {
	if s == MinuteMode {
		return "MINUTE"
	}
	return "HOUR"
}

// Meridiem is the AM/PM half of the day.
type Meridiem int

const (
	AM Meridiem = iota
	PM
)

func (m Meridiem) String() string {
	if m == PM {
		return "PM"
	}
	return "AM"
}

// MeridiemOf derives the meridiem of a 24-hour hour.
func MeridiemOf(hour int) Meridiem {
	if hour < 12 {
		return AM
	}
	return PM
}

// Angle returns the clockwise angle in degrees, 12 o'clock being 0, of the
// point (x, y) on a face of the given radius centered at (radius, radius).
// The result is in [0, 360).
func Angle(x, y, radius float64) float64 {
	dx := x - radius
	dy := y - radius
	angle := math.Atan2(dy, dx)*180/math.Pi + 90
	if angle < 0 {
		angle += 360
	}
	return angle
}

// VisualHour returns the 1..12 dial position for an angle.
func VisualHour(angle float64) int {
	hour := int(math.Round(angle / 30))
	if hour == 0 {
		hour = 12
	}
	return hour
}

// To24 maps a 1..12 dial hour to 24-hour form.
func To24(visual int, m Meridiem) int {
	if m == AM {
		if visual == 12 {
			return 0
		}
		return visual
	}
	if visual == 12 {
		return 12
	}
	return visual + 12
}

// HourFromAngle combines VisualHour and To24.
func HourFromAngle(angle float64, m Meridiem) int {
	return To24(VisualHour(angle), m)
}

// MinuteFromAngle maps an angle onto 0..59.
func MinuteFromAngle(angle float64) int {
	minute := int(math.Round(angle / 6))
	if minute == 60 {
		minute = 0
	}
	return minute
}

// MapPoint applies a touch at (x, y) to v. Only the hour or the minute
// changes; the date and the other field are kept.
func MapPoint(x, y, radius float64, mode SubMode, m Meridiem, v time.Time) time.Time {
	angle := Angle(x, y, radius)
	if mode == HourMode {
		return withHour(v, HourFromAngle(angle, m))
	}
	return withMinute(v, MinuteFromAngle(angle))
}

// ToggleMeridiem moves v into the requested half of the day. Asking for the
// half v is already in returns v unchanged.
func ToggleMeridiem(v time.Time, to Meridiem) time.Time {
	h := v.Hour()
	switch {
	case to == AM && h >= 12:
		return withHour(v, h-12)
	case to == PM && h < 12:
		return withHour(v, h+12)
	}
	return v
}

// HandAngle is the angle the clock hand points at for v.
func HandAngle(v time.Time, mode SubMode) float64 {
	if mode == MinuteMode {
		return float64(v.Minute() * 6)
	}
	h := v.Hour() % 12
	if h == 0 {
		h = 12
	}
	return float64(h * 30)
}

// FaceLabels returns the numbers drawn around the face.
func FaceLabels(mode SubMode) []int {
	labels := make([]int, 0, 12)
	if mode == HourMode {
		for i := 1; i <= 12; i++ {
			labels = append(labels, i)
		}
		return labels
	}
	for i := 0; i < 60; i += 5 {
		labels = append(labels, i)
	}
	return labels
}

// LabelAngle is where a face label sits, in degrees clockwise from 12.
func LabelAngle(mode SubMode, n int) float64 {
	if mode == HourMode {
		return float64(n * 30)
	}
	return float64(n/5) * 30
}

// LabelText renders a face label; minute zero reads "00".
func LabelText(mode SubMode, n int) string {
	if mode == MinuteMode && n == 0 {
		return "00"
	}
	return fmt.Sprintf("%d", n)
}

// LabelSelected reports whether label n matches the current value.
func LabelSelected(mode SubMode, n int, v time.Time) bool {
	if mode == HourMode {
		h := v.Hour() % 12
		if h == 0 {
			h = 12
		}
		return h == n
	}
	return v.Minute() == n
}

// DisplayHour is the zero-padded 12-hour reading of v.
func DisplayHour(v time.Time) string {
	h := v.Hour() % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d", h)
}

// DisplayMinute is the zero-padded minute of v.
func DisplayMinute(v time.Time) string {
	return fmt.Sprintf("%02d", v.Minute())
}

// Nudge steps the field selected by mode by delta positions on the dial.
// Hours cycle through 1..12 inside the given meridiem; minutes wrap at 60.
func Nudge(v time.Time, mode SubMode, m Meridiem, delta int) time.Time {
	if mode == MinuteMode {
		minute := ((v.Minute()+delta)%60 + 60) % 60
		return withMinute(v, minute)
	}
	visual := v.Hour() % 12
	visual = ((visual+delta)%12 + 12) % 12
	if visual == 0 {
		visual = 12
	}
	return withHour(v, To24(visual, m))
}
