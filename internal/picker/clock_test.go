package picker

import (
	"math"
	"testing"
	"time"
)

const testRadius = 100.0

// pointAt returns face coordinates for an angle measured clockwise from 12.
func pointAt(angle float64) (float64, float64) {
	rad := (angle - 90) * math.Pi / 180
	return testRadius + testRadius*math.Cos(rad), testRadius + testRadius*math.Sin(rad)
}

func TestAngle_Cardinals(t *testing.T) {
	cases := []struct {
		x, y float64
		want float64
	}{
		{testRadius, 0, 0},
		{2 * testRadius, testRadius, 90},
		{testRadius, 2 * testRadius, 180},
		{0, testRadius, 270},
	}
	for _, c := range cases {
		got := Angle(c.x, c.y, testRadius)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Angle(%v, %v) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestHourFromAngle_Twelve(t *testing.T) {
	if got := HourFromAngle(0, AM); got != 0 {
		t.Errorf("0 deg AM: expected 0, got %d", got)
	}
	if got := HourFromAngle(0, PM); got != 12 {
		t.Errorf("0 deg PM: expected 12, got %d", got)
	}
	if got := HourFromAngle(359, PM); got != 12 {
		t.Errorf("359 deg PM: expected 12, got %d", got)
	}
}

func TestHourFromAngle_Six(t *testing.T) {
	if got := VisualHour(180); got != 6 {
		t.Errorf("expected 6, got %d", got)
	}
	if got := HourFromAngle(180, AM); got != 6 {
		t.Errorf("AM: expected 6, got %d", got)
	}
	if got := HourFromAngle(180, PM); got != 18 {
		t.Errorf("PM: expected 18, got %d", got)
	}
}

func TestMinuteFromAngle_Wraps(t *testing.T) {
	if got := MinuteFromAngle(270); got != 45 {
		t.Errorf("expected 45, got %d", got)
	}
	if got := MinuteFromAngle(358); got != 0 {
		t.Errorf("expected wrap to 0, got %d", got)
	}
}

func TestMapPoint_OnlyTouchesTargetField(t *testing.T) {
	v := time.Date(2024, 3, 1, 14, 30, 12, 500, time.UTC)

	x, y := pointAt(90)
	got := MapPoint(x, y, testRadius, HourMode, PM, v)
	want := time.Date(2024, 3, 1, 15, 30, 12, 500, time.UTC)
	if !got.Equal(want) {
		t.Errorf("hour drag: got %v, want %v", got, want)
	}

	x, y = pointAt(270)
	got = MapPoint(x, y, testRadius, MinuteMode, PM, v)
	want = time.Date(2024, 3, 1, 14, 45, 12, 500, time.UTC)
	if !got.Equal(want) {
		t.Errorf("minute drag: got %v, want %v", got, want)
	}
}

func TestToggleMeridiem(t *testing.T) {
	nine := time.Date(2024, 1, 10, 9, 5, 0, 0, time.UTC)

	if got := ToggleMeridiem(nine, AM); got.Hour() != 9 {
		t.Errorf("AM on 9: expected 9, got %d", got.Hour())
	}
	if got := ToggleMeridiem(ToggleMeridiem(nine, AM), AM); got.Hour() != 9 {
		t.Errorf("AM twice on 9: expected 9, got %d", got.Hour())
	}

	pm := ToggleMeridiem(nine, PM)
	if pm.Hour() != 21 {
		t.Fatalf("PM on 9: expected 21, got %d", pm.Hour())
	}
	if got := ToggleMeridiem(pm, AM); got.Hour() != 9 {
		t.Errorf("AM on 21: expected 9, got %d", got.Hour())
	}

	noon := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	if got := ToggleMeridiem(noon, AM); got.Hour() != 0 {
		t.Errorf("AM on 12: expected 0, got %d", got.Hour())
	}
}

func TestFaceLabels(t *testing.T) {
	hours := FaceLabels(HourMode)
	if len(hours) != 12 || hours[0] != 1 || hours[11] != 12 {
		t.Errorf("unexpected hour labels %v", hours)
	}
	minutes := FaceLabels(MinuteMode)
	if len(minutes) != 12 || minutes[0] != 0 || minutes[11] != 55 {
		t.Errorf("unexpected minute labels %v", minutes)
	}
	if LabelText(MinuteMode, 0) != "00" {
		t.Errorf("expected minute zero to read 00")
	}
	if LabelText(HourMode, 12) != "12" {
		t.Errorf("expected hour 12 to read 12")
	}
}

func TestNudge(t *testing.T) {
	v := time.Date(2024, 1, 10, 23, 58, 0, 0, time.UTC)
	if got := Nudge(v, MinuteMode, PM, 3); got.Minute() != 1 || got.Hour() != 23 {
		t.Errorf("minute nudge: got %v", got)
	}
	if got := Nudge(v, HourMode, PM, 1); got.Hour() != 12 || got.Day() != 10 {
		t.Errorf("hour nudge 11pm+1: got %v", got)
	}
	am := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	if got := Nudge(am, HourMode, AM, -1); got.Hour() != 11 {
		t.Errorf("hour nudge 12am-1: got %v", got)
	}
}

func TestDisplayHour(t *testing.T) {
	if got := DisplayHour(time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC)); got != "12" {
		t.Errorf("expected 12, got %s", got)
	}
	if got := DisplayHour(time.Date(2024, 1, 1, 15, 5, 0, 0, time.UTC)); got != "03" {
		t.Errorf("expected 03, got %s", got)
	}
}
