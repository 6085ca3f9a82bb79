package calendar

import (
	"strings"
	"testing"
	"time"
)

const weeklyICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:weekly-1\r\n" +
	"DTSTAMP:20240501T000000Z\r\n" +
	"DTSTART:20240506T090000Z\r\n" +
	"DTEND:20240506T093000Z\r\n" +
	"RRULE:FREQ=WEEKLY;COUNT=10\r\n" +
	"EXDATE:20240513T090000Z\r\n" +
	"SUMMARY:Team sync\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:once-1\r\n" +
	"DTSTAMP:20240501T000000Z\r\n" +
	"DTSTART:20250101T090000Z\r\n" +
	"SUMMARY:Far away\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestImportMeetings_ExpandsRecurrence(t *testing.T) {
	opts := ImportOptions{
		From:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
	}
	meetings, err := ImportMeetings(strings.NewReader(weeklyICS), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var weekly []Meeting
	sawSingle := false
	for _, m := range meetings {
		switch {
		case strings.HasPrefix(m.UID, "weekly-1/"):
			weekly = append(weekly, m)
		case m.UID == "once-1":
			sawSingle = true
		}
	}
	if !sawSingle {
		t.Error("single events are imported regardless of the window")
	}

	// May 6, 20 and 27; the 13th is excluded.
	want := []int{6, 20, 27}
	if len(weekly) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(weekly))
	}
	for i, m := range weekly {
		start := m.Task.MeetingStartTime.UTC()
		if start.Day() != want[i] || start.Hour() != 9 {
			t.Errorf("occurrence %d starts %v", i, start)
		}
		if d := m.Task.MeetingEndTime.Sub(*m.Task.MeetingStartTime); d != 30*time.Minute {
			t.Errorf("occurrence %d lasts %v", i, d)
		}
		if !m.Task.DueDate.Equal(*m.Task.MeetingStartTime) || m.Task.Title != "Team sync" {
			t.Errorf("occurrence %d = %+v", i, m.Task)
		}
	}
}

func TestImportMeetings_OccurrenceCap(t *testing.T) {
	opts := ImportOptions{
		From:           time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Until:          time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		MaxOccurrences: 2,
	}
	meetings, err := ImportMeetings(strings.NewReader(weeklyICS), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := 0
	for _, m := range meetings {
		if strings.HasPrefix(m.UID, "weekly-1/") {
			n++
		}
	}
	if n != 2 {
		t.Errorf("expected the cap to keep 2 occurrences, got %d", n)
	}
}

func TestImportMeetings_BadWindow(t *testing.T) {
	opts := ImportOptions{
		From:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	if _, err := ImportMeetings(strings.NewReader(weeklyICS), opts); err == nil {
		t.Error("expected an error when the window is reversed")
	}
}

func TestParseICSTime(t *testing.T) {
	got, err := parseICSTime("20240513T090000Z")
	if err != nil || !got.Equal(time.Date(2024, 5, 13, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("UTC form: %v, %v", got, err)
	}
	got, err = parseICSTime("20240513")
	if err != nil || got.Day() != 13 || got.Hour() != 0 {
		t.Errorf("date form: %v, %v", got, err)
	}
	if _, err := parseICSTime(" "); err == nil {
		t.Error("expected an error for an empty value")
	}
}
