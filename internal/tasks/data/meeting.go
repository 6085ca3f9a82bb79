package data

import (
	"fmt"
	"regexp"
	"time"
)

// MeetingDuration renders the span as "1h 5m" or "45m". Negative spans read
// as "0m".
func MeetingDuration(start, end time.Time) string {
	d := end.Sub(start)
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// MeetingDescription renders "Meeting: 03:04 PM - 04:04 PM (1h 0m)".
func MeetingDescription(start, end time.Time) string {
	return fmt.Sprintf("Meeting: %s - %s (%s)", start.Format(clockLayout), end.Format(clockLayout), MeetingDuration(start, end))
}

const clockLayout = "03:04 PM"

var meetingPattern = regexp.MustCompile(`Meeting:\s*(\d{2}:\d{2} [AP]M)\s*-\s*(\d{2}:\d{2} [AP]M)`)

// ParseMeeting recovers start and end from a meeting description, placed on
// the day of due. An end earlier than the start rolls to the next day.
func ParseMeeting(description string, due time.Time) (start, end time.Time, ok bool) {
	m := meetingPattern.FindStringSubmatch(description)
	if m == nil {
		return time.Time{}, time.Time{}, false
	}
	s, err1 := time.Parse(clockLayout, m[1])
	e, err2 := time.Parse(clockLayout, m[2])
	if err1 != nil || err2 != nil {
		return time.Time{}, time.Time{}, false
	}
	start = time.Date(due.Year(), due.Month(), due.Day(), s.Hour(), s.Minute(), 0, 0, due.Location())
	end = time.Date(due.Year(), due.Month(), due.Day(), e.Hour(), e.Minute(), 0, 0, due.Location())
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, true
}
