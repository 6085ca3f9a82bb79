package data

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	scanTimePattern = regexp.MustCompile(`(?i)(\d{1,2})[:.](\d{2})\s*(AM|PM)?`)
	scanDatePattern = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})|(\d{4})[/-](\d{1,2})[/-](\d{1,2})`)
	scanURLPattern  = regexp.MustCompile(`https?://\S+`)
)

var scanSkipWords = []string{"join", "meeting", "invite", "zoom", "teams", "google", "link", "time", "date", "when", "where"}

// MeetingScan is what could be recovered from pasted or OCR'd invite text.
type MeetingScan struct {
	Title    string
	Link     string
	Date     time.Time // midnight of the last date found
	HasDate  bool
	Start    time.Duration // offset from midnight of the first valid time
	HasStart bool
	Info     string
}

// ScanMeeting pulls a title, link, date and start time out of free text.
// The last link wins, the first valid time wins. The title is the first
// line longer than five characters that holds no link, date or time and
// doesn't open with a calendar boilerplate word. Info keeps the full text.
func ScanMeeting(text string) MeetingScan {
	scan := MeetingScan{Info: text}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if u := scanURLPattern.FindString(trimmed); u != "" {
			scan.Link = u
		}
		if d, ok := parseScanDate(trimmed); ok {
			scan.Date = d
			scan.HasDate = true
		}
		if !scan.HasStart {
			if h, m, ok := parseScanTime(trimmed); ok {
				scan.Start = time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
				scan.HasStart = true
			}
		}

		if scan.Title == "" && utf8.RuneCountInString(trimmed) > 5 &&
			!scanURLPattern.MatchString(trimmed) &&
			!scanDatePattern.MatchString(trimmed) &&
			!scanTimePattern.MatchString(trimmed) &&
			!startsWithSkipWord(trimmed) {
			scan.Title = trimmed
		}
	}
	return scan
}

// ToTask builds a meeting task from the scan. base supplies whatever the
// text didn't: the date, and the time of day when no time was found. The
// meeting runs one hour.
func (s MeetingScan) ToTask(base time.Time) Task {
	day := base
	if s.HasDate {
		day = s.Date
	}
	hour, minute := base.Hour(), base.Minute()
	if s.HasStart {
		hour = int(s.Start / time.Hour)
		minute = int(s.Start % time.Hour / time.Minute)
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, base.Location())
	end := start.Add(time.Hour)

	title := s.Title
	if title == "" {
		title = AutoTitle(TypeMeeting)
	}
	return Task{
		Title:            title,
		DueDate:          start,
		Priority:         PriorityNone,
		TaskType:         TypeMeeting,
		MeetingStartTime: &start,
		MeetingEndTime:   &end,
		MeetingLink:      s.Link,
		MeetingInfo:      s.Info,
		SubTasks:         []SubTask{},
	}
}

func parseScanTime(line string) (int, int, bool) {
	for _, m := range scanTimePattern.FindAllStringSubmatch(line, -1) {
		h, _ := strconv.Atoi(m[1])
		mins, _ := strconv.Atoi(m[2])
		switch strings.ToUpper(m[3]) {
		case "PM":
			if h < 12 {
				h += 12
			}
		case "AM":
			if h == 12 {
				h = 0
			}
		}
		if h <= 23 && mins <= 59 {
			return h, mins, true
		}
	}
	return 0, 0, false
}

func parseScanDate(line string) (time.Time, bool) {
	m := scanDatePattern.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, false
	}
	var y, mo, d int
	if m[1] != "" {
		mo, _ = strconv.Atoi(m[1])
		d, _ = strconv.Atoi(m[2])
		y, _ = strconv.Atoi(m[3])
		if y < 100 {
			y += 2000
		}
	} else {
		y, _ = strconv.Atoi(m[4])
		mo, _ = strconv.Atoi(m[5])
		d, _ = strconv.Atoi(m[6])
	}
	if mo < 1 || mo > 12 || d < 1 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.Local)
	if t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func startsWithSkipWord(line string) bool {
	lower := strings.ToLower(line)
	for _, w := range scanSkipWords {
		if strings.HasPrefix(lower, w) {
			return true
		}
	}
	return false
}
