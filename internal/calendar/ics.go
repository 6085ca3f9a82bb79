// Package calendar moves meeting tasks in and out of iCalendar files.
package calendar

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"myplan/internal/logs"
	"myplan/internal/tasks/data"
)

const productID = "-//myplan//tasks//EN"

var linkPattern = regexp.MustCompile(`https?://\S+`)

// Meeting is an imported VEVENT together with its UID.
type Meeting struct {
	UID  string
	Task data.Task
}

// ImportOptions bounds recurrence expansion.
type ImportOptions struct {
	// From and Until delimit the occurrences of recurring events. Zero From
	// means now; zero Until means 30 days after From.
	From  time.Time
	Until time.Time
	// MaxOccurrences caps each recurring event. Zero means 500.
	MaxOccurrences int
}

func (o ImportOptions) withDefaults() ImportOptions {
	if o.From.IsZero() {
		o.From = time.Now()
	}
	if o.Until.IsZero() {
		o.Until = o.From.AddDate(0, 0, 30)
	}
	if o.MaxOccurrences <= 0 {
		o.MaxOccurrences = defaultMaxOccurrences
	}
	return o
}

// ImportMeetings reads every VEVENT as a meeting task. Events without a
// usable DTSTART are skipped and logged. A missing DTEND means one hour.
// Recurring events become one meeting per occurrence inside the window;
// single events are imported whatever their date.
func ImportMeetings(r io.Reader, opts ImportOptions) ([]Meeting, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}
	opts = opts.withDefaults()
	if opts.Until.Before(opts.From) {
		return nil, fmt.Errorf("import window ends (%s) before it starts (%s)",
			opts.Until.Format(time.DateOnly), opts.From.Format(time.DateOnly))
	}

	var out []Meeting
	for _, ev := range cal.Events() {
		m, err := meetingFromEvent(ev)
		if err != nil {
			logs.Logger.Printf("calendar: skipping event: %v", err)
			continue
		}
		rule := ev.GetProperty(ical.ComponentPropertyRrule)
		if rule == nil {
			out = append(out, m)
			continue
		}
		occ, err := expandMeeting(m, rule.Value, exDates(ev), opts)
		if err != nil {
			logs.Logger.Printf("calendar: skipping recurring event %q: %v", m.UID, err)
			continue
		}
		out = append(out, occ...)
	}
	logs.Logger.Printf("calendar: imported %d meetings from %d events", len(out), len(cal.Events()))
	return out, nil
}

func meetingFromEvent(ev *ical.VEvent) (Meeting, error) {
	var m Meeting
	if p := ev.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		m.UID = p.Value
	}

	start, err := ev.GetStartAt()
	if err != nil {
		return m, fmt.Errorf("event %q: %w", m.UID, err)
	}
	end, err := ev.GetEndAt()
	if err != nil || end.Before(start) {
		end = start.Add(time.Hour)
	}
	start = start.Local()
	end = end.Local()

	var summary, description, link string
	if p := ev.GetProperty(ical.ComponentPropertySummary); p != nil {
		summary = strings.TrimSpace(p.Value)
	}
	if p := ev.GetProperty(ical.ComponentPropertyDescription); p != nil {
		description = strings.TrimSpace(p.Value)
	}
	if p := ev.GetProperty(ical.ComponentPropertyUrl); p != nil {
		link = strings.TrimSpace(p.Value)
	}
	if link == "" {
		link = linkPattern.FindString(description)
	}
	if link == "" {
		if p := ev.GetProperty(ical.ComponentPropertyLocation); p != nil {
			link = linkPattern.FindString(p.Value)
		}
	}

	if summary == "" {
		summary = data.AutoTitle(data.TypeMeeting)
	}
	m.Task = data.Task{
		Title:            summary,
		DueDate:          start,
		Priority:         data.PriorityNone,
		TaskType:         data.TypeMeeting,
		MeetingStartTime: &start,
		MeetingEndTime:   &end,
		MeetingLink:      link,
		MeetingInfo:      description,
		Description:      data.MeetingDescription(start, end),
		SubTasks:         []data.SubTask{},
	}
	return m, nil
}

// ExportOptions selects what goes into an export.
type ExportOptions struct {
	// IncludeTasks also writes non-meeting tasks as zero-length events at
	// their due time.
	IncludeTasks bool
	// IncludeCompleted keeps completed tasks.
	IncludeCompleted bool
	Now              time.Time
}

// ExportMeetings writes the selected tasks as a VCALENDAR. Each event's UID
// is the task id. It returns the number of events written.
func ExportMeetings(w io.Writer, tasks []data.Task, opts ExportOptions) (int, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	n := 0
	for _, t := range tasks {
		if t.Completed && !opts.IncludeCompleted {
			continue
		}
		t = data.Hydrate(t)
		kind := t.Kind()
		if kind != data.TypeMeeting && !opts.IncludeTasks {
			continue
		}

		uid := t.ID
		if uid == "" {
			uid = fmt.Sprintf("myplan-%d-%d", opts.Now.Unix(), n)
		}
		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(opts.Now)
		ev.SetSummary(t.Title)

		start, end := t.DueDate, t.DueDate
		if kind == data.TypeMeeting {
			start, end = data.MeetingWindow(t)
			if t.MeetingLink != "" {
				ev.SetURL(t.MeetingLink)
			}
			if t.MeetingInfo != "" {
				ev.SetDescription(t.MeetingInfo)
			}
		} else if t.Description != "" {
			ev.SetDescription(t.Description)
		}
		ev.SetStartAt(start.UTC())
		ev.SetEndAt(end.UTC())
		if t.Completed {
			ev.SetStatus(ical.ObjectStatusCompleted)
		}
		n++
	}

	if err := cal.SerializeTo(w); err != nil {
		return n, fmt.Errorf("writing calendar: %w", err)
	}
	return n, nil
}
