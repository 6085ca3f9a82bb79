package calendar

import (
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"myplan/internal/logs"
	"myplan/internal/tasks/data"
)

const defaultMaxOccurrences = 500

// expandMeeting turns a recurring meeting into one meeting per occurrence
// between opts.From and opts.Until. Each copy keeps the base duration and
// gets a UID of the form "<uid>/<start RFC3339>".
func expandMeeting(base Meeting, rawRule string, exdates []time.Time, opts ImportOptions) ([]Meeting, error) {
	r, err := rrule.StrToRRule(rawRule)
	if err != nil {
		return nil, err
	}
	start, end := *base.Task.MeetingStartTime, *base.Task.MeetingEndTime
	r.DTStart(start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range exdates {
		set.ExDate(ex.In(start.Location()))
	}

	times := set.Between(opts.From.In(start.Location()), opts.Until.In(start.Location()), true)
	if len(times) > opts.MaxOccurrences {
		logs.Logger.Printf("calendar: %q truncated to %d occurrences", base.UID, opts.MaxOccurrences)
		times = times[:opts.MaxOccurrences]
	}

	dur := end.Sub(start)
	out := make([]Meeting, 0, len(times))
	for _, at := range times {
		occStart := at.Local()
		occEnd := occStart.Add(dur)
		t := base.Task
		t.DueDate = occStart
		t.MeetingStartTime = &occStart
		t.MeetingEndTime = &occEnd
		t.Description = data.MeetingDescription(occStart, occEnd)
		t.SubTasks = []data.SubTask{}
		out = append(out, Meeting{
			UID:  base.UID + "/" + occStart.Format(time.RFC3339),
			Task: t,
		})
	}
	return out, nil
}

// exDates collects every EXDATE value of the event. Values that do not
// parse are dropped.
func exDates(ev *ical.VEvent) []time.Time {
	var out []time.Time
	for _, p := range ev.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseICSTime(part); err == nil {
				out = append(out, t)
			}
		}
	}
	return out
}

// parseICSTime parses the UTC, floating and date-only forms.
func parseICSTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, time.Local)
	default:
		return time.ParseInLocation("20060102", v, time.Local)
	}
}
