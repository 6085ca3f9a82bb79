package agenda

import (
	"time"

	"myplan/internal/tasks/data"
)

// DateReason identifies why a task appears on a given date
type DateReason int

const (
	ReasonDue DateReason = iota
	ReasonMeeting
)

func (r DateReason) String() string {
	switch r {
	case ReasonDue:
		return "due"
	case ReasonMeeting:
		return "meet"
	default:
		return ""
	}
}

// Item is a task placed at a point in time.
type Item struct {
	Reason DateReason
	At     time.Time
	Task   data.Task
}

// Completed reports whether the underlying task is done.
func (i Item) Completed() bool {
	return i.Task.Completed
}

// DateBucket groups the items of one day
type DateBucket struct {
	Date      time.Time
	Items     []Item
	Completed []Item
}

// AllItems returns open items first, then completed ones.
func (b DateBucket) AllItems() []Item {
	items := make([]Item, 0, len(b.Items)+len(b.Completed))
	items = append(items, b.Items...)
	items = append(items, b.Completed...)
	return items
}

// TotalCount returns the number of items in the bucket, completed included.
func (b DateBucket) TotalCount() int {
	return len(b.Items) + len(b.Completed)
}

// DateRange is an inclusive span of days.
type DateRange struct {
	Start time.Time
	End   time.Time
}
