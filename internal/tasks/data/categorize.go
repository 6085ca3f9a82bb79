package data

import (
	"sort"
	"strings"
	"time"
)

// Tab is one of the three due-date buckets.
type Tab string

const (
	TabOverdue Tab = "Overdue"
	TabToday   Tab = "Today"
	TabLater   Tab = "Later"
)

// Tabs in display order.
var Tabs = []Tab{TabOverdue, TabToday, TabLater}

// ParseTab matches a tab name case-insensitively.
func ParseTab(s string) (Tab, bool) {
	for _, t := range Tabs {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

// Buckets holds tasks split by due day.
type Buckets map[Tab][]Task

// Categorize splits tasks by due day relative to now's local midnight. A
// task due earlier today counts as Today, not Overdue. Each bucket lists
// open tasks first, then by due time.
func Categorize(tasks []Task, now time.Time) Buckets {
	today := midnight(now)
	b := Buckets{TabOverdue: nil, TabToday: nil, TabLater: nil}
	for _, t := range tasks {
		day := midnight(t.DueDate.In(now.Location()))
		switch {
		case day.Before(today):
			b[TabOverdue] = append(b[TabOverdue], t)
		case day.Equal(today):
			b[TabToday] = append(b[TabToday], t)
		default:
			b[TabLater] = append(b[TabLater], t)
		}
	}
	for _, tab := range Tabs {
		SortTasks(b[tab])
	}
	return b
}

// SortTasks orders open tasks before completed ones, then by due time.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, c := tasks[i], tasks[j]
		if a.Completed != c.Completed {
			return !a.Completed
		}
		return a.DueDate.Before(c.DueDate)
	})
}

// FirstNonEmpty returns active if it has tasks, otherwise the first tab that
// does. With no tasks at all active is kept.
func (b Buckets) FirstNonEmpty(active Tab) Tab {
	if len(b[active]) > 0 {
		return active
	}
	for _, t := range Tabs {
		if len(b[t]) > 0 {
			return t
		}
	}
	return active
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
