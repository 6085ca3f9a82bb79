package agenda

import (
	"sort"
	"time"

	"myplan/internal/tasks/data"
)

// DayRange returns a DateRange for a single day
func DayRange(date time.Time) DateRange {
	start := dayOf(date)
	return DateRange{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Nanosecond)}
}

// WeekRange returns the Monday to Sunday week containing date.
func WeekRange(date time.Time) DateRange {
	weekday := date.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	start := dayOf(date.AddDate(0, 0, -int(weekday-time.Monday)))
	return DateRange{Start: start, End: start.AddDate(0, 0, 7).Add(-time.Nanosecond)}
}

// MonthRange returns a DateRange for the entire month containing the given date
func MonthRange(date time.Time) DateRange {
	start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	return DateRange{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
}

// Contains reports whether t falls on a day inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := dayOf(t.In(r.Start.Location()))
	return !d.Before(dayOf(r.Start)) && !d.After(dayOf(r.End))
}

// Place returns when a task sits on the agenda: a meeting at its start,
// anything else at its due time.
func Place(t data.Task) Item {
	if t.Kind() == data.TypeMeeting {
		start, _ := data.MeetingWindow(t)
		return Item{Reason: ReasonMeeting, At: start, Task: t}
	}
	return Item{Reason: ReasonDue, At: t.DueDate, Task: t}
}

// Query buckets the tasks that fall inside dateRange by day. Days without
// tasks are left out; buckets and the items in them are in time order.
func Query(tasks []data.Task, dateRange DateRange) []DateBucket {
	bucketMap := make(map[string]*DateBucket)
	for _, t := range tasks {
		item := Place(t)
		if !dateRange.Contains(item.At) {
			continue
		}
		bucket := getOrCreateBucket(bucketMap, item.At.In(dateRange.Start.Location()))
		if item.Completed() {
			bucket.Completed = append(bucket.Completed, item)
		} else {
			bucket.Items = append(bucket.Items, item)
		}
	}

	buckets := make([]DateBucket, 0, len(bucketMap))
	for _, bucket := range bucketMap {
		sortItems(bucket.Items)
		sortItems(bucket.Completed)
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date.Before(buckets[j].Date)
	})
	return buckets
}

// QueryOverdue returns open tasks placed strictly before cutoff's day,
// oldest first.
func QueryOverdue(tasks []data.Task, cutoff time.Time) []Item {
	cutoffDay := dayOf(cutoff)
	var items []Item
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		item := Place(t)
		if dayOf(item.At.In(cutoff.Location())).Before(cutoffDay) {
			items = append(items, item)
		}
	}
	sortItems(items)
	return items
}

func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].At.Before(items[j].At)
	})
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func getOrCreateBucket(bucketMap map[string]*DateBucket, date time.Time) *DateBucket {
	key := date.Format("2006-01-02")
	if bucket, ok := bucketMap[key]; ok {
		return bucket
	}
	bucket := &DateBucket{Date: dayOf(date)}
	bucketMap[key] = bucket
	return bucket
}
