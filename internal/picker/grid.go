package picker

import "time"

// Cell is one slot of the month grid. Padding cells have Day == 0 and a zero
// Date.
type Cell struct {
	Day  int
	Date time.Time
}

// IsPadding reports whether the cell is a blank lead-in slot.
func (c Cell) IsPadding() bool {
	return c.Day == 0
}

// MondayIndex converts a Sunday-first weekday into a Monday-first column.
func MondayIndex(wd time.Weekday) int {
	raw := int(wd)
	if raw == 0 {
		return 6
	}
	return raw - 1
}

// DaysIn returns the number of days in the month, using day 0 of the
// following month so December rolls into January correctly.
func DaysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// BuildMonthGrid returns the cells for a Monday-first calendar of the given
// month: enough padding to put the 1st under its weekday, then one cell per
// day. Rows are not grouped; callers wrap every 7 cells.
func BuildMonthGrid(year int, month time.Month, loc *time.Location) []Cell {
	if loc == nil {
		loc = time.Local
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	pad := MondayIndex(first.Weekday())
	days := DaysIn(first.Year(), first.Month(), loc)

	cells := make([]Cell, 0, pad+days)
	for i := 0; i < pad; i++ {
		cells = append(cells, Cell{})
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, Cell{
			Day:  d,
			Date: time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, loc),
		})
	}
	return cells
}

// SameDay compares calendar dates only, ignoring time of day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// WeekdayLabels are the Monday-first column headers.
var WeekdayLabels = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}
