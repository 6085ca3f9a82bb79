package data

import (
	"fmt"
	"time"
)

// RelativeDue renders the distance between due and now in its largest whole
// unit: "3 y", "2 d", "5 h", "12 m", or "Now" under a minute. Direction is
// not shown; pair it with Task.IsOverdue.
func RelativeDue(due, now time.Time) string {
	diff := due.Sub(now)
	if diff < 0 {
		diff = -diff
	}
	minutes := int(diff / time.Minute)
	hours := minutes / 60
	days := hours / 24
	years := days / 365

	switch {
	case years > 0:
		return fmt.Sprintf("%d y", years)
	case days > 0:
		return fmt.Sprintf("%d d", days)
	case hours > 0:
		return fmt.Sprintf("%d h", hours)
	case minutes > 0:
		return fmt.Sprintf("%d m", minutes)
	}
	return "Now"
}
