package data

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var progressPattern = regexp.MustCompile(`Progress:\s*(\d+)/(\d+)`)

// LearningProgress returns completed/total as a rounded percentage, 0 when
// total isn't positive.
func LearningProgress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// LearningDescription renders "Progress: c/t videos (p%)".
func LearningDescription(completed, total int) string {
	return fmt.Sprintf("Progress: %d/%d videos (%d%%)", completed, total, LearningProgress(completed, total))
}

// ParseLearning reads completed and total back out of a learning description.
func ParseLearning(description string) (completed, total int, ok bool) {
	m := progressPattern.FindStringSubmatch(description)
	if m == nil {
		return 0, 0, false
	}
	completed, _ = strconv.Atoi(m[1])
	total, _ = strconv.Atoi(m[2])
	return completed, total, true
}
