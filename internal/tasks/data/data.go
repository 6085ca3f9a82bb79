package data

import (
	"fmt"
	"strings"

	"myplan/internal/logs"
)

// AmbiguousIDError is returned when an id prefix matches more than one task.
type AmbiguousIDError struct {
	Prefix  string
	Matches []string
}

func (e *AmbiguousIDError) Error() string {
	return fmt.Sprintf("id prefix %q matches %d tasks: %s", e.Prefix, len(e.Matches), strings.Join(e.Matches, ", "))
}

// UpsertTask replaces the task with the same ID or appends it.
func UpsertTask(tasks []Task, updated Task) []Task {
	for i, t := range tasks {
		if t.ID == updated.ID {
			logs.Logger.Printf("cache: replacing task %s", updated.ID)
			tasks[i] = updated
			return tasks
		}
	}
	logs.Logger.Printf("cache: adding task %s", updated.ID)
	return append(tasks, updated)
}

// DeleteTask removes a task by ID from the task slice and returns the updated slice.
func DeleteTask(tasks []Task, id string) []Task {
	for i, t := range tasks {
		if t.ID == id {
			return append(tasks[:i], tasks[i+1:]...)
		}
	}
	return tasks
}

// FindByPrefix resolves an exact id or a unique id prefix. The bool is false
// when nothing matches.
func FindByPrefix(tasks []Task, prefix string) (Task, bool, error) {
	var matches []Task
	for _, t := range tasks {
		if t.ID == prefix {
			return t, true, nil
		}
		if prefix != "" && strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return Task{}, false, nil
	case 1:
		return matches[0], true, nil
	}
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	return Task{}, false, &AmbiguousIDError{Prefix: prefix, Matches: ids}
}

// TaskCount returns open and completed counts.
func TaskCount(tasks []Task) (int, int) {
	todoCount := 0
	doneCount := 0
	for _, task := range tasks {
		if task.Completed {
			doneCount++
		} else {
			todoCount++
		}
	}
	return todoCount, doneCount
}
