package dashboard

import (
	task "github.com/example/taskboard/modules/task"
)

// Status filter values.
const (
	StatusAll       = "all"
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// Criteria selects tasks by completion status and creation month/year.
// All active criteria are combined with logical AND: a task must satisfy
// every one of them to appear. A zero Month or Year means that criterion
// is inactive; StatusAll (or empty) deactivates the status criterion.
type Criteria struct {
	Status string
	Month  int // 1-12
	Year   int
}

// Matches reports whether t satisfies every active criterion.
func (c Criteria) Matches(t *task.TaskData) bool {
	switch c.Status {
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	case StatusPending:
		if t.Completed {
			return false
		}
	}

	if c.Month != 0 && int(t.CreatedAt.Month()) != c.Month {
		return false
	}
	if c.Year != 0 && t.CreatedAt.Year() != c.Year {
		return false
	}

	return true
}

// Filter returns the tasks satisfying the criteria, preserving order.
func Filter(tasks []task.TaskData, c Criteria) []task.TaskData {
	filtered := make([]task.TaskData, 0, len(tasks))
	for i := range tasks {
		if c.Matches(&tasks[i]) {
			filtered = append(filtered, tasks[i])
		}
	}
	return filtered
}

// Stats holds the derived counters for a task collection. Never persisted;
// always recomputed from the full collection.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// ComputeStats derives the counters from the full, unfiltered collection.
func ComputeStats(tasks []task.TaskData) Stats {
	completed := 0
	for i := range tasks {
		if tasks[i].Completed {
			completed++
		}
	}

	return Stats{
		Total:     len(tasks),
		Completed: completed,
		Pending:   len(tasks) - completed,
	}
}
