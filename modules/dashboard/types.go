package dashboard

import (
	task "github.com/example/taskboard/modules/task"
)

// SnapshotRequest asks for the derived view of a user's tasks.
type SnapshotRequest struct {
	UserID string `json:"user_id"`
	Status string `json:"status,omitempty"`
	Month  int    `json:"month,omitempty"`
	Year   int    `json:"year,omitempty"`
}

// SnapshotResponse carries the filtered tasks plus counters derived from
// the full collection. pending = total - completed.
type SnapshotResponse struct {
	Tasks     []task.TaskData `json:"tasks"`
	Total     int             `json:"total"`
	Completed int             `json:"completed"`
	Pending   int             `json:"pending"`
}
