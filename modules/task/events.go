package task

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// Kinds of task mutations carried by TaskChanged events.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// TaskChangedEvent is emitted after every successful task mutation.
// Consumers use the owner ID to invalidate derived views.
type TaskChangedEvent struct {
	TaskID     string    `json:"task_id"`
	UserID     string    `json:"user_id"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TaskChangedV1 is the typed event definition for task mutations.
// Subject: events.task.v1.task-changed
var TaskChangedV1 = helper.EventDefinition[TaskChangedEvent](
	"task", "TaskChanged", "v1",
)
