package task

import (
	"time"

	domain "github.com/example/taskboard/domain/task"
)

// TaskData is the serialized representation of a task exchanged between
// modules through the service container.
type TaskData struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Completed      bool       `json:"completed"`
	CompletionDate *time.Time `json:"completion_date"`
	UserID         string     `json:"user_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ListTasksRequest is the request for listing a user's tasks.
type ListTasksRequest struct {
	UserID string `json:"user_id"`
}

// ListTasksResponse is the response containing a user's tasks,
// most recent first.
type ListTasksResponse struct {
	Tasks []TaskData `json:"tasks"`
	Total int        `json:"total"`
}

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// UpdateTaskRequest is a sparse patch: only fields that are present are
// applied to the task. A present Completed flag drives the completion
// timestamp transition.
type UpdateTaskRequest struct {
	UserID      string  `json:"user_id"`
	TaskID      string  `json:"task_id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// DeleteTaskResponse is the response after deleting a task.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// toTaskData converts a Task entity to its serialized representation.
func toTaskData(t *domain.Task) TaskData {
	return TaskData{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Category:       t.Category,
		Completed:      t.Completed,
		CompletionDate: t.CompletionDate,
		UserID:         t.UserID,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
