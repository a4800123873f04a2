package api

import (
	"time"

	task "github.com/example/taskboard/modules/task"
)

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleLoginRequest represents a Google sign-in request.
type GoogleLoginRequest struct {
	TokenID string `json:"tokenId"`
}

// UserResponse is the sanitized user view. It never carries the password
// hash.
type UserResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProfileResponse represents the authenticated user's profile.
type ProfileResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse represents a successful register or login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// UpdateTaskRequest is a sparse patch: absent fields leave the task
// untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Completed   *bool   `json:"completed"`
}

// TaskResponse represents a task on the wire.
type TaskResponse struct {
	ID             string     `json:"_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Completed      bool       `json:"completed"`
	CompletionDate *time.Time `json:"completionDate"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	UserID         string     `json:"userId"`
}

// DashboardResponse carries the filtered tasks plus counters derived from
// the full collection.
type DashboardResponse struct {
	Tasks     []TaskResponse `json:"tasks"`
	Total     int            `json:"total"`
	Completed int            `json:"completed"`
	Pending   int            `json:"pending"`
}

// MessageResponse represents a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// toTaskResponse converts serialized task data to the wire shape.
func toTaskResponse(t task.TaskData) TaskResponse {
	return TaskResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Category:       t.Category,
		Completed:      t.Completed,
		CompletionDate: t.CompletionDate,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		UserID:         t.UserID,
	}
}
