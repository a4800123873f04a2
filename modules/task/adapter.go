package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskPort defines the read interface other modules use to access tasks.
type TaskPort interface {
	ListTasks(ctx context.Context, ownerID string) ([]TaskData, error)
}

// TaskAdapter implements TaskPort using the service container.
type TaskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new TaskAdapter.
func NewTaskAdapter(container mono.ServiceContainer) *TaskAdapter {
	return &TaskAdapter{
		container: container,
	}
}

// ListTasks returns all tasks owned by ownerID, most recent first.
func (a *TaskAdapter) ListTasks(ctx context.Context, ownerID string) ([]TaskData, error) {
	req := ListTasksRequest{UserID: ownerID}
	var resp ListTasksResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list request failed: %w", err)
	}

	return resp.Tasks, nil
}
