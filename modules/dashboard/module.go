package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/taskboard/modules/cache"
	task "github.com/example/taskboard/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Module maintains the cached per-user task collection and serves derived
// views. It consumes TaskChanged events and invalidates the collection
// after every mutation instead of patching the cached value.
type Module struct {
	service       *Service
	cacheModule   *cache.Module
	taskContainer mono.ServiceContainer
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)

// NewModule creates a new dashboard module. The cache module must be
// registered before this one so its client is connected by the time
// Start runs.
func NewModule(cacheModule *cache.Module) *Module {
	return &Module{
		cacheModule: cacheModule,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "dashboard"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "task" {
		m.taskContainer = container
	}
}

// Start initializes the dashboard service.
func (m *Module) Start(_ context.Context) error {
	if m.taskContainer == nil {
		return fmt.Errorf("task dependency not set")
	}

	// The cache module exposes no service container, so it cannot be a
	// declared dependency; main.go registers it first and modules start
	// in registration order.
	c := m.cacheModule.GetCache()
	if c == nil {
		return fmt.Errorf("cache module not started")
	}

	m.service = NewService(task.NewTaskAdapter(m.taskContainer), c)

	log.Println("[dashboard] Module started")
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[dashboard] Module stopped")
	return nil
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"snapshot",
		json.Unmarshal,
		json.Marshal,
		m.handleSnapshot,
	); err != nil {
		return fmt.Errorf("failed to register snapshot service: %w", err)
	}

	log.Printf("[dashboard] Registered services: snapshot")
	return nil
}

// RegisterEventConsumers subscribes to task mutation events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	changedDef, ok := registry.GetEventByName("TaskChanged", "v1", "task")
	if !ok {
		return fmt.Errorf("event TaskChanged.v1 not found")
	}
	if err := registry.RegisterEventConsumer(changedDef, m.handleTaskChanged, m); err != nil {
		return fmt.Errorf("failed to register TaskChanged consumer: %w", err)
	}

	log.Println("[dashboard] Registered event consumers: TaskChanged.v1")
	return nil
}

// handleSnapshot serves the derived view for a user.
func (m *Module) handleSnapshot(ctx context.Context, req SnapshotRequest, _ *mono.Msg) (SnapshotResponse, error) {
	criteria := Criteria{
		Status: req.Status,
		Month:  req.Month,
		Year:   req.Year,
	}
	return m.service.Snapshot(ctx, req.UserID, criteria)
}

// handleTaskChanged invalidates the owner's cached collection after a
// mutation. Unmarshal failures are not retried.
func (m *Module) handleTaskChanged(ctx context.Context, msg *mono.Msg) error {
	var event task.TaskChangedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		log.Printf("[dashboard] Failed to unmarshal TaskChanged event: %v", err)
		return nil
	}

	if err := m.service.Invalidate(ctx, event.UserID); err != nil {
		log.Printf("[dashboard] Failed to invalidate collection for %s: %v", event.UserID, err)
		return err
	}

	log.Printf("[dashboard] Invalidated collection for user %s (%s)", event.UserID, event.Kind)
	return nil
}
