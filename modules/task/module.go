package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	domain "github.com/example/taskboard/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TaskModule provides the task store and task service.
type TaskModule struct {
	db       *gorm.DB
	service  *TaskService
	eventBus mono.EventBus
	dbPath   string
}

// Compile-time interface checks.
var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)
var _ mono.EventBusAwareModule = (*TaskModule)(nil)
var _ mono.EventEmitterModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule.
func NewModule(dbPath string) *TaskModule {
	return &TaskModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// SetEventBus receives the EventBus from the framework.
func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		TaskChangedV1.ToBase(),
	}
}

// Start initializes the task module.
func (m *TaskModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewTaskService(NewTaskRepository(db))

	log.Printf("[task] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *TaskModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[task] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TaskModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"list",
		json.Unmarshal,
		json.Marshal,
		m.handleList,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"create",
		json.Unmarshal,
		json.Marshal,
		m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"update",
		json.Unmarshal,
		json.Marshal,
		m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"delete",
		json.Unmarshal,
		json.Marshal,
		m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	log.Printf("[task] Registered services: list, create, update, delete")
	return nil
}

// handleList handles task listing, scoped to the acting user.
func (m *TaskModule) handleList(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.List(ctx, req.UserID)
	if err != nil {
		return ListTasksResponse{}, err
	}

	resp := ListTasksResponse{
		Tasks: make([]TaskData, 0, len(tasks)),
		Total: len(tasks),
	}
	for i := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskData(&tasks[i]))
	}

	return resp, nil
}

// handleCreate handles task creation.
func (m *TaskModule) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskData, error) {
	task, err := m.service.Create(ctx, req.UserID, req.Title, req.Description, req.Category)
	if err != nil {
		return TaskData{}, err
	}

	m.publishChanged(task.ID, task.UserID, ChangeCreated)
	return toTaskData(task), nil
}

// handleUpdate handles sparse task patches.
func (m *TaskModule) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskData, error) {
	task, err := m.service.Update(ctx, req.UserID, req)
	if err != nil {
		return TaskData{}, err
	}

	m.publishChanged(task.ID, task.UserID, ChangeUpdated)
	return toTaskData(task), nil
}

// handleDelete handles task deletion.
func (m *TaskModule) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.Delete(ctx, req.UserID, req.TaskID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.TaskID}, err
	}

	m.publishChanged(req.TaskID, req.UserID, ChangeDeleted)
	return DeleteTaskResponse{Deleted: true, ID: req.TaskID}, nil
}

// publishChanged publishes a TaskChanged event for a successful mutation.
func (m *TaskModule) publishChanged(taskID, userID, kind string) {
	if m.eventBus == nil {
		return
	}

	event := TaskChangedEvent{
		TaskID:     taskID,
		UserID:     userID,
		Kind:       kind,
		OccurredAt: time.Now(),
	}
	if err := TaskChangedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[task] Failed to publish TaskChanged event: %v", err)
	}
}
