package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/example/taskboard/domain/task"
	"github.com/google/uuid"
)

// ErrInvalidCategory is returned when a category outside the fixed set
// is supplied.
var ErrInvalidCategory = errors.New("invalid category")

// TaskService enforces task ownership scoping and completion-state
// transition rules.
//
// A task that does not exist and a task owned by another user are
// indistinguishable to the caller: both update and delete report
// ErrTaskNotFound, so a task ID never reveals another user's data.
type TaskService struct {
	repo *TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
	}
}

// List returns all tasks owned by ownerID, most recent first.
func (s *TaskService) List(_ context.Context, ownerID string) ([]domain.Task, error) {
	tasks, err := s.repo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Create creates a new task for ownerID. The category defaults to Work
// when omitted and must be a member of the fixed set when supplied. A new
// task is never completed. Title emptiness is deliberately not checked
// here; rejection of blank titles is a client precondition.
func (s *TaskService) Create(_ context.Context, ownerID, title, description, category string) (*domain.Task, error) {
	if category == "" {
		category = domain.DefaultCategory
	} else if !domain.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	now := time.Now()
	task := &domain.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Category:    category,
		Completed:   false,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Update applies a sparse patch to a task owned by ownerID. Only fields
// present in the patch are written. When the patch carries the completion
// flag, the completion timestamp is set to now on true and cleared on
// false. Owner and creation time are immutable.
func (s *TaskService) Update(_ context.Context, ownerID string, patch UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.findOwned(ownerID, patch.TaskID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Category != nil {
		if !domain.ValidCategory(*patch.Category) {
			return nil, ErrInvalidCategory
		}
		task.Category = *patch.Category
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
		if *patch.Completed {
			now := time.Now()
			task.CompletionDate = &now
		} else {
			task.CompletionDate = nil
		}
	}
	task.UpdatedAt = time.Now()

	if err := s.repo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Delete removes a task owned by ownerID. There is no soft-delete.
func (s *TaskService) Delete(_ context.Context, ownerID, taskID string) error {
	if _, err := s.findOwned(ownerID, taskID); err != nil {
		return err
	}

	if err := s.repo.Delete(taskID); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// findOwned loads a task and checks it belongs to ownerID.
func (s *TaskService) findOwned(ownerID, taskID string) (*domain.Task, error) {
	task, err := s.repo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != ownerID {
		return nil, ErrTaskNotFound
	}
	return task, nil
}
