package task

import (
	"errors"

	domain "github.com/example/taskboard/domain/task"
	"gorm.io/gorm"
)

// ErrTaskNotFound is returned when a task is not found.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository handles task persistence using GORM. It exclusively owns
// Task records; a task holds a non-owning reference to its user by ID.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// Create creates a new task in the database.
func (r *TaskRepository) Create(task *domain.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID.
func (r *TaskRepository) FindByID(id string) (*domain.Task, error) {
	var task domain.Task
	result := r.db.First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// ListByOwner returns all tasks owned by ownerID, most recent first.
// No pagination; the result is unbounded.
func (r *TaskRepository) ListByOwner(ownerID string) ([]domain.Task, error) {
	var tasks []domain.Task
	result := r.db.Where("user_id = ?", ownerID).Order("created_at DESC").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// Update persists the full state of an existing task.
func (r *TaskRepository) Update(task *domain.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task by ID.
func (r *TaskRepository) Delete(id string) error {
	result := r.db.Delete(&domain.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
