package task

import (
	"time"
)

// Task categories. Every task belongs to exactly one of these.
const (
	CategoryWork     = "Work"
	CategoryPersonal = "Personal"
	CategoryHealth   = "Health"
)

// DefaultCategory is assigned when a task is created without a category.
const DefaultCategory = CategoryWork

// ValidCategory reports whether c is a member of the fixed category set.
func ValidCategory(c string) bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryHealth:
		return true
	}
	return false
}

// Task represents a unit of work owned by a single user.
//
// CompletionDate is non-nil exactly when Completed is true: it is set when
// the completion flag transitions to true and cleared when it is reset.
type Task struct {
	ID             string `gorm:"primaryKey;type:text"`
	Title          string `gorm:"not null;type:text"`
	Description    string `gorm:"type:text"`
	Category       string `gorm:"not null;default:Work;type:text"`
	Completed      bool   `gorm:"not null;default:false"`
	CompletionDate *time.Time
	UserID         string `gorm:"index;not null;type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}
