package user

import (
	"time"
)

// Authentication providers. A user created through Google sign-in carries
// a randomly derived password hash that can never match a local login.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User represents a user account in the system.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Name         string `gorm:"not null;type:text"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	Provider     string `gorm:"not null;default:local;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Claims represents the verified identity carried by a token.
type Claims struct {
	UserID string `json:"user_id"`
}

// View is the sanitized representation of a user returned by every auth
// operation. The password hash is never serialized outward.
type View struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToView returns the sanitized view of the user.
func (u *User) ToView() View {
	return View{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
