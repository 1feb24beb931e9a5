package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name            string    `gorm:"not null;size:100" json:"name"`
	Role            string    `gorm:"size:20;not null;default:'user'" json:"role"`
	PasswordHash    string    `gorm:"size:255" json:"-"`
	ReputationScore int       `gorm:"not null;default:0" json:"reputation_score"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleModerator || role == RoleAdmin
}

// IsStaff reports whether the role grants access to moderation features.
func IsStaff(role string) bool {
	return role == RoleModerator || role == RoleAdmin
}
