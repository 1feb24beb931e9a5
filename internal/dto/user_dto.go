package dto

import (
	"time"

	"github.com/communitypulse/backend/internal/models"
	"github.com/google/uuid"
)

// PublicUser is the outward projection of a user. It excludes credential
// material by construction rather than by field stripping.
type PublicUser struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	ReputationScore int       `json:"reputation_score"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewPublicUser(u *models.User) PublicUser {
	return PublicUser{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Role:            u.Role,
		ReputationScore: u.ReputationScore,
		CreatedAt:       u.CreatedAt,
	}
}

type UserProfileResponse struct {
	PublicUser
	Stats UserStats `json:"stats"`
}

type UserStats struct {
	Posts int64 `json:"posts"`
	Flags int64 `json:"flags"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}
