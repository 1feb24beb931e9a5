package models

import (
	"time"

	"github.com/google/uuid"
)

// Moderation actions.
const (
	ActionApprove  = "approve"
	ActionRemove   = "remove"
	ActionEscalate = "escalate"
)

// ModerationLog is an append-only audit trail entry, one per accepted
// moderation action.
type ModerationLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ModeratorID uuid.UUID `gorm:"type:uuid;not null;index" json:"moderator_id"`
	FlagID      uuid.UUID `gorm:"type:uuid;not null;index" json:"flag_id"`
	Action      string    `gorm:"size:20;not null" json:"action"`
	Notes       string    `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Moderator   *User     `gorm:"foreignKey:ModeratorID" json:"moderator,omitempty"`
	Flag        *Flag     `gorm:"foreignKey:FlagID" json:"flag,omitempty"`
}

// ValidAction reports whether action is one of approve, remove, escalate.
func ValidAction(action string) bool {
	return action == ActionApprove || action == ActionRemove || action == ActionEscalate
}
