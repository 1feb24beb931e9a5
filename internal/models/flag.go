package models

import (
	"time"

	"github.com/google/uuid"
)

// Flag statuses. A flag starts pending and is moved exactly once to one of
// the terminal statuses by a moderation action.
const (
	FlagPending   = "pending"
	FlagApproved  = "approved"
	FlagRemoved   = "removed"
	FlagEscalated = "escalated"
)

// FlagCategories is the closed set of accepted reason categories.
var FlagCategories = []string{
	"spam", "harassment", "hate-speech", "violence",
	"nudity", "misinformation", "copyright", "other",
}

type Flag struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID         uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	FlaggedBy      uuid.UUID `gorm:"type:uuid;not null;index" json:"flagged_by"`
	ReasonCategory string    `gorm:"size:30;not null" json:"reason_category"`
	ReasonText     string    `gorm:"size:500" json:"reason_text,omitempty"`
	Status         string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Post           *Post     `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Flagger        *User     `gorm:"foreignKey:FlaggedBy" json:"flagger,omitempty"`
	Logs           []ModerationLog `gorm:"foreignKey:FlagID" json:"logs,omitempty"`
}

// ValidFlagCategory reports whether category is in the accepted set.
func ValidFlagCategory(category string) bool {
	for _, c := range FlagCategories {
		if c == category {
			return true
		}
	}
	return false
}
