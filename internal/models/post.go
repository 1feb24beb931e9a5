package models

import (
	"time"

	"github.com/google/uuid"
)

// Post statuses.
const (
	PostActive  = "active"
	PostPending = "pending"
	PostRemoved = "removed"
)

type Post struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"author_id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	MediaURL  *string    `gorm:"size:500" json:"media_url,omitempty"`
	Status    string     `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Author    User       `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Flags     []Flag     `gorm:"foreignKey:PostID" json:"flags,omitempty"`
	Analyses  []AIAnalysis `gorm:"foreignKey:PostID" json:"analyses,omitempty"`
}
