package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Analysis kinds.
const (
	AnalysisText  = "text"
	AnalysisImage = "image"
)

// AIAnalysis is an immutable audit record of one risk assessment of a
// post. A post accumulates one record per analysis run over its edit
// history; the most recent record wins for display.
type AIAnalysis struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PostID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"post_id"`
	Type        string         `gorm:"size:10;not null" json:"type"`
	Labels      datatypes.JSON `json:"labels"`
	Scores      datatypes.JSON `json:"scores"`
	OverallRisk float64        `gorm:"not null;index" json:"overall_risk"`
	RawResponse datatypes.JSON `json:"raw_response,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
