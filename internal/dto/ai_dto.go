package dto

import (
	"github.com/communitypulse/backend/internal/ai"
	"github.com/google/uuid"
)

type AnalyzeTextRequest struct {
	Text   string     `json:"text"`
	PostID *uuid.UUID `json:"post_id,omitempty"`
}

type AnalyzeImageRequest struct {
	ImageURL string     `json:"image_url"`
	PostID   *uuid.UUID `json:"post_id,omitempty"`
}

type AnalyzeResponse struct {
	Success         bool           `json:"success"`
	Analysis        *ai.Assessment `json:"analysis"`
	Recommendations Recommendation `json:"recommendations"`
}

type Recommendation struct {
	ShouldAutoRemove bool `json:"should_auto_remove"`
	ShouldFlag       bool `json:"should_flag"`
}

type AIConfigResponse struct {
	Thresholds AIThresholds `json:"thresholds"`
	Providers  AIProviders  `json:"providers"`
}

type AIThresholds struct {
	AutoRemove float64 `json:"auto_remove"`
	FlagReview float64 `json:"flag_review"`
}

type AIProviders struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}
