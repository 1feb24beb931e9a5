package dto

import "github.com/communitypulse/backend/internal/models"

type CreatePostRequest struct {
	Content  string `json:"content"`
	MediaURL string `json:"media_url"`
}

type UpdatePostRequest struct {
	Content string `json:"content"`
}

type PostResponse struct {
	models.Post
	FlagCount  int64              `json:"flag_count"`
	AIAnalysis *models.AIAnalysis `json:"ai_analysis,omitempty"`
}

type PostListResponse struct {
	Posts       []PostResponse `json:"posts"`
	Total       int64          `json:"total"`
	TotalPages  int64          `json:"total_pages"`
	CurrentPage int            `json:"current_page"`
}
