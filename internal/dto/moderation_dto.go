package dto

import "github.com/communitypulse/backend/internal/models"

type ModerationActionRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

type QueueEntry struct {
	models.Flag
	AIAnalysis *models.AIAnalysis `json:"ai_analysis,omitempty"`
}

type QueueResponse struct {
	Flags       []QueueEntry `json:"flags"`
	Total       int64        `json:"total"`
	TotalPages  int64        `json:"total_pages"`
	CurrentPage int          `json:"current_page"`
	Pending     int64        `json:"pending"`
}

type LogListResponse struct {
	Logs        []models.ModerationLog `json:"logs"`
	Total       int64                  `json:"total"`
	TotalPages  int64                  `json:"total_pages"`
	CurrentPage int                    `json:"current_page"`
}
