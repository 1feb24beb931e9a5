package dto

import "github.com/google/uuid"

type CreateFlagRequest struct {
	PostID         uuid.UUID `json:"post_id"`
	ReasonCategory string    `json:"reason_category"`
	ReasonText     string    `json:"reason_text"`
}
