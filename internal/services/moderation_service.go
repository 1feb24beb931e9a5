package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/communitypulse/backend/internal/dto"
	"github.com/communitypulse/backend/internal/models"
	"github.com/communitypulse/backend/internal/realtime"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrFlagNotFound  = errors.New("flag not found")
	ErrFlagProcessed = errors.New("flag has already been processed")
	ErrInvalidAction = errors.New("invalid action: must be approve, remove, or escalate")
	ErrNotAllowed    = errors.New("moderator or admin role required")
)

// Reputation deltas applied to the content author per action.
const (
	reputationPenalty = 10
	reputationReward  = 5
)

type ModerationService struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewModerationService(db *gorm.DB, hub *realtime.Hub) *ModerationService {
	return &ModerationService{db: db, hub: hub}
}

// Queue lists flags for review. sort is one of created_at (default),
// risk_score, or priority.
func (s *ModerationService) Queue(status, sort string, page, limit int) (*dto.QueueResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if status == "" {
		status = models.FlagPending
	}

	query := s.db.Model(&models.Flag{})
	if status != "all" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	switch sort {
	case "risk_score":
		query = query.Order("(SELECT COALESCE(MAX(a.overall_risk), 0) FROM ai_analyses a WHERE a.post_id = flags.post_id) DESC")
	case "priority":
		query = query.Order("reason_category ASC").Order("created_at ASC")
	default:
		query = query.Order("created_at DESC")
	}

	var flags []models.Flag
	if err := query.Preload("Post").Preload("Post.Author").Preload("Flagger").
		Limit(limit).Offset((page - 1) * limit).
		Find(&flags).Error; err != nil {
		return nil, err
	}

	entries := make([]dto.QueueEntry, len(flags))
	for i := range flags {
		entries[i] = dto.QueueEntry{Flag: flags[i]}
		var analysis models.AIAnalysis
		if err := s.db.Where("post_id = ?", flags[i].PostID).
			Order("created_at DESC").First(&analysis).Error; err == nil {
			entries[i].AIAnalysis = &analysis
		}
	}

	var pending int64
	s.db.Model(&models.Flag{}).Where("status = ?", models.FlagPending).Count(&pending)

	return &dto.QueueResponse{
		Flags:       entries,
		Total:       total,
		TotalPages:  (total + int64(limit) - 1) / int64(limit),
		CurrentPage: page,
		Pending:     pending,
	}, nil
}

// GetFlag returns one flag with its post, analyses and audit trail.
func (s *ModerationService) GetFlag(id uuid.UUID) (*dto.QueueEntry, error) {
	var flag models.Flag
	err := s.db.Preload("Post").Preload("Post.Author").Preload("Post.Analyses").
		Preload("Flagger").Preload("Logs").Preload("Logs.Moderator").
		First(&flag, "id = ?", id).Error
	if err != nil {
		return nil, ErrFlagNotFound
	}

	entry := &dto.QueueEntry{Flag: flag}
	var analysis models.AIAnalysis
	if err := s.db.Where("post_id = ?", flag.PostID).
		Order("created_at DESC").First(&analysis).Error; err == nil {
		entry.AIAnalysis = &analysis
	}
	return entry, nil
}

// Action applies a moderation action to a pending flag. The transition is
// a single conditional update: the first action to persist a non-pending
// status wins, any later action gets a conflict. The flag transition, the
// post removal, the log append and the author reputation change commit as
// one transaction.
func (s *ModerationService) Action(actorID, flagID uuid.UUID, req *dto.ModerationActionRequest) (*models.Flag, error) {
	action := strings.TrimSpace(req.Action)
	if !models.ValidAction(action) {
		return nil, ErrInvalidAction
	}
	if len(req.Reason) > 500 {
		return nil, ErrReasonTooLong
	}

	// Role re-check independent of route middleware.
	var actor models.User
	if err := s.db.First(&actor, "id = ?", actorID).Error; err != nil {
		return nil, ErrNotAllowed
	}
	if !models.IsStaff(actor.Role) {
		return nil, ErrNotAllowed
	}

	var flag models.Flag
	if err := s.db.Preload("Post").Preload("Post.Author").First(&flag, "id = ?", flagID).Error; err != nil {
		return nil, ErrFlagNotFound
	}
	if flag.Post == nil {
		return nil, ErrPostNotFound
	}

	newStatus := map[string]string{
		models.ActionApprove:  models.FlagApproved,
		models.ActionRemove:   models.FlagRemoved,
		models.ActionEscalate: models.FlagEscalated,
	}[action]

	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Flag{}).
			Where("id = ? AND status = ?", flagID, models.FlagPending).
			Update("status", newStatus)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrFlagProcessed
		}

		if action == models.ActionRemove {
			if err := tx.Model(&models.Post{}).
				Where("id = ?", flag.PostID).
				Update("status", models.PostRemoved).Error; err != nil {
				return err
			}
		}

		entry := models.ModerationLog{
			ID:          uuid.New(),
			ModeratorID: actorID,
			FlagID:      flagID,
			Action:      action,
			Notes:       req.Reason,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		// Single expression update so concurrent actions on different
		// flags by the same author never lose a reputation write.
		switch action {
		case models.ActionRemove:
			if err := tx.Model(&models.User{}).
				Where("id = ?", flag.Post.AuthorID).
				Update("reputation_score", gorm.Expr(
					"CASE WHEN reputation_score >= ? THEN reputation_score - ? ELSE 0 END",
					reputationPenalty, reputationPenalty)).Error; err != nil {
				return err
			}
		case models.ActionApprove:
			if err := tx.Model(&models.User{}).
				Where("id = ?", flag.Post.AuthorID).
				Update("reputation_score", gorm.Expr("reputation_score + ?", reputationReward)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrFlagProcessed) {
			return nil, ErrFlagProcessed
		}
		return nil, fmt.Errorf("moderation action failed: %w", err)
	}

	s.hub.ToUser(flag.Post.AuthorID, realtime.EventModerationAction, realtime.ModerationActionEvent{
		Action:    action,
		PostID:    flag.PostID,
		Reason:    req.Reason,
		Moderator: actor.Name,
	})

	var updated models.Flag
	if err := s.db.Preload("Post").Preload("Post.Author").Preload("Flagger").
		First(&updated, "id = ?", flagID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// Logs lists the moderation audit trail, newest first.
func (s *ModerationService) Logs(page, limit int) (*dto.LogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var total int64
	s.db.Model(&models.ModerationLog{}).Count(&total)

	var logs []models.ModerationLog
	err := s.db.Preload("Moderator").Preload("Flag").
		Preload("Flag.Post").Preload("Flag.Post.Author").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	return &dto.LogListResponse{
		Logs:        logs,
		Total:       total,
		TotalPages:  (total + int64(limit) - 1) / int64(limit),
		CurrentPage: page,
	}, nil
}
