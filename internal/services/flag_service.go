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
	ErrDuplicateFlag   = errors.New("you have already flagged this post")
	ErrInvalidCategory = errors.New("invalid reason category")
	ErrReasonTooLong   = errors.New("reason text must be less than 500 characters")
)

type FlagService struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewFlagService(db *gorm.DB, hub *realtime.Hub) *FlagService {
	return &FlagService{db: db, hub: hub}
}

// Create raises a user flag against a post. At most one flag per
// (post, flagger) pair is accepted; a second attempt is a conflict.
func (s *FlagService) Create(flaggerID uuid.UUID, req *dto.CreateFlagRequest) (*models.Flag, error) {
	if !models.ValidFlagCategory(req.ReasonCategory) {
		return nil, ErrInvalidCategory
	}
	reasonText := strings.TrimSpace(req.ReasonText)
	if len(reasonText) > 500 {
		return nil, ErrReasonTooLong
	}

	var post models.Post
	if err := s.db.Preload("Author").First(&post, "id = ?", req.PostID).Error; err != nil {
		return nil, ErrPostNotFound
	}

	var existing models.Flag
	err := s.db.Where("post_id = ? AND flagged_by = ?", req.PostID, flaggerID).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateFlag
	}

	flag := models.Flag{
		ID:             uuid.New(),
		PostID:         req.PostID,
		FlaggedBy:      flaggerID,
		ReasonCategory: req.ReasonCategory,
		ReasonText:     reasonText,
		Status:         models.FlagPending,
	}
	if err := s.db.Create(&flag).Error; err != nil {
		return nil, fmt.Errorf("failed to create flag: %w", err)
	}

	flaggerName := ""
	var flagger models.User
	if err := s.db.First(&flagger, "id = ?", flaggerID).Error; err == nil {
		flaggerName = flagger.Name
	}

	s.hub.ToModerators(realtime.EventNewFlag, realtime.NewFlagEvent{
		FlagID:      flag.ID,
		PostID:      post.ID,
		Reason:      flag.ReasonCategory,
		FlaggedBy:   flaggerName,
		PostAuthor:  post.Author.Name,
		PostContent: realtime.Preview(post.Content),
	})

	return &flag, nil
}

// MyFlags lists flags raised by one user, newest first.
func (s *FlagService) MyFlags(userID uuid.UUID) ([]models.Flag, error) {
	var flags []models.Flag
	err := s.db.Where("flagged_by = ?", userID).
		Preload("Post").Preload("Post.Author").
		Order("created_at DESC").
		Find(&flags).Error
	return flags, err
}
