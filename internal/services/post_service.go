package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/communitypulse/backend/internal/ai"
	"github.com/communitypulse/backend/internal/dto"
	"github.com/communitypulse/backend/internal/models"
	"github.com/communitypulse/backend/internal/policy"
	"github.com/communitypulse/backend/internal/realtime"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxPostLength = 2000

// SystemFlagReason is the fixed explanation attached to flags raised by
// the risk pipeline rather than a person.
const SystemFlagReason = "Automatically flagged by AI for review"

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrNotPostOwner   = errors.New("not authorized to modify this post")
	ErrInvalidContent = errors.New("content must be between 1 and 2000 characters")
)

type PostService struct {
	db         *gorm.DB
	scorer     *ai.Scorer
	thresholds policy.Thresholds
	hub        *realtime.Hub
}

func NewPostService(db *gorm.DB, scorer *ai.Scorer, thresholds policy.Thresholds, hub *realtime.Hub) *PostService {
	return &PostService{db: db, scorer: scorer, thresholds: thresholds, hub: hub}
}

// Create stores a post and runs it through the moderation pipeline:
// risk scoring, then threshold routing into auto-remove, system flag, or
// no action. Image content, when present, gets its own independent
// auto-remove check. Scoring never fails the submission.
func (s *PostService) Create(ctx context.Context, authorID uuid.UUID, req *dto.CreatePostRequest) (*models.Post, error) {
	content := strings.TrimSpace(req.Content)
	if len(content) == 0 || len(content) > maxPostLength {
		return nil, ErrInvalidContent
	}

	post := models.Post{
		ID:       uuid.New(),
		AuthorID: authorID,
		Content:  content,
		Status:   models.PostActive,
	}
	if req.MediaURL != "" {
		post.MediaURL = &req.MediaURL
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	assessment := s.scorer.AnalyzeText(ctx, content, &post.ID)

	switch s.thresholds.Route(assessment.OverallRisk) {
	case policy.OutcomeAutoRemove:
		if err := s.db.Model(&post).Update("status", models.PostRemoved).Error; err != nil {
			return nil, fmt.Errorf("failed to remove post: %w", err)
		}
		post.Status = models.PostRemoved
	case policy.OutcomeFlag:
		s.raiseSystemFlag(&post)
	}

	if post.MediaURL != nil {
		imageAssessment := s.scorer.AnalyzeImage(ctx, *post.MediaURL, &post.ID)
		if s.thresholds.ShouldAutoRemove(imageAssessment.OverallRisk) && post.Status != models.PostRemoved {
			if err := s.db.Model(&post).Update("status", models.PostRemoved).Error; err != nil {
				return nil, fmt.Errorf("failed to remove post: %w", err)
			}
			post.Status = models.PostRemoved
		}
	}

	var complete models.Post
	if err := s.db.Preload("Author").First(&complete, "id = ?", post.ID).Error; err != nil {
		return nil, err
	}
	return &complete, nil
}

// raiseSystemFlag records a pending flag attributed to the author's
// submission and notifies connected moderators. A flag-write failure is
// logged but never blocks the post.
func (s *PostService) raiseSystemFlag(post *models.Post) {
	flag := models.Flag{
		ID:             uuid.New(),
		PostID:         post.ID,
		FlaggedBy:      post.AuthorID,
		ReasonCategory: "other",
		ReasonText:     SystemFlagReason,
		Status:         models.FlagPending,
	}
	if err := s.db.Create(&flag).Error; err != nil {
		slog.Error("failed to create system flag", "post_id", post.ID, "error", err)
		return
	}

	var author models.User
	authorName := ""
	if err := s.db.First(&author, "id = ?", post.AuthorID).Error; err == nil {
		authorName = author.Name
	}

	s.hub.ToModerators(realtime.EventNewFlag, realtime.NewFlagEvent{
		FlagID:      flag.ID,
		PostID:      post.ID,
		Reason:      flag.ReasonCategory,
		FlaggedBy:   "system",
		PostAuthor:  authorName,
		PostContent: realtime.Preview(post.Content),
	})
}

// List returns the public feed: active posts only, newest first.
func (s *PostService) List(page, limit int, search string, authorID *uuid.UUID) (*dto.PostListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := s.db.Model(&models.Post{}).Where("status = ?", models.PostActive)
	if search != "" {
		query = query.Where("LOWER(content) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if authorID != nil {
		query = query.Where("author_id = ?", *authorID)
	}

	var total int64
	query.Count(&total)

	var posts []models.Post
	if err := query.Preload("Author").Preload("Flags").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	entries := make([]dto.PostResponse, len(posts))
	for i := range posts {
		entries[i] = dto.PostResponse{Post: posts[i], FlagCount: int64(len(posts[i].Flags))}
		entries[i].Post.Flags = nil
	}

	return &dto.PostListResponse{
		Posts:       entries,
		Total:       total,
		TotalPages:  (total + int64(limit) - 1) / int64(limit),
		CurrentPage: page,
	}, nil
}

// Get returns one post. The latest risk assessment is included only for
// staff viewers.
func (s *PostService) Get(id uuid.UUID, viewerRole string) (*dto.PostResponse, error) {
	var post models.Post
	err := s.db.Preload("Author").Preload("Flags").Preload("Flags.Flagger").
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, ErrPostNotFound
	}

	resp := &dto.PostResponse{Post: post, FlagCount: int64(len(post.Flags))}

	if models.IsStaff(viewerRole) {
		var analysis models.AIAnalysis
		if err := s.db.Where("post_id = ?", id).Order("created_at DESC").First(&analysis).Error; err == nil {
			resp.AIAnalysis = &analysis
		}
	}
	return resp, nil
}

// Update edits a post's content (owner or admin) and re-analyzes it. The
// edit itself is not re-routed; the fresh assessment informs the next
// human look.
func (s *PostService) Update(ctx context.Context, id, actorID uuid.UUID, actorRole string, req *dto.UpdatePostRequest) (*models.Post, error) {
	content := strings.TrimSpace(req.Content)
	if len(content) == 0 || len(content) > maxPostLength {
		return nil, ErrInvalidContent
	}

	var post models.Post
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != actorID && actorRole != models.RoleAdmin {
		return nil, ErrNotPostOwner
	}

	if err := s.db.Model(&post).Update("content", content).Error; err != nil {
		return nil, err
	}

	s.scorer.AnalyzeText(ctx, content, &post.ID)

	var updated models.Post
	if err := s.db.Preload("Author").First(&updated, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a post entirely (owner or admin).
func (s *PostService) Delete(id, actorID uuid.UUID, actorRole string) error {
	var post models.Post
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		return ErrPostNotFound
	}
	if post.AuthorID != actorID && actorRole != models.RoleAdmin {
		return ErrNotPostOwner
	}
	return s.db.Delete(&post).Error
}
