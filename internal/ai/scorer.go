package ai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/communitypulse/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Scorer runs risk analyses and records them as immutable audit rows.
// It never fails the caller: any classifier problem degrades to the
// deterministic heuristic.
type Scorer struct {
	db         *gorm.DB
	classifier Classifier
}

func NewScorer(db *gorm.DB, classifier Classifier) *Scorer {
	return &Scorer{db: db, classifier: classifier}
}

// Configured reports whether a real classifier backs this scorer.
func (s *Scorer) Configured() bool {
	return s.classifier.Configured()
}

// AnalyzeText assesses text content. When postID is set the assessment is
// persisted before returning.
func (s *Scorer) AnalyzeText(ctx context.Context, text string, postID *uuid.UUID) *Assessment {
	result, err := s.classifier.ClassifyText(ctx, text)
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			slog.Warn("text classification failed, using heuristic", "error", err)
		}
		result = HeuristicText(text)
	}
	if postID != nil {
		s.record(*postID, models.AnalysisText, result)
	}
	return result
}

// AnalyzeImage assesses an image by URL. When postID is set the assessment
// is persisted before returning.
func (s *Scorer) AnalyzeImage(ctx context.Context, imageURL string, postID *uuid.UUID) *Assessment {
	result, err := s.classifier.ClassifyImage(ctx, imageURL)
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			slog.Warn("image classification failed, using heuristic", "error", err)
		}
		result = HeuristicImage()
	}
	if postID != nil {
		s.record(*postID, models.AnalysisImage, result)
	}
	return result
}

func (s *Scorer) record(postID uuid.UUID, kind string, result *Assessment) {
	labels, _ := json.Marshal(result.Labels)
	scores, _ := json.Marshal(result.Scores)

	analysis := models.AIAnalysis{
		ID:          uuid.New(),
		PostID:      postID,
		Type:        kind,
		Labels:      datatypes.JSON(labels),
		Scores:      datatypes.JSON(scores),
		OverallRisk: result.OverallRisk,
		RawResponse: datatypes.JSON(result.Raw),
	}
	if err := s.db.Create(&analysis).Error; err != nil {
		slog.Error("failed to persist risk assessment", "post_id", postID, "type", kind, "error", err)
	}
}
