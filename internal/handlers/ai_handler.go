package handlers

import (
	"strings"

	"github.com/communitypulse/backend/internal/ai"
	"github.com/communitypulse/backend/internal/dto"
	"github.com/communitypulse/backend/internal/policy"
	"github.com/gofiber/fiber/v2"
)

type AIHandler struct {
	scorer     *ai.Scorer
	thresholds policy.Thresholds
}

func NewAIHandler(scorer *ai.Scorer, thresholds policy.Thresholds) *AIHandler {
	return &AIHandler{scorer: scorer, thresholds: thresholds}
}

// AnalyzeText runs an ad hoc text analysis for moderator tooling.
func (h *AIHandler) AnalyzeText(c *fiber.Ctx) error {
	var req dto.AnalyzeTextRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return badRequest(c, "Text is required")
	}

	analysis := h.scorer.AnalyzeText(c.Context(), req.Text, req.PostID)
	return c.JSON(h.respond(analysis))
}

// AnalyzeImage runs an ad hoc image analysis for moderator tooling.
func (h *AIHandler) AnalyzeImage(c *fiber.Ctx) error {
	var req dto.AnalyzeImageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.ImageURL == "" {
		return badRequest(c, "Image URL is required")
	}

	analysis := h.scorer.AnalyzeImage(c.Context(), req.ImageURL, req.PostID)
	return c.JSON(h.respond(analysis))
}

// Config reports the active thresholds and provider names.
func (h *AIHandler) Config(c *fiber.Ctx) error {
	textProvider := "Heuristic Fallback"
	imageProvider := "Heuristic Fallback"
	if h.scorer.Configured() {
		textProvider = "OpenAI GPT-4"
		imageProvider = "OpenAI GPT-4V"
	}

	return c.JSON(dto.AIConfigResponse{
		Thresholds: dto.AIThresholds{
			AutoRemove: h.thresholds.AutoRemove,
			FlagReview: h.thresholds.FlagReview,
		},
		Providers: dto.AIProviders{
			Text:  textProvider,
			Image: imageProvider,
		},
	})
}

func (h *AIHandler) respond(analysis *ai.Assessment) dto.AnalyzeResponse {
	return dto.AnalyzeResponse{
		Success:  true,
		Analysis: analysis,
		Recommendations: dto.Recommendation{
			ShouldAutoRemove: h.thresholds.ShouldAutoRemove(analysis.OverallRisk),
			ShouldFlag:       h.thresholds.ShouldFlag(analysis.OverallRisk),
		},
	}
}
