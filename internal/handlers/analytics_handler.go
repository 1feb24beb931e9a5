package handlers

import (
	"strconv"

	"github.com/communitypulse/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) ModerationMetrics(c *fiber.Ctx) error {
	metrics, err := h.analyticsService.ModerationMetrics()
	if err != nil {
		return serverError(c, "Failed to compute moderation metrics")
	}
	return c.JSON(metrics)
}

func (h *AnalyticsHandler) CommunityStats(c *fiber.Ctx) error {
	stats, err := h.analyticsService.CommunityStats()
	if err != nil {
		return serverError(c, "Failed to compute community stats")
	}
	return c.JSON(stats)
}

func (h *AnalyticsHandler) Trends(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "30"))

	trends, err := h.analyticsService.Trends(days)
	if err != nil {
		return serverError(c, "Failed to compute trends")
	}
	return c.JSON(trends)
}
