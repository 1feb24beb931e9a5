package handlers

import (
	"errors"
	"strconv"

	"github.com/communitypulse/backend/internal/dto"
	"github.com/communitypulse/backend/internal/middleware"
	"github.com/communitypulse/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
}

func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

func (h *ModerationHandler) Queue(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	status := c.Query("status", "pending")
	sort := c.Query("sort", "created_at")

	resp, err := h.moderationService.Queue(status, sort, page, limit)
	if err != nil {
		return serverError(c, "Failed to fetch moderation queue")
	}
	return c.JSON(resp)
}

func (h *ModerationHandler) GetFlag(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("flagId"))
	if err != nil {
		return badRequest(c, "Invalid flag ID")
	}

	entry, err := h.moderationService.GetFlag(id)
	if err != nil {
		return notFound(c, "Flag not found")
	}
	return c.JSON(entry)
}

func (h *ModerationHandler) Action(c *fiber.Ctx) error {
	actorID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	flagID, err := uuid.Parse(c.Params("flagId"))
	if err != nil {
		return badRequest(c, "Invalid flag ID")
	}

	var req dto.ModerationActionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	flag, err := h.moderationService.Action(actorID, flagID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFlagNotFound):
			return notFound(c, "Flag not found")
		case errors.Is(err, services.ErrFlagProcessed):
			return conflict(c, err.Error())
		case errors.Is(err, services.ErrInvalidAction), errors.Is(err, services.ErrReasonTooLong):
			return badRequest(c, err.Error())
		case errors.Is(err, services.ErrNotAllowed):
			return forbidden(c, err.Error())
		default:
			return serverError(c, "Failed to apply moderation action")
		}
	}

	return c.JSON(fiber.Map{
		"message": "Flag " + req.Action + "d successfully",
		"flag":    flag,
	})
}

func (h *ModerationHandler) Logs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	resp, err := h.moderationService.Logs(page, limit)
	if err != nil {
		return serverError(c, "Failed to fetch moderation logs")
	}
	return c.JSON(resp)
}
