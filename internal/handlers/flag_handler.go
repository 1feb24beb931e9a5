package handlers

import (
	"errors"

	"github.com/communitypulse/backend/internal/dto"
	"github.com/communitypulse/backend/internal/middleware"
	"github.com/communitypulse/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type FlagHandler struct {
	flagService *services.FlagService
}

func NewFlagHandler(flagService *services.FlagService) *FlagHandler {
	return &FlagHandler{flagService: flagService}
}

func (h *FlagHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateFlagRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	flag, err := h.flagService.Create(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			return notFound(c, "Post not found")
		case errors.Is(err, services.ErrDuplicateFlag):
			return conflict(c, err.Error())
		case errors.Is(err, services.ErrInvalidCategory), errors.Is(err, services.ErrReasonTooLong):
			return badRequest(c, err.Error())
		default:
			return serverError(c, "Failed to create flag")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post flagged successfully",
		"flag":    flag,
	})
}

func (h *FlagHandler) MyFlags(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	flags, err := h.flagService.MyFlags(userID)
	if err != nil {
		return serverError(c, "Failed to fetch flags")
	}
	return c.JSON(flags)
}
