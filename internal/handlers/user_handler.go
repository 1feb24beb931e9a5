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

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Profile(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	profile, err := h.userService.Profile(id)
	if err != nil {
		return notFound(c, "User not found")
	}
	return c.JSON(profile)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	actorID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateProfile(id, actorID, middleware.CurrentRole(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return notFound(c, "User not found")
		case errors.Is(err, services.ErrNotProfileOwner):
			return forbidden(c, err.Error())
		case errors.Is(err, services.ErrEmailTaken):
			return conflict(c, err.Error())
		default:
			return badRequest(c, err.Error())
		}
	}
	return c.JSON(dto.NewPublicUser(user))
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	search := c.Query("search", "")
	role := c.Query("role", "")

	users, total, err := h.userService.List(search, role, page, limit)
	if err != nil {
		return serverError(c, "Failed to fetch users")
	}

	projected := make([]dto.PublicUser, len(users))
	for i := range users {
		projected[i] = dto.NewPublicUser(&users[i])
	}

	return c.JSON(fiber.Map{
		"users": projected,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *UserHandler) SetRole(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userService.SetRole(id, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return notFound(c, "User not found")
		case errors.Is(err, services.ErrInvalidRole):
			return badRequest(c, err.Error())
		default:
			return serverError(c, "Failed to update role")
		}
	}

	return c.JSON(fiber.Map{
		"message": "User role updated successfully",
		"user":    dto.NewPublicUser(user),
	})
}
