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

type PostHandler struct {
	postService *services.PostService
}

func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := c.Query("search", "")

	var authorID *uuid.UUID
	if author := c.Query("author", ""); author != "" {
		id, err := uuid.Parse(author)
		if err != nil {
			return badRequest(c, "Invalid author ID")
		}
		authorID = &id
	}

	resp, err := h.postService.List(page, limit, search, authorID)
	if err != nil {
		return serverError(c, "Failed to fetch posts")
	}
	return c.JSON(resp)
}

func (h *PostHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post ID")
	}

	// Staff viewers get the latest risk assessment inline; the role claim
	// is only present when a token was supplied.
	resp, err := h.postService.Get(id, middleware.CurrentRole(c))
	if err != nil {
		return notFound(c, "Post not found")
	}
	return c.JSON(resp)
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	post, err := h.postService.Create(c.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidContent) {
			return badRequest(c, err.Error())
		}
		return serverError(c, "Failed to create post")
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post ID")
	}

	var req dto.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	post, err := h.postService.Update(c.Context(), id, userID, middleware.CurrentRole(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			return notFound(c, "Post not found")
		case errors.Is(err, services.ErrNotPostOwner):
			return forbidden(c, err.Error())
		case errors.Is(err, services.ErrInvalidContent):
			return badRequest(c, err.Error())
		default:
			return serverError(c, "Failed to update post")
		}
	}
	return c.JSON(post)
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid post ID")
	}

	if err := h.postService.Delete(id, userID, middleware.CurrentRole(c)); err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			return notFound(c, "Post not found")
		case errors.Is(err, services.ErrNotPostOwner):
			return forbidden(c, err.Error())
		default:
			return serverError(c, "Failed to delete post")
		}
	}
	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}
