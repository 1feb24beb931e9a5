package routes

import (
	"time"

	"github.com/communitypulse/backend/internal/config"
	"github.com/communitypulse/backend/internal/handlers"
	"github.com/communitypulse/backend/internal/middleware"
	"github.com/communitypulse/backend/internal/models"
	"github.com/communitypulse/backend/internal/realtime"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
	Post       *handlers.PostHandler
	Flag       *handlers.FlagHandler
	Moderation *handlers.ModerationHandler
	AI         *handlers.AIHandler
	User       *handlers.UserHandler
	Analytics  *handlers.AnalyticsHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, hub *realtime.Hub, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth endpoints are public but carry a stricter rate limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), h.Auth.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), h.Auth.Me)

	// Posts: public feed, protected writes
	api.Get("/posts", h.Post.List)
	api.Get("/posts/:id", h.Post.Get)
	api.Post("/posts", middleware.JWTProtected(cfg), h.Post.Create)
	api.Patch("/posts/:id", middleware.JWTProtected(cfg), h.Post.Update)
	api.Delete("/posts/:id", middleware.JWTProtected(cfg), h.Post.Delete)

	// Flags require authentication
	api.Post("/flags", middleware.JWTProtected(cfg), h.Flag.Create)
	api.Get("/flags/my-flags", middleware.JWTProtected(cfg), h.Flag.MyFlags)

	// Users
	api.Get("/users/:id", h.User.Profile)
	api.Patch("/users/:id", middleware.JWTProtected(cfg), h.User.UpdateProfile)

	// Moderation: moderators and admins only
	staff := middleware.RoleRequired(db, models.RoleModerator, models.RoleAdmin)
	moderation := api.Group("/moderation", middleware.JWTProtected(cfg), staff)
	moderation.Get("/queue", h.Moderation.Queue)
	moderation.Get("/logs", h.Moderation.Logs)
	moderation.Get("/:flagId", h.Moderation.GetFlag)
	moderation.Post("/:flagId/action", h.Moderation.Action)

	// AI tooling: moderators and admins only
	aiGroup := api.Group("/ai", middleware.JWTProtected(cfg), staff)
	aiGroup.Post("/analyze-text", h.AI.AnalyzeText)
	aiGroup.Post("/analyze-image", h.AI.AnalyzeImage)
	aiGroup.Get("/config", h.AI.Config)

	// Analytics: moderators and admins only
	analytics := api.Group("/analytics", middleware.JWTProtected(cfg), staff)
	analytics.Get("/moderation-metrics", h.Analytics.ModerationMetrics)
	analytics.Get("/community-stats", h.Analytics.CommunityStats)
	analytics.Get("/trends", h.Analytics.Trends)

	// Admin user management
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.RoleRequired(db, models.RoleAdmin))
	admin.Get("/users", h.User.List)
	admin.Patch("/users/:id/role", h.User.SetRole)

	// Realtime notifications
	app.Get("/ws", handlers.WSUpgrade(), handlers.WSHandler(cfg, db, hub))
}
