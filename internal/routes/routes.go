package routes

import (
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/ratelimit"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth   *handlers.AuthHandler
	Health *handlers.HealthHandler
	Idea   *handlers.IdeaHandler
	Social *handlers.SocialHandler
	Admin  *handlers.AdminHandler
}

// Setup mounts every route under /api. limitCounter may be nil for
// in-process counters.
func Setup(
	app *fiber.App,
	cfg *config.Config,
	h Handlers,
	authService *services.AuthService,
	limitCounter *ratelimit.RedisCounter,
) {
	api := app.Group("/api")

	// General budget on every API route
	api.Use(ratelimit.New(ratelimit.GeneralTier(cfg), limitCounter))

	// AI budget only on routes that call the analysis service. It runs
	// before authentication so rejected calls never reach the users table.
	aiLimit := ratelimit.New(ratelimit.AITier(cfg), limitCounter)

	// Protected routes get middleware individually so public routes under
	// the same prefix stay public.
	jwt := middleware.JWTProtected([]byte(cfg.JWTSecret))
	identity := middleware.IdentityResolver(authService)

	api.Get("/health", h.Health.Check)

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Get("/verify", jwt, identity, h.Auth.Verify)

	// Ideas
	api.Get("/ideas/public", h.Idea.ListPublic)
	api.Get("/ideas", jwt, identity, h.Idea.ListFeed)
	api.Post("/ideas", aiLimit, jwt, identity, h.Idea.Create)
	api.Put("/ideas/:id", jwt, identity, h.Idea.Update)
	api.Post("/ideas/:id/analyze", aiLimit, jwt, identity, h.Idea.Analyze)
	api.Post("/ideas/:id/assistant", aiLimit, jwt, identity, h.Idea.Ask)

	// Social
	api.Post("/ideas/:id/like", jwt, identity, h.Social.ToggleLike)
	api.Post("/ideas/:id/collaborate", jwt, identity, h.Social.Collaborate)
	api.Put("/collaborations/:id", jwt, identity, h.Social.UpdateCollaboration)

	// Admin (role read from the users row)
	admin := api.Group("/admin", jwt, identity, middleware.AdminRequired())
	admin.Get("/analytics", h.Admin.Analytics)
}
