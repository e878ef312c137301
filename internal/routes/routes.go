package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/sazonapp/sazon-backend/internal/config"
	"github.com/sazonapp/sazon-backend/internal/handlers"
	"github.com/sazonapp/sazon-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	reportHandler *handlers.ReportHandler,
	adminHandler *handlers.AdminHandler,
	recipeHandler *handlers.RecipeHandler,
	notificationHandler *handlers.NotificationHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (public)
	api.Get("/health", healthHandler.Check)

	// Auth is public with a stricter rate limit, 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Every authenticated route passes JWT extraction and then the block
	// gate, which resolves the current user and enforces the allow-list
	// for blocked accounts.
	protected := api.Group("", middleware.JWTProtected(cfg), middleware.BlockGate(db))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/me", authHandler.Me)

	// Recipes (thin surface; discovery is blocked-filtered)
	protected.Get("/recetas", recipeHandler.Feed)
	protected.Get("/recetas/:id", recipeHandler.Get)
	protected.Post("/recetas/:id/comentarios", recipeHandler.AddComment)
	protected.Post("/recetas/:id/like", recipeHandler.Like)

	// Report intake
	protected.Post("/reports/recetas/:id", reportHandler.ReportReceta)
	protected.Post("/reports/usuarios/:id", reportHandler.ReportUsuario)
	protected.Post("/reports/comentarios/:id", reportHandler.ReportComentario)

	// Notifications (allow-listed for blocked accounts)
	protected.Get("/notifications", notificationHandler.List)
	protected.Put("/notifications/:id/read", notificationHandler.MarkRead)

	// Admin back office
	admin := protected.Group("/admin", middleware.AdminRequired(cfg))
	admin.Get("/reports", adminHandler.ListReports)
	admin.Put("/reports/:id", adminHandler.ResolveReport)
	admin.Get("/logs", adminHandler.QueryLogs)
	admin.Put("/usuarios/:id/block", adminHandler.BlockUser)
	admin.Put("/usuarios/:id/unblock", adminHandler.UnblockUser)
}
