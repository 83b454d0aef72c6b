package routes

import (
	"loopfreight/internal/adapters/http/handlers"
	"loopfreight/internal/adapters/http/middleware"
	"loopfreight/internal/adapters/persistence/repositories"
	"loopfreight/internal/config"
	"loopfreight/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	assignmentRepo := repositories.NewAssignmentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg.JWT)
	userService := services.NewUserService(userRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)

	// Public routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 routes
	apiV1 := app.Group("/api/v1")

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)
	authRoutes.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Assignment routes (authenticated)
	assignmentRoutes := apiV1.Group("/assignments", middleware.AuthMiddleware(cfg))
	assignmentRoutes.Post("/", middleware.OfficerOrAdmin(), assignmentHandler.Create)
	assignmentRoutes.Get("/", assignmentHandler.List)
	// Registered before /:id so "incoming" is not captured as an id
	assignmentRoutes.Get("/incoming", middleware.OfficerOnly(), assignmentHandler.ListIncoming)
	assignmentRoutes.Get("/:id", assignmentHandler.GetByID)
	assignmentRoutes.Put("/:id/reassign", middleware.OfficerOnly(), assignmentHandler.Reassign)
	// Completion authorization depends on the record, so it is checked in the service
	assignmentRoutes.Put("/:id/complete", assignmentHandler.Complete)
	assignmentRoutes.Put("/:id", middleware.AdminOnly(), assignmentHandler.Update)
	assignmentRoutes.Delete("/:id", middleware.AdminOnly(), assignmentHandler.Delete)

	// Admin user management routes
	adminUserRoutes := apiV1.Group("/admin/users", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	adminUserRoutes.Get("/", userHandler.List)
	adminUserRoutes.Post("/", userHandler.Create)
	adminUserRoutes.Get("/:id", userHandler.GetByID)
	adminUserRoutes.Put("/:id", userHandler.Update)
	adminUserRoutes.Delete("/:id", userHandler.Delete)
}
