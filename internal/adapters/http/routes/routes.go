package routes

import (
	"projectgate/internal/adapters/http/handlers"
	"projectgate/internal/adapters/http/middleware"
	"projectgate/internal/adapters/persistence/repositories"
	"projectgate/internal/config"
	"projectgate/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	requestRepo := repositories.NewAccessRequestRepository(db)
	userRepo := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)

	// Collaborator adapters
	directory := services.NewDirectoryService(userRepo)
	catalog := services.NewCatalogService(projectRepo)
	authorizer := services.NewDirectoryAuthorizer(directory)

	// Core services
	requestService := services.NewAccessRequestService(requestRepo, catalog)
	reviewService := services.NewReviewService(requestRepo, authorizer)
	entitlementService := services.NewEntitlementService(requestRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	requestHandler := handlers.NewAccessRequestHandler(requestService, reviewService)
	projectHandler := handlers.NewProjectHandler(catalog, entitlementService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	setupProjectRoutes(apiV1.Group("/projects"), projectHandler, cfg)
	setupAccessRequestRoutes(apiV1.Group("/access-requests"), requestHandler, cfg)
}

// setupProjectRoutes configures project routes. Listing is public; the
// per-project view resolves gated fields when a token is present; the access
// lookup requires authentication.
func setupProjectRoutes(router fiber.Router, handler *handlers.ProjectHandler, cfg *config.Config) {
	router.Get("/", middleware.CatalogCache(), handler.List)
	router.Get("/:id", middleware.OptionalAuth(cfg), middleware.NoCacheHeaders(), handler.Get)
	router.Get("/:id/access", middleware.AuthMiddleware(cfg), middleware.NoCacheHeaders(), handler.GetAccess)
}

// setupAccessRequestRoutes configures access request routes
func setupAccessRequestRoutes(router fiber.Router, handler *handlers.AccessRequestHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))

	// Authenticated users
	router.Post("/", middleware.SubmitRateLimiter(), handler.Create)
	router.Get("/my", handler.GetMy)

	// Admin only. "/my" is registered before ":id" on purpose.
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AdminOnly())

	adminRoutes.Get("/", handler.List)
	adminRoutes.Get("/:id", handler.GetByID)
	adminRoutes.Put("/:id", handler.Review)
}
