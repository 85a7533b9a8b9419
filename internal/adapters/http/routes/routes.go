package routes

import (
	"technotes-api/internal/adapters/http/handlers"
	"technotes-api/internal/adapters/http/middleware"
	"technotes-api/internal/adapters/persistence/repositories"
	"technotes-api/internal/config"
	"technotes-api/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	noteRepo := repositories.NewNoteRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	noteService := services.NewNoteService(noteRepo, userRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService, cfg)
	noteHandler := handlers.NewNoteHandler(noteService, cfg)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	apiV1 := app.Group("/api/v1")

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// User routes: reads for any authenticated role, writes for
	// Manager/Admin. Authentication always runs before the role gate.
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	setupUserRoutes(userRoutes, userHandler)

	// Note routes: any authenticated role
	noteRoutes := apiV1.Group("/notes")
	noteRoutes.Use(middleware.AuthMiddleware(cfg))
	setupNoteRoutes(noteRoutes, noteHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	router.Post("/", middleware.AuthRateLimiter(), handler.Login)
	router.Get("/refresh", handler.Refresh)
	router.Post("/logout", handler.Logout)

	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
}

// setupUserRoutes configures user management routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.GetUsers)

	writes := router.Group("")
	writes.Use(middleware.ManagerOrAdmin())
	writes.Post("/", handler.CreateUser)
	writes.Patch("/", handler.UpdateUser)
	writes.Delete("/", handler.DeleteUser)
}

// setupNoteRoutes configures note routes
func setupNoteRoutes(router fiber.Router, handler *handlers.NoteHandler) {
	router.Get("/", handler.GetNotes)
	router.Post("/", handler.CreateNote)
	router.Patch("/", handler.UpdateNote)
	router.Delete("/", handler.DeleteNote)
}
