package routes

import (
	"anpere-portal/internal/adapters/http/handlers"
	"anpere-portal/internal/adapters/http/middleware"
	"anpere-portal/internal/adapters/persistence/repositories"
	"anpere-portal/internal/config"
	"anpere-portal/internal/core/services"
	"anpere-portal/internal/storage"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, photoStore storage.PhotoStore, mailSender services.MailSender) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	contactRepo := repositories.NewContactRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	notifyService := services.NewNotificationService(notificationRepo)
	mailService := services.NewMailService(mailSender, cfg.Org.Name)
	memberService := services.NewMemberService(memberRepo, notifyService, mailService, photoStore)
	documentService := services.NewDocumentService(memberRepo, cfg.Org)
	contactService := services.NewContactService(contactRepo, notifyService)
	dashboardService := services.NewDashboardService(memberRepo, notificationRepo, contactRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	registrationHandler := handlers.NewRegistrationHandler(memberService)
	memberHandler := handlers.NewMemberHandler(memberService, documentService)
	notificationHandler := handlers.NewNotificationHandler(notifyService)
	contactHandler := handlers.NewContactHandler(contactService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded photos are served straight from disk when the local
	// store is in use. S3 objects carry their own public URLs.
	if cfg.Storage.Driver == "local" {
		app.Static("/uploads", cfg.Storage.LocalDir)
	}

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, registrationHandler,
		memberHandler, notificationHandler, contactHandler, dashboardHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	registrationHandler *handlers.RegistrationHandler,
	memberHandler *handlers.MemberHandler,
	notificationHandler *handlers.NotificationHandler,
	contactHandler *handlers.ContactHandler,
	dashboardHandler *handlers.DashboardHandler,
	cfg *config.Config,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Public intake routes (rate limited)
	router.Post("/registration", middleware.IntakeRateLimiter(), registrationHandler.Register)
	router.Post("/contact", middleware.IntakeRateLimiter(), contactHandler.Submit)

	// Member console routes (Admin only)
	memberRoutes := router.Group("/members")
	memberRoutes.Use(middleware.AuthMiddleware(cfg))
	memberRoutes.Use(middleware.AdminOnly())
	setupMemberRoutes(memberRoutes, memberHandler)

	// Notification routes (Admin only)
	notificationRoutes := router.Group("/notifications")
	notificationRoutes.Use(middleware.AuthMiddleware(cfg))
	notificationRoutes.Use(middleware.AdminOnly())
	setupNotificationRoutes(notificationRoutes, notificationHandler)

	// Contact message routes (Admin only)
	contactRoutes := router.Group("/contacts")
	contactRoutes.Use(middleware.AuthMiddleware(cfg))
	contactRoutes.Use(middleware.AdminOnly())
	setupContactRoutes(contactRoutes, contactHandler)

	// Dashboard routes (Admin only)
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Use(middleware.AdminOnly())
	dashboardRoutes.Use(middleware.NoCacheHeaders())
	dashboardRoutes.Get("/stats", dashboardHandler.Stats)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate limited against brute force)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupMemberRoutes configures the member console routes
func setupMemberRoutes(router fiber.Router, handler *handlers.MemberHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/document", handler.DocumentList)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)

	// Status workflow
	router.Post("/:id/approve", handler.Approve)
	router.Post("/:id/reject", handler.Reject)
	router.Post("/:id/deactivate", handler.Deactivate)
	router.Post("/:id/reactivate", handler.Reactivate)

	// Documents
	router.Get("/:id/document", handler.Document)
}

// setupNotificationRoutes configures notification routes
func setupNotificationRoutes(router fiber.Router, handler *handlers.NotificationHandler) {
	router.Get("/", handler.List)
	router.Get("/unread-count", handler.UnreadCount)
	router.Patch("/read-all", handler.MarkAllRead)
	router.Patch("/:id/read", handler.MarkRead)
	router.Delete("/:id", handler.Delete)
}

// setupContactRoutes configures contact message routes
func setupContactRoutes(router fiber.Router, handler *handlers.ContactHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Delete("/:id", handler.Delete)
}
