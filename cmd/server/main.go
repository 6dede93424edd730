package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"anpere-portal/internal/adapters/http/middleware"
	"anpere-portal/internal/adapters/http/routes"
	"anpere-portal/internal/adapters/persistence/models"
	"anpere-portal/internal/config"
	"anpere-portal/internal/core/services"
	"anpere-portal/internal/email"
	"anpere-portal/internal/storage"

	"github.com/gofiber/fiber/v2"

	_ "anpere-portal/docs" // Swagger docs
)

// @title ANPERE Portal API
// @version 1.0
// @description API de gestão de membros da ANPERE
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email geral@anpere.ao

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.anpere.ao
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the back-office admin account
	if err := config.NewSeeder(db, cfg).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed admin user: %v", err)
	}

	// Photo storage (local disk or S3)
	photoStore, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("❌ Failed to initialize photo storage: %v", err)
	}

	// Mail dispatch is optional. Without SMTP settings approvals are
	// still processed, just without the notice.
	var mailSender services.MailSender
	if cfg.SMTP.Enabled() {
		client, err := email.NewClient(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.User,
			cfg.SMTP.Password,
			cfg.SMTP.FromName,
			cfg.SMTP.FromEmail,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize mail client: %v", err)
		}
		mailSender = client
		log.Println("✉️ Mail dispatch enabled")
	} else {
		log.Println("⚠️ SMTP not configured, approval notices disabled")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ANPERE Portal API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg, photoStore, mailSender)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
