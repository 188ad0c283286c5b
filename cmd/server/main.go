package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"infrapulse-api/internal/adapters/http/middleware"
	"infrapulse-api/internal/adapters/http/routes"
	"infrapulse-api/internal/adapters/persistence/models"
	"infrapulse-api/internal/adapters/persistence/repositories"
	"infrapulse-api/internal/config"
	"infrapulse-api/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "infrapulse-api/docs" // Swagger docs
)

// @title Infrapulse API
// @version 1.0
// @description Post-construction maintenance management API for construction companies.

// @contact.name API Support
// @contact.email support@infrapulse.net

// @host api.infrapulse.net
// @BasePath /api/v1
// @schemes https

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
	defer config.CloseDatabase(db)

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed default system admin
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Outbound mail
	mailer := services.NewMailerService(cfg.SMTP)

	// Daily maintenance inspection reminders (08:30)
	reminderService := services.NewReminderService(repositories.NewMatterRepository(db), mailer)
	if err := reminderService.Start(); err != nil {
		log.Fatalf("❌ Failed to start reminder scheduler: %v", err)
	}
	defer reminderService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Infrapulse API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg, mailer)

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
