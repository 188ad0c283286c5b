package routes

import (
	"time"

	"infrapulse-api/internal/adapters/http/handlers"
	"infrapulse-api/internal/adapters/http/middleware"
	"infrapulse-api/internal/adapters/persistence/repositories"
	"infrapulse-api/internal/config"
	"infrapulse-api/internal/core/services"
	"infrapulse-api/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, mailer services.Mailer) {
	// Initialize repositories
	staffRepo := repositories.NewStaffRepository(db)
	matterRepo := repositories.NewMatterRepository(db)
	homeownerRepo := repositories.NewHomeownerRepository(db)

	// Single token service instance holds the signing secret
	tokenSvc := token.NewService(
		cfg.JWT.Secret,
		"infrapulse",
		time.Duration(cfg.JWT.SessionTTLMins)*time.Minute,
		time.Duration(cfg.JWT.VerificationTTLMins)*time.Minute,
	)

	// Initialize services
	authService := services.NewAuthService(staffRepo, tokenSvc)
	credentialService := services.NewCredentialService(staffRepo, tokenSvc, mailer, cfg.BaseURL)
	staffService := services.NewStaffService(staffRepo)
	matterService := services.NewMatterService(matterRepo)
	dashboardService := services.NewDashboardService(staffRepo, matterRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg.AppMode)
	authHandler := handlers.NewAuthHandler(authService, tokenSvc, cfg)
	staffHandler := handlers.NewStaffHandler(staffService, credentialService, staffRepo)
	matterHandler := handlers.NewMatterHandler(matterService, staffRepo)
	notificationHandler := handlers.NewNotificationHandler(matterService)
	homeownerHandler := handlers.NewHomeownerHandler(homeownerRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, staffRepo)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	api := app.Group("/api/v1")

	// Public auth routes
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/verify-token", authHandler.VerifyToken)

	// Public email verification (link target; no session required)
	api.Get("/verify-email", staffHandler.VerifyEmail)

	// Protected routes
	protected := api.Use(middleware.Protected(tokenSvc))

	// Staff administration
	protected.Get("/company-admin", middleware.AdminOnly(), staffHandler.ListStaff)
	protected.Post("/company-admin", middleware.AdminOnly(), staffHandler.EditStaff)
	protected.Post("/company-admin/staff", middleware.CompanyAdminOnly(), staffHandler.CreateStaff)
	protected.Delete("/company-admin/staff/:id", middleware.AdminOnly(), staffHandler.DeleteStaff)
	protected.Post("/system-admin", middleware.SystemAdminOnly(), staffHandler.CreateCompanyAdmin)

	// Constructions
	protected.Post("/constructions", matterHandler.Register)
	protected.Get("/constructions", matterHandler.List)
	protected.Get("/constructions/:matterNo", matterHandler.Get)
	protected.Put("/constructions/:matterNo", matterHandler.Update)

	// Maintenance inspection schedule & preferences
	protected.Get("/maintenance", matterHandler.Upcoming)
	protected.Get("/notifications", notificationHandler.GetFlags)
	protected.Post("/notifications", notificationHandler.UpdateFlags)

	// Homeowners
	protected.Post("/homeowners", homeownerHandler.Register)
	protected.Get("/homeowners", homeownerHandler.List)

	// Dashboard
	protected.Get("/dashboard", dashboardHandler.Summary)
}
