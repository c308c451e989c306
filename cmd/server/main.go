package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	"resourcehub-backend/internal/api/httpapi"
	"resourcehub-backend/internal/clock"
	"resourcehub-backend/internal/config"
	"resourcehub-backend/internal/logger"
	"resourcehub-backend/internal/repository/postgres"
	"resourcehub-backend/internal/security"
	"resourcehub-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ResourceHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Services
	sysClock := clock.System()
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	resourceSvc := service.NewResourceService(store.ResourceRepository, store.UserRepository)
	bookingSvc := service.NewBookingService(
		store.ResourceRepository,
		store.BookingRepository,
		store.WaitlistRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
		sysClock,
		cfg.Booking.DefaultRecurrenceCount,
	)
	availabilitySvc := service.NewAvailabilityService(
		store.ResourceRepository,
		store.BookingRepository,
		sysClock,
		cfg.Booking.NextSlotMaxDays,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Auth:          authSvc,
		Resources:     resourceSvc,
		Bookings:      bookingSvc,
		Availability:  availabilitySvc,
		Notifications: noteSvc,
		Tokens:        tokenManager,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
