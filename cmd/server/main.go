package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "homywork-server/internal/api/http"
	"homywork-server/internal/config"
	"homywork-server/internal/logger"
	"homywork-server/internal/payments"
	"homywork-server/internal/repository/postgres"
	"homywork-server/internal/security"
	"homywork-server/internal/service"
	"homywork-server/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	migrationsPath := flag.String("migrations", "", "Apply SQL migrations from this directory before serving")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting HomyWork API server...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "base_url", cfg.Server.BaseURL)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Apply migrations if requested
	if *migrationsPath != "" {
		logger.Info("Applying database migrations...", "path", *migrationsPath)
		if err := postgres.RunMigrations(cfg.GetDatabaseConnectionString(), *migrationsPath); err != nil {
			logger.Error("Failed to apply migrations", "error", err)
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		logger.Info("Database migrations applied")
	}

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
	tokenManager := security.NewTokenManager(cfg.Session.Secret, time.Duration(cfg.Session.TTLHours)*time.Hour)

	// Initialize Payments Provider
	stripeProvider := payments.NewStripeProvider(cfg.Stripe.SecretKey)

	// Initialize Storage Service
	var storageService storage.StorageInterface
	var mockStorage *storage.MockStorageService
	if cfg.Storage.Type == "" || cfg.Storage.Type == "mock" {
		logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
		mockStorage, err = storage.NewMockStorageService(cfg.Server.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize mock storage", "error", err)
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
		storageService = mockStorage
	} else {
		logger.Error("Unsupported storage type", "type", cfg.Storage.Type)
		log.Fatalf("Storage type '%s' not yet implemented", cfg.Storage.Type)
	}

	// Initialize Services
	emailSvc := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.From,
		cfg.Email.FromName,
		cfg.Email.Enabled,
	)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager, cfg.Platform.AdminEmails)
	userSvc := service.NewUserService(store.UserRepository, stripeProvider)
	propertySvc := service.NewPropertyService(store.PropertyRepository, store.UserRepository, store.ReviewRepository)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.PropertyRepository,
		store.UserRepository,
		stripeProvider,
		emailSvc,
		cfg.Platform.FeePercent,
		cfg.Stripe.Currency,
	)
	payoutSvc := service.NewPayoutService(
		store.BookingRepository,
		store.PropertyRepository,
		store.UserRepository,
		stripeProvider,
		emailSvc,
		cfg.Stripe.Currency,
	)
	availabilitySvc := service.NewAvailabilityService(store.AvailabilityRepository, store.PropertyRepository)
	syncSvc := service.NewCalendarSyncService(
		store.CalendarSyncRepository,
		store.AvailabilityRepository,
		store.PropertyRepository,
		nil,
	)
	reviewSvc := service.NewReviewService(store.ReviewRepository, store.BookingRepository)
	adminSvc := service.NewAdminService(store.UserRepository, store.PropertyRepository)
	imageSvc := service.NewImageStorageService(storageService)

	// Build route table
	router := httpapi.NewRouter(cfg, &httpapi.Services{
		Auth:         authSvc,
		User:         userSvc,
		Property:     propertySvc,
		Booking:      bookingSvc,
		Payout:       payoutSvc,
		Availability: availabilitySvc,
		CalendarSync: syncSvc,
		Review:       reviewSvc,
		Admin:        adminSvc,
		ImageStorage: imageSvc,
	}, mockStorage)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
