package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"homywork-server/internal/config"
	"homywork-server/internal/jobs"
	"homywork-server/internal/logger"
	"homywork-server/internal/payments"
	"homywork-server/internal/repository/postgres"
	"homywork-server/internal/scheduler"
	"homywork-server/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'process-payouts', 'sync-calendars', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting HomyWork Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Services
	stripeProvider := payments.NewStripeProvider(cfg.Stripe.SecretKey)
	emailService := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.From,
		cfg.Email.FromName,
		cfg.Email.Enabled,
	)
	payoutService := service.NewPayoutService(
		store.BookingRepository,
		store.PropertyRepository,
		store.UserRepository,
		stripeProvider,
		emailService,
		cfg.Stripe.Currency,
	)
	syncService := service.NewCalendarSyncService(
		store.CalendarSyncRepository,
		store.AvailabilityRepository,
		store.PropertyRepository,
		nil,
	)

	jobServices := &jobs.Services{
		Payout:       payoutService,
		CalendarSync: syncService,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "process-payouts":
		jobRunner.ProcessPayouts()
	case "sync-calendars":
		jobRunner.SyncCalendars()
	case "all":
		jobRunner.RunAllJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
	}
}
