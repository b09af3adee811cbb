package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"toolshare-backend/internal/api"
	"toolshare-backend/internal/config"
	"toolshare-backend/internal/jobs"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/repository/postgres"
	"toolshare-backend/internal/scheduler"
	"toolshare-backend/internal/security"
	"toolshare-backend/internal/service"
	"toolshare-backend/internal/ws"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// A local .env is optional; environment wins over the YAML file either way.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ToolShare backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.Auth.Secret)

	// Event push hub
	hub := ws.NewHub()
	go hub.Run()
	events := ws.NewEventBroadcaster(hub)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.ToolRepository,
		store.ProfileRepository,
		emailSvc,
		events,
		cfg.Pricing.PlatformFeeBps,
		cfg.Pricing.ShowFeeToRenter,
		cfg.Auth.AdminUserIDs,
	)
	toolSvc := service.NewToolService(store.ToolRepository)
	availabilitySvc := service.NewAvailabilityService(store.AvailabilityRepository, store.ToolRepository)
	reviewSvc := service.NewReviewService(store.ReviewRepository, store.RentalRepository, store.ToolRepository)
	messageSvc := service.NewMessageService(store.MessageRepository, store.RentalRepository, events)
	profileSvc := service.NewProfileService(store.ProfileRepository)

	// Background jobs run in-process when enabled.
	if cfg.Scheduler.Enabled {
		jobRunner := jobs.NewJobRunner(db, store, emailSvc, cfg)
		sched := scheduler.NewScheduler(jobRunner)
		sched.Start()
		defer sched.Stop()
	}

	router := api.NewRouter(db, api.Services{
		Rentals:      rentalSvc,
		Tools:        toolSvc,
		Availability: availabilitySvc,
		Reviews:      reviewSvc,
		Messages:     messageSvc,
		Profiles:     profileSvc,
	}, tokenManager, hub, cfg.Booking)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("HTTP server listening", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
