package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"toolshare-backend/internal/config"
	"toolshare-backend/internal/jobs"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/repository/postgres"
	"toolshare-backend/internal/scheduler"
	"toolshare-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a single job and exit (expire-pending, return-reminders, refresh-stats, all)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ToolShare job runner...")

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	jobRunner := jobs.NewJobRunner(db, store, emailSvc, cfg)

	if *runOnce != "" {
		runSingleJob(jobRunner, *runOnce)
		return
	}

	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	logger.Info("Scheduler started, waiting for shutdown signal")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down scheduler...")
	sched.Stop()
}

func runSingleJob(jobRunner *jobs.JobRunner, name string) {
	switch name {
	case "expire-pending":
		jobRunner.ExpireStalePendingRequests()
	case "return-reminders":
		jobRunner.SendReturnReminders()
	case "refresh-stats":
		jobRunner.RefreshItemStats()
	case "all":
		jobRunner.RunAll()
	default:
		log.Fatalf("Unknown job %q (expected expire-pending, return-reminders, refresh-stats, or all)", name)
	}
}
