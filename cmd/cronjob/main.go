package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"recruiting-portal-backend/internal/config"
	"recruiting-portal-backend/internal/jobs"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/repository/postgres"
	"recruiting-portal-backend/internal/scheduler"
	"recruiting-portal-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'send-draft-reminders', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Recruiting Cronjob Runner...", "log_level", cfg.Log.Level)

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

	store := postgres.NewStore(db)

	// Reminders go through the same dispatcher as request-triggered events
	emailQueue := service.NewEmailQueue(newEmailSender(cfg), service.QueueOptions{
		Workers:    cfg.Notifications.Workers,
		Size:       cfg.Notifications.QueueSize,
		MaxRetries: cfg.Notifications.MaxRetries,
		Backoff:    time.Second,
	})
	defer drain(emailQueue)
	notifier := service.NewDispatcher(store.NotificationRepository, emailQueue, cfg.Email.BaseURL)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, notifier, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if !runJobOnce(jobRunner, *runOnce) {
			drain(emailQueue)
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		logger.Error("Failed to create scheduler", "error", err)
		log.Fatalf("Failed to create scheduler: %v", err)
	}

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

// runJobOnce runs a specific job once. It reports false for an unknown name.
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) bool {
	switch jobName {
	case "send-draft-reminders":
		jobRunner.SendDraftReminders()
	case "send-review-deadline-reminders":
		jobRunner.SendReviewDeadlineReminders()
	case "all":
		jobRunner.RunAllReminderJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - send-draft-reminders\n")
		fmt.Printf("  - send-review-deadline-reminders\n")
		fmt.Printf("  - all\n")
		return false
	}
	return true
}

// drain waits for queued reminder emails before the process exits
func drain(q *service.EmailQueue) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := q.Close(ctx); err != nil {
		logger.Warn("Email queue did not drain", "error", err)
	}
}

func newEmailSender(cfg *config.Config) service.EmailSender {
	switch cfg.Email.Provider {
	case "sendgrid":
		return service.NewSendGridSender(cfg.Email.SendGridAPIKey, cfg.Email.FromAddress, cfg.Email.FromName)
	case "disabled":
		return service.NewDisabledSender()
	default:
		return service.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.ReplyTo)
	}
}
