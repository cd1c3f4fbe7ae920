package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"equiprent-backend/internal/config"
	"equiprent-backend/internal/jobs"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/pkg/database"
	"equiprent-backend/internal/repository/postgres"
	"equiprent-backend/internal/scheduler"
	"equiprent-backend/internal/service"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'mark-overdue-rentals', 'all-nightly')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EquipRent cronjob runner...", "log_level", cfg.Log.Level)

	db, err := database.NewPostgresDB(cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	emailService := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	ledgerService := service.NewLedgerService(store.EquipmentRepository, store.AdjustmentRepository)
	rentalService := service.NewRentalService(
		store.RentalRepository,
		store.EquipmentRepository,
		store.ClientRepository,
		ledgerService,
		nil,
	)

	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{
		Email:  emailService,
		Rental: rentalService,
		Ledger: ledgerService,
	}, cfg)

	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "mark-overdue-rentals":
		jobRunner.MarkOverdueRentals()
	case "send-overdue-reminders":
		jobRunner.SendOverdueReminders()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - mark-overdue-rentals\n")
		fmt.Printf("  - send-overdue-reminders\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}
