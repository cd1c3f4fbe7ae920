package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpapi "equiprent-backend/internal/api/http"
	"equiprent-backend/internal/config"
	"equiprent-backend/internal/jobs"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/pkg/cache"
	"equiprent-backend/internal/pkg/database"
	"equiprent-backend/internal/repository/postgres"
	"equiprent-backend/internal/scheduler"
	"equiprent-backend/internal/security"
	"equiprent-backend/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	withScheduler := flag.Bool("scheduler", true, "Run the cron scheduler inside the server process")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EquipRent backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := database.NewPostgresDB(cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	// Identity provider
	var verifier httpapi.TokenVerifier
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	switch cfg.Auth.Provider {
	case "firebase":
		fv, err := security.NewFirebaseVerifier(context.Background(), cfg.Auth.FirebaseCredentials)
		if err != nil {
			logger.Error("Failed to initialize firebase verifier", "error", err)
			log.Fatalf("Failed to initialize firebase verifier: %v", err)
		}
		verifier = fv
		logger.Info("Using Firebase identity provider")
	default:
		verifier = httpapi.LocalVerifier{Tokens: tokenManager}
		logger.Info("Using local JWT identity provider")
	}

	// Optional Redis-backed rate limiting
	var cacheClient cache.Client
	if cfg.Redis.Addr != "" {
		cacheClient, err = cache.NewRedisClient(cfg.Redis.Addr)
		if err != nil {
			logger.Error("Failed to connect to redis", "error", err)
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		logger.Info("Rate limiting enabled", "addr", cfg.Redis.Addr, "limit", cfg.Redis.RateLimit)
	}

	// Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	ledgerSvc := service.NewLedgerService(store.EquipmentRepository, store.AdjustmentRepository)
	var receiptMailer service.EmailService
	if cfg.Email.SendReceipts {
		receiptMailer = emailSvc
	}
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.EquipmentRepository,
		store.ClientRepository,
		ledgerSvc,
		receiptMailer,
	)
	clientSvc := service.NewClientService(store.ClientRepository)
	equipSvc := service.NewEquipmentService(store.EquipmentRepository, store.RentalRepository)
	reportSvc := service.NewReportService(store.RentalRepository, store.EquipmentRepository)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Verifier:   verifier,
		AuthSvc:    authSvc,
		ClientSvc:  clientSvc,
		EquipSvc:   equipSvc,
		RentalSvc:  rentalSvc,
		LedgerSvc:  ledgerSvc,
		ReportSvc:  reportSvc,
		Cache:      cacheClient,
		RateLimit:  cfg.Redis.RateLimit,
		RateWindow: time.Duration(cfg.Redis.RateWindowSeconds) * time.Second,
	})

	// In-process scheduler for single-node deployments; cmd/cronjob covers
	// the split deployment.
	if *withScheduler {
		jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{
			Email:  emailSvc,
			Rental: rentalSvc,
			Ledger: ledgerSvc,
		}, cfg)
		cronScheduler := scheduler.NewScheduler(jobRunner)
		cronScheduler.Start()
		defer cronScheduler.Stop()
	}

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
