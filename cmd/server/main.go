package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	httpapi "voltmarket-backend/internal/api/http"
	"voltmarket-backend/internal/cache"
	"voltmarket-backend/internal/config"
	"voltmarket-backend/internal/jobs"
	"voltmarket-backend/internal/logger"
	"voltmarket-backend/internal/repository/docstore"
	"voltmarket-backend/internal/scheduler"
	"voltmarket-backend/internal/security"
	"voltmarket-backend/internal/service"
	"voltmarket-backend/internal/store"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting VoltMarket Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Firestore configuration", "project_id", cfg.Firebase.ProjectID)

	ctx := context.Background()

	// Document store
	docStore, err := store.NewFirestoreStore(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		logger.Error("Failed to initialize firestore", "error", err)
		log.Fatalf("Failed to initialize firestore: %v", err)
	}
	defer docStore.Close()
	logger.Info("Firestore connection established")

	repos := docstore.NewRepositories(docStore)

	// Active-session cache
	var sessions *cache.ActiveSessionStore
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error("Failed to ping redis", "error", err)
			log.Fatalf("Failed to ping redis: %v", err)
		}
		sessions = cache.NewActiveSessionStore(redisClient, time.Duration(cfg.Redis.SessionTTLMinutes)*time.Minute)
		logger.Info("Redis connection established", "addr", cfg.Redis.Addr)
	} else {
		logger.Warn("Redis not configured; active-session cache disabled")
	}

	// Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Services
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	chargeTimer := scheduler.NewChargeTimer(sessions, time.Second)
	bookingSvc := service.NewBookingService(
		repos.Bookings,
		repos.Accounts,
		repos.Stations,
		repos.Users,
		emailSvc,
		chargeTimer,
	)
	chargeTimer.SetCompleter(bookingSvc)

	ratingSvc := service.NewRatingService(repos.Bookings, repos.Stations)
	accountSvc := service.NewAccountService(repos.Accounts)
	stationSvc := service.NewStationService(repos.Stations, repos.Companies)
	adminSvc := service.NewAdminService(repos.Stations, repos.Companies, emailSvc)
	authSvc := service.NewAuthService(repos.Users, repos.Accounts, repos.Companies, tokenManager)

	// Resume countdowns for sessions that were charging before the restart,
	// then keep the safety sweep running.
	jobRunner := jobs.NewJobRunner(repos.Bookings, bookingSvc, chargeTimer, cfg)
	jobRunner.ResumeChargeTimers()

	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// HTTP API
	router := httpapi.NewRouter(
		tokenManager,
		httpapi.NewAuthHandler(authSvc),
		httpapi.NewBookingHandler(bookingSvc, ratingSvc, sessions),
		httpapi.NewStationHandler(stationSvc, bookingSvc),
		httpapi.NewAccountHandler(accountSvc),
		httpapi.NewAdminHandler(adminSvc),
	)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
