package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voltmarket-backend/internal/config"
	"voltmarket-backend/internal/jobs"
	"voltmarket-backend/internal/logger"
	"voltmarket-backend/internal/repository/docstore"
	"voltmarket-backend/internal/scheduler"
	"voltmarket-backend/internal/service"
	"voltmarket-backend/internal/store"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g. 'complete-elapsed-sessions')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting VoltMarket Cronjob Runner...", "log_level", cfg.Log.Level)

	ctx := context.Background()

	docStore, err := store.NewFirestoreStore(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		logger.Error("Failed to initialize firestore", "error", err)
		log.Fatalf("Failed to initialize firestore: %v", err)
	}
	defer docStore.Close()
	logger.Info("Firestore connection established")

	repos := docstore.NewRepositories(docStore)

	// The standalone runner keeps no per-booking timers; elapsed sessions
	// are handled entirely by the sweep, so the timer stays unwired and the
	// booking service completes sessions directly.
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	chargeTimer := scheduler.NewChargeTimer(nil, time.Second)
	bookingSvc := service.NewBookingService(
		repos.Bookings,
		repos.Accounts,
		repos.Stations,
		repos.Users,
		emailSvc,
		chargeTimer,
	)
	chargeTimer.SetCompleter(bookingSvc)

	jobRunner := jobs.NewJobRunner(repos.Bookings, bookingSvc, chargeTimer, cfg)

	if *runOnce != "" {
		switch *runOnce {
		case "complete-elapsed-sessions":
			jobRunner.CompleteElapsedSessions()
		default:
			log.Fatalf("Unknown job: %s", *runOnce)
		}
		return
	}

	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cronScheduler.Stop()
	logger.Info("Cronjob runner stopped")
}
