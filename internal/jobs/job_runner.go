package jobs

import (
	"voltmarket-backend/internal/config"
	"voltmarket-backend/internal/logger"
	"voltmarket-backend/internal/repository"
	"voltmarket-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	bookingRepo repository.BookingRepository
	bookingSvc  service.BookingService
	timers      service.ChargeTimerRegistry
	config      *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(bookingRepo repository.BookingRepository, bookingSvc service.BookingService, timers service.ChargeTimerRegistry, cfg *config.Config) *JobRunner {
	return &JobRunner{
		bookingRepo: bookingRepo,
		bookingSvc:  bookingSvc,
		timers:      timers,
		config:      cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
