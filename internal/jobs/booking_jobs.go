package jobs

import (
	"context"
	"time"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/logger"
)

// ResumeChargeTimers re-registers countdowns for every CHARGING booking.
// Run once at process start: the per-booking timers live in memory and do
// not survive a restart, but the charging start timestamps do.
func (jr *JobRunner) ResumeChargeTimers() {
	jr.runWithRecovery("ResumeChargeTimers", func() {
		ctx := context.Background()
		bookings, err := jr.bookingRepo.ListByStatus(ctx, domain.BookingStatusCharging)
		if err != nil {
			logger.Error("Failed to list charging bookings", "error", err)
			return
		}
		for i := range bookings {
			jr.timers.Track(&bookings[i])
		}
		logger.Info("Resumed charge timers", "count", len(bookings))
	})
}

// CompleteElapsedSessions is the cron safety sweep: any CHARGING booking
// whose booked duration has elapsed is completed, in case its timer was lost
// (crash, missed tick) or never resumed.
func (jr *JobRunner) CompleteElapsedSessions() {
	jr.runWithRecovery("CompleteElapsedSessions", func() {
		ctx := context.Background()
		bookings, err := jr.bookingRepo.ListByStatus(ctx, domain.BookingStatusCharging)
		if err != nil {
			logger.Error("Failed to list charging bookings", "error", err)
			return
		}

		now := time.Now().UTC()
		completed := 0
		for i := range bookings {
			b := &bookings[i]
			if b.RemainingCharge(now) > 0 {
				// Still running; make sure a timer is tracking it.
				jr.timers.Track(b)
				continue
			}
			if err := jr.bookingSvc.CompleteBooking(ctx, b.ID); err != nil {
				logger.Error("Failed to complete elapsed session", "booking_id", b.ID, "error", err)
				continue
			}
			completed++
		}
		if completed > 0 {
			logger.Info("Completed elapsed sessions", "count", completed)
		}
	})
}
