package scheduler

import (
	"context"
	"sync"
	"time"

	"voltmarket-backend/internal/cache"
	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/logger"
)

// Completer finishes a charging session. Implemented by the booking service;
// the call must be idempotent because the per-booking timer and the safety
// sweep can race.
type Completer interface {
	CompleteBooking(ctx context.Context, bookingID string) error
}

// ChargeTimer runs one countdown per CHARGING booking and completes the
// session when the booked duration elapses. Remaining time is always
// recomputed from the stored charging start timestamp, so a process restart
// loses nothing: Track the booking again and the countdown resumes where the
// wall clock says it should.
type ChargeTimer struct {
	mu     sync.Mutex
	active map[string]chan struct{} // bookingID -> stop signal

	completer Completer
	sessions  *cache.ActiveSessionStore // optional remaining-time mirror
	tick      time.Duration
	now       func() time.Time
}

func NewChargeTimer(sessions *cache.ActiveSessionStore, tick time.Duration) *ChargeTimer {
	if tick <= 0 {
		tick = time.Second
	}
	return &ChargeTimer{
		active:   make(map[string]chan struct{}),
		sessions: sessions,
		tick:     tick,
		now:      time.Now,
	}
}

// SetCompleter wires the booking service in after construction; the service
// itself depends on the timer, so the cycle is closed here.
func (t *ChargeTimer) SetCompleter(c Completer) {
	t.completer = c
}

// Track starts (or resumes) the countdown for a charging booking. A booking
// observed with no remaining time is completed immediately. Tracking an
// already-tracked booking is a no-op.
func (t *ChargeTimer) Track(booking *domain.Booking) {
	if booking.Status != domain.BookingStatusCharging || booking.ChargingStartedAt == nil {
		return
	}

	t.mu.Lock()
	if _, ok := t.active[booking.ID]; ok {
		t.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	t.active[booking.ID] = stop
	t.mu.Unlock()

	remaining := booking.RemainingCharge(t.now())
	if remaining <= 0 {
		go t.finish(booking)
		return
	}

	t.publish(booking, remaining)
	go t.run(booking, stop)
}

// Cancel deregisters a booking's timer. Safe to call for untracked bookings.
func (t *ChargeTimer) Cancel(bookingID string) {
	t.mu.Lock()
	stop, ok := t.active[bookingID]
	if ok {
		delete(t.active, bookingID)
	}
	t.mu.Unlock()
	if ok {
		close(stop)
	}
	if t.sessions != nil {
		_ = t.sessions.Delete(context.Background(), bookingID)
	}
}

// TrackedCount returns the number of live countdowns.
func (t *ChargeTimer) TrackedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active)
}

func (t *ChargeTimer) run(booking *domain.Booking, stop chan struct{}) {
	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			remaining := booking.RemainingCharge(t.now())
			if remaining <= 0 {
				t.drop(booking.ID)
				t.finishTracked(booking)
				return
			}
			t.publish(booking, remaining)
		}
	}
}

func (t *ChargeTimer) finish(booking *domain.Booking) {
	t.drop(booking.ID)
	t.finishTracked(booking)
}

func (t *ChargeTimer) drop(bookingID string) {
	t.mu.Lock()
	delete(t.active, bookingID)
	t.mu.Unlock()
}

func (t *ChargeTimer) finishTracked(booking *domain.Booking) {
	if t.completer == nil {
		logger.Error("Charge timer has no completer wired", "booking_id", booking.ID)
		return
	}
	if err := t.completer.CompleteBooking(context.Background(), booking.ID); err != nil {
		logger.Error("Charge timer failed to complete booking", "booking_id", booking.ID, "error", err)
	}
	if t.sessions != nil {
		_ = t.sessions.Delete(context.Background(), booking.ID)
	}
}

func (t *ChargeTimer) publish(booking *domain.Booking, remaining time.Duration) {
	if t.sessions == nil {
		return
	}
	secs := int64(remaining / time.Second)
	if secs < 0 {
		secs = 0
	}
	err := t.sessions.Save(context.Background(), cache.ActiveSession{
		BookingID:        booking.ID,
		UserID:           booking.UserID,
		StationID:        booking.StationID,
		RemainingSeconds: secs,
	})
	if err != nil {
		logger.Debug("Failed to publish active session", "booking_id", booking.ID, "error", err)
	}
}
