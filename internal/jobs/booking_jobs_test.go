package jobs_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltmarket-backend/internal/config"
	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/jobs"
	"voltmarket-backend/internal/repository/docstore"
	"voltmarket-backend/internal/service"
	"voltmarket-backend/internal/store"
)

type fakeTimers struct {
	mu      sync.Mutex
	tracked []string
}

func (f *fakeTimers) Track(b *domain.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tracked = append(f.tracked, b.ID)
}

func (f *fakeTimers) Cancel(bookingID string) {}

func (f *fakeTimers) trackedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tracked...)
}

type noopEmail struct{}

func (noopEmail) SendBookingConfirmation(ctx context.Context, email, stationName string, startAt time.Time, durationMinutes, costCents int64) error {
	return nil
}

func (noopEmail) SendBookingCancellation(ctx context.Context, email, stationName string, refundCents int64) error {
	return nil
}

func (noopEmail) SendStationReviewNotice(ctx context.Context, email, stationName string, approved bool) error {
	return nil
}

type jobEnv struct {
	repos  *docstore.Repositories
	timers *fakeTimers
	runner *jobs.JobRunner
}

func newJobEnv() *jobEnv {
	mem := store.NewMemoryStore()
	repos := docstore.NewRepositories(mem)
	timers := &fakeTimers{}
	bookingSvc := service.NewBookingService(repos.Bookings, repos.Accounts, repos.Stations, repos.Users, noopEmail{}, timers)
	runner := jobs.NewJobRunner(repos.Bookings, bookingSvc, timers, &config.Config{})
	return &jobEnv{repos: repos, timers: timers, runner: runner}
}

func (e *jobEnv) seedChargingBooking(ctx context.Context, id string, durationMinutes int64, startedAgo time.Duration) {
	startedAt := time.Now().UTC().Add(-startedAgo)
	booking := &domain.Booking{
		ID:                id,
		UserID:            "user-1",
		StationID:         "station-1",
		DurationMinutes:   durationMinutes,
		CostCents:         durationMinutes * 200,
		Status:            domain.BookingStatusCharging,
		ChargingStartedAt: &startedAt,
	}
	if err := e.repos.Bookings.Create(ctx, booking); err != nil {
		panic(err)
	}
}

func (e *jobEnv) seedStation(ctx context.Context, id string) {
	station := &domain.Station{
		ID:             id,
		Name:           "Test Station",
		TotalChargers:  5,
		VacantChargers: 2,
		Status:         domain.StationStatusActive,
	}
	if err := e.repos.Stations.Create(ctx, station); err != nil {
		panic(err)
	}
}

func TestResumeChargeTimers(t *testing.T) {
	ctx := context.Background()
	env := newJobEnv()
	env.seedChargingBooking(ctx, "booking-1", 30, 5*time.Minute)
	env.seedChargingBooking(ctx, "booking-2", 60, 10*time.Minute)

	// Only CHARGING bookings are resumed.
	confirmed := &domain.Booking{ID: "booking-3", UserID: "user-1", StationID: "station-1",
		DurationMinutes: 30, Status: domain.BookingStatusConfirmed}
	require.NoError(t, env.repos.Bookings.Create(ctx, confirmed))

	env.runner.ResumeChargeTimers()

	assert.ElementsMatch(t, []string{"booking-1", "booking-2"}, env.timers.trackedIDs())
}

func TestCompleteElapsedSessions(t *testing.T) {
	ctx := context.Background()
	env := newJobEnv()
	env.seedStation(ctx, "station-1")
	env.seedChargingBooking(ctx, "booking-elapsed", 30, 31*time.Minute)
	env.seedChargingBooking(ctx, "booking-running", 60, 10*time.Minute)

	env.runner.CompleteElapsedSessions()

	elapsed, err := env.repos.Bookings.GetByID(ctx, "booking-elapsed")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCompleted, elapsed.Status)

	running, err := env.repos.Bookings.GetByID(ctx, "booking-running")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCharging, running.Status)

	// The still-running session was handed back to the timer.
	assert.Equal(t, []string{"booking-running"}, env.timers.trackedIDs())

	// Completion freed the charger.
	station, err := env.repos.Stations.GetByID(ctx, "station-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), station.VacantChargers)
}

func TestCompleteElapsedSessions_Idempotent(t *testing.T) {
	ctx := context.Background()
	env := newJobEnv()
	env.seedStation(ctx, "station-1")
	env.seedChargingBooking(ctx, "booking-elapsed", 30, 31*time.Minute)

	env.runner.CompleteElapsedSessions()
	env.runner.CompleteElapsedSessions()

	station, err := env.repos.Stations.GetByID(ctx, "station-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), station.VacantChargers, "second sweep found nothing to do")
}
