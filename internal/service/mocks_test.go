package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/repository/docstore"
	"voltmarket-backend/internal/store"
)

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingConfirmation(ctx context.Context, email, stationName string, startAt time.Time, durationMinutes, costCents int64) error {
	args := m.Called(ctx, email, stationName, startAt, durationMinutes, costCents)
	return args.Error(0)
}

func (m *MockEmailService) SendBookingCancellation(ctx context.Context, email, stationName string, refundCents int64) error {
	args := m.Called(ctx, email, stationName, refundCents)
	return args.Error(0)
}

func (m *MockEmailService) SendStationReviewNotice(ctx context.Context, email, stationName string, approved bool) error {
	args := m.Called(ctx, email, stationName, approved)
	return args.Error(0)
}

// fakeTimers records Track/Cancel calls from the booking service.
type fakeTimers struct {
	mu        sync.Mutex
	tracked   []string
	cancelled []string
}

func (f *fakeTimers) Track(b *domain.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tracked = append(f.tracked, b.ID)
}

func (f *fakeTimers) Cancel(bookingID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, bookingID)
}

func (f *fakeTimers) trackedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tracked...)
}

func (f *fakeTimers) cancelledIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cancelled...)
}

// testEnv wires the services over an in-memory store.
type testEnv struct {
	store    *store.MemoryStore
	repos    *docstore.Repositories
	emailSvc *MockEmailService
	timers   *fakeTimers
}

func newTestEnv() *testEnv {
	mem := store.NewMemoryStore()
	return &testEnv{
		store:    mem,
		repos:    docstore.NewRepositories(mem),
		emailSvc: new(MockEmailService),
		timers:   &fakeTimers{},
	}
}

func (e *testEnv) seedAccount(ctx context.Context, id string, walletCents int64) *domain.Account {
	account := &domain.Account{ID: id, WalletBalanceCents: walletCents}
	if err := e.repos.Accounts.Create(ctx, account); err != nil {
		panic(err)
	}
	return account
}

func (e *testEnv) seedStation(ctx context.Context, id string, priceCents, vacant, total int64) *domain.Station {
	station := &domain.Station{
		ID:                  id,
		CompanyID:           "company-1",
		Name:                "Test Station",
		TotalChargers:       total,
		VacantChargers:      vacant,
		PricePerMinuteCents: priceCents,
		Status:              domain.StationStatusActive,
	}
	if err := e.repos.Stations.Create(ctx, station); err != nil {
		panic(err)
	}
	return station
}
