package repository

import (
	"context"
	"time"

	"voltmarket-backend/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	MarkCharging(ctx context.Context, id string, startedAt time.Time) error
	SetRating(ctx context.Context, id string, rating int64) error
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	ListByStation(ctx context.Context, stationID string) ([]domain.Booking, error)
	ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)
}

// AccountRepository mutates wallet and usage counters through atomic deltas
// only; it never reads, modifies and writes a counter back.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// ApplyBookingDebit moves cost from wallet to expenditure and bumps the
	// usage counters for a new booking.
	ApplyBookingDebit(ctx context.Context, id string, costCents, durationMinutes int64) error
	// ReverseBookingDebit undoes ApplyBookingDebit for a cancellation. All
	// decrements are clamped at zero.
	ReverseBookingDebit(ctx context.Context, id string, costCents, durationMinutes int64) error
	AddFunds(ctx context.Context, id string, amountCents int64) error
}

type StationRepository interface {
	Create(ctx context.Context, station *domain.Station) error
	GetByID(ctx context.Context, id string) (*domain.Station, error)
	UpdateStatus(ctx context.Context, id string, status domain.StationStatus) error
	ListByStatus(ctx context.Context, status domain.StationStatus) ([]domain.Station, error)
	ListByCompany(ctx context.Context, companyID string) ([]domain.Station, error)
	// ApplyBookingCredit records revenue and occupies a charger (vacancy
	// decrement clamped at zero).
	ApplyBookingCredit(ctx context.Context, id string, costCents int64) error
	// ReverseBookingCredit undoes ApplyBookingCredit for a cancellation.
	ReverseBookingCredit(ctx context.Context, id string, costCents int64) error
	// ReleaseCharger frees one charger when a session completes.
	ReleaseCharger(ctx context.Context, id string) error
	AddRating(ctx context.Context, id string, value int64) error
}

type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
