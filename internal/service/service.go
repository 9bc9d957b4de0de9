package service

import (
	"context"
	"time"

	"voltmarket-backend/internal/domain"
)

type BookingService interface {
	// CreateBooking authorizes against the wallet, writes the booking, then
	// debits the account and credits the station. Returns
	// *domain.InsufficientFundsError (with the current balance) when the
	// wallet cannot cover the cost.
	CreateBooking(ctx context.Context, userID, stationID string, startAt time.Time, durationMinutes int64) (*domain.Booking, error)
	StartCharging(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	// CompleteBooking finishes a charging session and frees the charger.
	// Completing an already-completed booking is a no-op.
	CompleteBooking(ctx context.Context, bookingID string) error
	CancelBooking(ctx context.Context, userID, bookingID string) error
	GetBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]domain.Booking, error)
	ListStationBookings(ctx context.Context, stationID string) ([]domain.Booking, error)
}

type RatingService interface {
	SubmitRating(ctx context.Context, userID, bookingID string, value int64) error
}

type AccountService interface {
	GetAccount(ctx context.Context, userID string) (*domain.Account, error)
	AddFunds(ctx context.Context, userID string, amountCents int64) (*domain.Account, error)
}

type StationService interface {
	RegisterStation(ctx context.Context, companyID, name, address string, totalChargers, pricePerMinuteCents int64) (*domain.Station, error)
	GetStation(ctx context.Context, id string) (*domain.Station, *domain.Company, error)
	ListActiveStations(ctx context.Context) ([]domain.Station, error)
	ListCompanyStations(ctx context.Context, companyID string) ([]domain.Station, error)
	// SetAvailability toggles a station between ACTIVE and INACTIVE. It
	// cannot override the moderation states.
	SetAvailability(ctx context.Context, companyID, stationID string, available bool) error
}

type AdminService interface {
	ListPendingStations(ctx context.Context) ([]domain.Station, error)
	ReviewStation(ctx context.Context, stationID string, approve bool) error
	SuspendStation(ctx context.Context, stationID, reason string) error
	ReinstateStation(ctx context.Context, stationID string) error
}

type AuthService interface {
	// Signup creates the user and their zero-balance wallet account.
	Signup(ctx context.Context, name, email, password string) (*domain.User, string, error)
	// SignupCompany additionally creates the Company aggregate and links the
	// user to it.
	SignupCompany(ctx context.Context, name, email, companyName, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type EmailService interface {
	SendBookingConfirmation(ctx context.Context, email, stationName string, startAt time.Time, durationMinutes, costCents int64) error
	SendBookingCancellation(ctx context.Context, email, stationName string, refundCents int64) error
	SendStationReviewNotice(ctx context.Context, email, stationName string, approved bool) error
}

// ChargeTimerRegistry is the countdown scheduler as seen by the booking
// service: sessions entering CHARGING are tracked, sessions leaving it by any
// path are deregistered.
type ChargeTimerRegistry interface {
	Track(booking *domain.Booking)
	Cancel(bookingID string)
}
