package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/logger"
	"voltmarket-backend/internal/repository"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	accountRepo repository.AccountRepository
	stationRepo repository.StationRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
	timers      ChargeTimerRegistry
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	accountRepo repository.AccountRepository,
	stationRepo repository.StationRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	timers ChargeTimerRegistry,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		accountRepo: accountRepo,
		stationRepo: stationRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		timers:      timers,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID, stationID string, startAt time.Time, durationMinutes int64) (*domain.Booking, error) {
	if durationMinutes <= 0 {
		return nil, errors.New("duration must be positive")
	}

	station, err := s.stationRepo.GetByID(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if !station.Bookable() {
		return nil, domain.ErrStationUnavailable
	}

	// Balance is read fresh here, not taken from whatever view the caller
	// had when it validated the form.
	account, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	costCents := durationMinutes * station.PricePerMinuteCents
	if account.WalletBalanceCents < costCents {
		return nil, &domain.InsufficientFundsError{
			BalanceCents: account.WalletBalanceCents,
			CostCents:    costCents,
		}
	}

	booking := &domain.Booking{
		ID:              uuid.NewString(),
		UserID:          userID,
		StationID:       stationID,
		StationName:     station.Name,
		StartAt:         startAt.UTC(),
		DurationMinutes: durationMinutes,
		CostCents:       costCents,
		Status:          domain.BookingStatusConfirmed,
	}

	// The booking record goes in first: an orphan booking with no ledger
	// debit is auditable and reconcilable, a debit with no booking silently
	// loses money.
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	// Both ledger legs are attempted even if one fails. A failure here
	// leaves orphaned state; it is surfaced, not hidden, and recovery is a
	// reconciliation concern.
	debitErr := s.accountRepo.ApplyBookingDebit(ctx, userID, costCents, durationMinutes)
	creditErr := s.stationRepo.ApplyBookingCredit(ctx, stationID, costCents)
	if debitErr != nil || creditErr != nil {
		logger.ErrorContext(ctx, "Booking ledger update partially failed",
			"booking_id", booking.ID, "debit_error", debitErr, "credit_error", creditErr)
		return booking, errors.Join(debitErr, creditErr)
	}

	s.notifyBooking(ctx, booking)

	return booking, nil
}

func (s *bookingService) StartCharging(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	if !booking.CanStartCharging() {
		return nil, &domain.InvalidTransitionError{Action: "start charging", From: booking.Status}
	}

	now := time.Now().UTC()
	if err := s.bookingRepo.MarkCharging(ctx, bookingID, now); err != nil {
		return nil, err
	}
	booking.Status = domain.BookingStatusCharging
	booking.ChargingStartedAt = &now

	// No ledger effect; money already moved at creation.
	s.timers.Track(booking)

	return booking, nil
}

func (s *bookingService) CompleteBooking(ctx context.Context, bookingID string) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.Status == domain.BookingStatusCompleted {
		// Timer sweep and manual completion can race; completing twice is
		// a no-op, not an error.
		return nil
	}
	if booking.Status != domain.BookingStatusCharging {
		return &domain.InvalidTransitionError{Action: "complete", From: booking.Status}
	}

	s.timers.Cancel(bookingID)

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingStatusCompleted); err != nil {
		return err
	}
	if err := s.stationRepo.ReleaseCharger(ctx, booking.StationID); err != nil {
		logger.ErrorContext(ctx, "Failed to release charger after completion",
			"booking_id", bookingID, "station_id", booking.StationID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Charging session completed", "booking_id", bookingID, "station_id", booking.StationID)
	return nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID string) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.UserID != userID {
		return domain.ErrUnauthorized
	}
	if !booking.CanCancel() {
		return &domain.InvalidTransitionError{Action: "cancel", From: booking.Status}
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingStatusCancelled); err != nil {
		return err
	}

	// Exact reversal of the create sequence; decrements clamp at zero in the
	// repositories to tolerate drift rather than go negative.
	refundErr := s.accountRepo.ReverseBookingDebit(ctx, userID, booking.CostCents, booking.DurationMinutes)
	stationErr := s.stationRepo.ReverseBookingCredit(ctx, booking.StationID, booking.CostCents)
	if refundErr != nil || stationErr != nil {
		logger.ErrorContext(ctx, "Cancellation ledger update partially failed",
			"booking_id", bookingID, "refund_error", refundErr, "station_error", stationErr)
		return errors.Join(refundErr, stationErr)
	}

	s.notifyCancellation(ctx, booking)

	return nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return booking, nil
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

func (s *bookingService) ListStationBookings(ctx context.Context, stationID string) ([]domain.Booking, error) {
	return s.bookingRepo.ListByStation(ctx, stationID)
}

func (s *bookingService) notifyBooking(ctx context.Context, booking *domain.Booking) {
	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		return
	}
	if err := s.emailSvc.SendBookingConfirmation(ctx, user.Email, booking.StationName,
		booking.StartAt, booking.DurationMinutes, booking.CostCents); err != nil {
		logger.WarnContext(ctx, "Failed to send booking confirmation", "booking_id", booking.ID, "error", err)
	}
}

func (s *bookingService) notifyCancellation(ctx context.Context, booking *domain.Booking) {
	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		return
	}
	if err := s.emailSvc.SendBookingCancellation(ctx, user.Email, booking.StationName, booking.CostCents); err != nil {
		logger.WarnContext(ctx, "Failed to send cancellation notice", "booking_id", booking.ID, "error", err)
	}
}
