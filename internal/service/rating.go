package service

import (
	"context"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/repository"
)

type ratingService struct {
	bookingRepo repository.BookingRepository
	stationRepo repository.StationRepository
}

func NewRatingService(bookingRepo repository.BookingRepository, stationRepo repository.StationRepository) RatingService {
	return &ratingService{bookingRepo: bookingRepo, stationRepo: stationRepo}
}

// SubmitRating folds a 1-5 rating into the station's running aggregate. The
// station keeps (sum, count), never a stored mean, so the displayed average
// is exact regardless of submission order.
func (s *ratingService) SubmitRating(ctx context.Context, userID, bookingID string, value int64) error {
	if value < 1 || value > 5 {
		return domain.ErrInvalidRating
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.UserID != userID {
		return domain.ErrUnauthorized
	}
	if booking.Status != domain.BookingStatusCompleted {
		return &domain.InvalidTransitionError{Action: "rate", From: booking.Status}
	}
	if booking.Rated() {
		return domain.ErrAlreadyRated
	}

	if err := s.bookingRepo.SetRating(ctx, bookingID, value); err != nil {
		return err
	}
	return s.stationRepo.AddRating(ctx, booking.StationID, value)
}
