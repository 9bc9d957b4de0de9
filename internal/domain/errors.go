package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a booking, account, station, company or
	// user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable wraps transient I/O failures from the document
	// store. Operations are at-most-one-attempt; retry policy belongs to the
	// caller.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrAlreadyRated is returned when a rating is submitted for a booking
	// that already carries one. Ratings are write-once.
	ErrAlreadyRated = errors.New("booking already rated")

	// ErrStationUnavailable is returned when a booking targets a station
	// that is not active or has no vacant charger. The vacancy part of this
	// check is advisory (no cross-document transaction backs it).
	ErrStationUnavailable = errors.New("station not available for booking")

	// ErrInvalidRating is returned for rating values outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrUnauthorized is returned when the acting principal does not own the
	// entity it tries to mutate.
	ErrUnauthorized = errors.New("unauthorized")
)

// InsufficientFundsError is returned by booking creation when the wallet
// cannot cover the computed cost. It carries the current balance so the
// caller can show the user the shortfall.
type InsufficientFundsError struct {
	BalanceCents int64
	CostCents    int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: balance %d cents, cost %d cents", e.BalanceCents, e.CostCents)
}

// InvalidTransitionError is returned when a lifecycle action is invoked from
// a state that does not allow it.
type InvalidTransitionError struct {
	Action string
	From   BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s booking in status %s", e.Action, e.From)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var te *InvalidTransitionError
	return errors.As(err, &te)
}
