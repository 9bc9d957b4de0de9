package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCharging  BookingStatus = "CHARGING"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking is one reservation/charging session. Bookings are never deleted,
// only status-transitioned, so the collection doubles as booking history.
type Booking struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	StationID   string `json:"station_id"`
	StationName string `json:"station_name"` // denormalized for history views

	// StartAt is the canonical session instant. Display formatting is the
	// presentation layer's job; no formatted date strings are stored.
	StartAt         time.Time `json:"start_at"`
	DurationMinutes int64     `json:"duration_minutes"`

	// CostCents is fixed at creation (duration x station price at the time)
	// and never recomputed afterwards.
	CostCents int64 `json:"cost_cents"`

	Status            BookingStatus `json:"status"`
	ChargingStartedAt *time.Time    `json:"charging_started_at,omitempty"`

	// Rating is 0 until the user rates the completed session, then 1-5.
	// Write-once.
	Rating int64 `json:"rating,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Rated reports whether a rating has been recorded.
func (b *Booking) Rated() bool {
	return b.Rating > 0
}

// CanStartCharging reports whether the charging transition is allowed.
func (b *Booking) CanStartCharging() bool {
	return b.Status == BookingStatusConfirmed
}

// CanCancel reports whether cancellation is allowed. Charging sessions cannot
// be cancelled: funds are committed and the session is physically in progress.
func (b *Booking) CanCancel() bool {
	return b.Status == BookingStatusConfirmed
}

// RemainingCharge returns how much of the booked duration is left at the
// given instant. Always derived from ChargingStartedAt so a process restart
// cannot lose track of elapsed time. Zero or negative means the session is due
// for completion.
func (b *Booking) RemainingCharge(now time.Time) time.Duration {
	if b.ChargingStartedAt == nil {
		return time.Duration(b.DurationMinutes) * time.Minute
	}
	booked := time.Duration(b.DurationMinutes) * time.Minute
	return booked - now.Sub(*b.ChargingStartedAt)
}
