package domain

import "time"

type StationStatus string

const (
	StationStatusPending   StationStatus = "PENDING"
	StationStatusActive    StationStatus = "ACTIVE"
	StationStatusInactive  StationStatus = "INACTIVE"
	StationStatusSuspended StationStatus = "SUSPENDED"
	StationStatusRejected  StationStatus = "REJECTED"
)

// Station is one charging location owned by a company. Counters are mutated
// only through booking and rating operations; decrements are clamped at zero.
type Station struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Address   string `json:"address"`

	TotalChargers  int64 `json:"total_chargers"`
	VacantChargers int64 `json:"vacant_chargers"` // 0 <= vacant <= total

	PricePerMinuteCents int64 `json:"price_per_minute_cents"`

	CompletedBookingsCount int64 `json:"completed_bookings_count"`
	RevenueTotalCents      int64 `json:"revenue_total_cents"`

	// The displayed average is always RatingSum/RatingCount, recomputed on
	// read. Storing a rolling mean and re-averaging it would compound
	// rounding error.
	RatingSum   int64 `json:"rating_sum"`
	RatingCount int64 `json:"rating_count"`

	Status    StationStatus `json:"status"`
	CreatedOn time.Time     `json:"created_on"`
	UpdatedOn time.Time     `json:"updated_on"`
}

// AverageRating derives the displayed mean. Returns 0 when unrated.
func (s *Station) AverageRating() float64 {
	if s.RatingCount == 0 {
		return 0
	}
	return float64(s.RatingSum) / float64(s.RatingCount)
}

// Bookable reports whether new bookings may target the station. The vacancy
// check is advisory: without a cross-document transaction two concurrent
// bookings can both pass it.
func (s *Station) Bookable() bool {
	return s.Status == StationStatusActive && s.VacantChargers > 0
}
