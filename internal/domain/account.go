package domain

import "time"

// Account holds a user's wallet and usage counters. Created with a zero
// wallet at registration.
//
// Invariant: WalletBalanceCents + ExpenditureTotalCents is conserved across a
// booking's create/cancel pair; money only moves between the two fields.
type Account struct {
	ID                    string    `json:"id"` // same id as the owning user
	WalletBalanceCents    int64     `json:"wallet_balance_cents"`
	ExpenditureTotalCents int64     `json:"expenditure_total_cents"`
	ChargingMinutesTotal  int64     `json:"charging_minutes_total"`
	BookingsCount         int64     `json:"bookings_count"`
	CreatedOn             time.Time `json:"created_on"`
	UpdatedOn             time.Time `json:"updated_on"`
}
