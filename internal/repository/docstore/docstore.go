// Package docstore implements the repositories on top of the document store.
// Documents are flat field maps; conversion to and from domain structs lives
// here so services never touch raw documents.
package docstore

import (
	"time"

	"voltmarket-backend/internal/repository"
	"voltmarket-backend/internal/store"
)

// Repositories bundles all docstore-backed repositories over one Store.
type Repositories struct {
	Bookings  repository.BookingRepository
	Accounts  repository.AccountRepository
	Stations  repository.StationRepository
	Companies repository.CompanyRepository
	Users     repository.UserRepository
}

func NewRepositories(s store.Store) *Repositories {
	return &Repositories{
		Bookings:  NewBookingRepository(s),
		Accounts:  NewAccountRepository(s),
		Stations:  NewStationRepository(s),
		Companies: NewCompanyRepository(s),
		Users:     NewUserRepository(s),
	}
}

func docString(d store.Document, key string) string {
	s, _ := d[key].(string)
	return s
}

func docInt64(d store.Document, key string) int64 {
	switch n := d[key].(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func docTime(d store.Document, key string) time.Time {
	t, _ := d[key].(time.Time)
	return t
}

func docTimePtr(d store.Document, key string) *time.Time {
	t, ok := d[key].(time.Time)
	if !ok || t.IsZero() {
		return nil
	}
	return &t
}
