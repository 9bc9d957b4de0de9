package docstore

import (
	"context"
	"time"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/repository"
	"voltmarket-backend/internal/store"
)

type accountRepository struct {
	store store.Store
}

func NewAccountRepository(s store.Store) repository.AccountRepository {
	return &accountRepository{store: s}
}

func (r *accountRepository) Create(ctx context.Context, a *domain.Account) error {
	now := time.Now().UTC()
	a.CreatedOn = now
	a.UpdatedOn = now
	return r.store.SetMerge(ctx, store.CollectionAccounts, a.ID, map[string]any{
		"id":                      a.ID,
		"wallet_balance_cents":    a.WalletBalanceCents,
		"expenditure_total_cents": a.ExpenditureTotalCents,
		"charging_minutes_total":  a.ChargingMinutesTotal,
		"bookings_count":          a.BookingsCount,
		"created_on":              a.CreatedOn,
		"updated_on":              a.UpdatedOn,
	})
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	doc, err := r.store.Get(ctx, store.CollectionAccounts, id)
	if err != nil {
		return nil, err
	}
	return &domain.Account{
		ID:                    docString(doc, "id"),
		WalletBalanceCents:    docInt64(doc, "wallet_balance_cents"),
		ExpenditureTotalCents: docInt64(doc, "expenditure_total_cents"),
		ChargingMinutesTotal:  docInt64(doc, "charging_minutes_total"),
		BookingsCount:         docInt64(doc, "bookings_count"),
		CreatedOn:             docTime(doc, "created_on"),
		UpdatedOn:             docTime(doc, "updated_on"),
	}, nil
}

func (r *accountRepository) ApplyBookingDebit(ctx context.Context, id string, costCents, durationMinutes int64) error {
	return r.store.Delta(ctx, store.CollectionAccounts, id, map[string]int64{
		"wallet_balance_cents":    -costCents,
		"expenditure_total_cents": costCents,
		"charging_minutes_total":  durationMinutes,
		"bookings_count":          1,
	})
}

func (r *accountRepository) ReverseBookingDebit(ctx context.Context, id string, costCents, durationMinutes int64) error {
	// The refund itself must never be clamped away, so the wallet credit is
	// a plain delta; the counter decrements are clamped.
	if err := r.store.Delta(ctx, store.CollectionAccounts, id, map[string]int64{
		"wallet_balance_cents": costCents,
	}); err != nil {
		return err
	}
	return r.store.DeltaClamped(ctx, store.CollectionAccounts, id, map[string]int64{
		"expenditure_total_cents": -costCents,
		"charging_minutes_total":  -durationMinutes,
		"bookings_count":          -1,
	})
}

func (r *accountRepository) AddFunds(ctx context.Context, id string, amountCents int64) error {
	return r.store.Delta(ctx, store.CollectionAccounts, id, map[string]int64{
		"wallet_balance_cents": amountCents,
	})
}
