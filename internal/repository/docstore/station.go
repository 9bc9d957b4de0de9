package docstore

import (
	"context"
	"time"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/repository"
	"voltmarket-backend/internal/store"
)

type stationRepository struct {
	store store.Store
}

func NewStationRepository(s store.Store) repository.StationRepository {
	return &stationRepository{store: s}
}

func (r *stationRepository) Create(ctx context.Context, st *domain.Station) error {
	now := time.Now().UTC()
	st.CreatedOn = now
	st.UpdatedOn = now
	return r.store.SetMerge(ctx, store.CollectionStations, st.ID, stationFields(st))
}

func (r *stationRepository) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	doc, err := r.store.Get(ctx, store.CollectionStations, id)
	if err != nil {
		return nil, err
	}
	return stationFromDoc(doc), nil
}

func (r *stationRepository) UpdateStatus(ctx context.Context, id string, status domain.StationStatus) error {
	return r.store.SetMerge(ctx, store.CollectionStations, id, map[string]any{
		"status":     string(status),
		"updated_on": time.Now().UTC(),
	})
}

func (r *stationRepository) ListByStatus(ctx context.Context, status domain.StationStatus) ([]domain.Station, error) {
	return r.list(ctx, store.Filter{Field: "status", Value: string(status)})
}

func (r *stationRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Station, error) {
	return r.list(ctx, store.Filter{Field: "company_id", Value: companyID})
}

func (r *stationRepository) list(ctx context.Context, filters ...store.Filter) ([]domain.Station, error) {
	docs, err := r.store.Query(ctx, store.CollectionStations, filters...)
	if err != nil {
		return nil, err
	}
	stations := make([]domain.Station, 0, len(docs))
	for _, doc := range docs {
		stations = append(stations, *stationFromDoc(doc))
	}
	return stations, nil
}

func (r *stationRepository) ApplyBookingCredit(ctx context.Context, id string, costCents int64) error {
	if err := r.store.Delta(ctx, store.CollectionStations, id, map[string]int64{
		"revenue_total_cents":      costCents,
		"completed_bookings_count": 1,
	}); err != nil {
		return err
	}
	return r.store.DeltaClamped(ctx, store.CollectionStations, id, map[string]int64{
		"vacant_chargers": -1,
	})
}

func (r *stationRepository) ReverseBookingCredit(ctx context.Context, id string, costCents int64) error {
	if err := r.store.DeltaClamped(ctx, store.CollectionStations, id, map[string]int64{
		"revenue_total_cents":      -costCents,
		"completed_bookings_count": -1,
	}); err != nil {
		return err
	}
	return r.store.Delta(ctx, store.CollectionStations, id, map[string]int64{
		"vacant_chargers": 1,
	})
}

func (r *stationRepository) ReleaseCharger(ctx context.Context, id string) error {
	return r.store.Delta(ctx, store.CollectionStations, id, map[string]int64{
		"vacant_chargers": 1,
	})
}

func (r *stationRepository) AddRating(ctx context.Context, id string, value int64) error {
	return r.store.Delta(ctx, store.CollectionStations, id, map[string]int64{
		"rating_sum":   value,
		"rating_count": 1,
	})
}

func stationFields(st *domain.Station) map[string]any {
	return map[string]any{
		"id":                       st.ID,
		"company_id":               st.CompanyID,
		"name":                     st.Name,
		"address":                  st.Address,
		"total_chargers":           st.TotalChargers,
		"vacant_chargers":          st.VacantChargers,
		"price_per_minute_cents":   st.PricePerMinuteCents,
		"completed_bookings_count": st.CompletedBookingsCount,
		"revenue_total_cents":      st.RevenueTotalCents,
		"rating_sum":               st.RatingSum,
		"rating_count":             st.RatingCount,
		"status":                   string(st.Status),
		"created_on":               st.CreatedOn,
		"updated_on":               st.UpdatedOn,
	}
}

func stationFromDoc(doc store.Document) *domain.Station {
	return &domain.Station{
		ID:                     docString(doc, "id"),
		CompanyID:              docString(doc, "company_id"),
		Name:                   docString(doc, "name"),
		Address:                docString(doc, "address"),
		TotalChargers:          docInt64(doc, "total_chargers"),
		VacantChargers:         docInt64(doc, "vacant_chargers"),
		PricePerMinuteCents:    docInt64(doc, "price_per_minute_cents"),
		CompletedBookingsCount: docInt64(doc, "completed_bookings_count"),
		RevenueTotalCents:      docInt64(doc, "revenue_total_cents"),
		RatingSum:              docInt64(doc, "rating_sum"),
		RatingCount:            docInt64(doc, "rating_count"),
		Status:                 domain.StationStatus(docString(doc, "status")),
		CreatedOn:              docTime(doc, "created_on"),
		UpdatedOn:              docTime(doc, "updated_on"),
	}
}
