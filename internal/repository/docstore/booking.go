package docstore

import (
	"context"
	"time"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/repository"
	"voltmarket-backend/internal/store"
)

type bookingRepository struct {
	store store.Store
}

func NewBookingRepository(s store.Store) repository.BookingRepository {
	return &bookingRepository{store: s}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	now := time.Now().UTC()
	b.CreatedOn = now
	b.UpdatedOn = now
	return r.store.SetMerge(ctx, store.CollectionBookings, b.ID, bookingFields(b))
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	doc, err := r.store.Get(ctx, store.CollectionBookings, id)
	if err != nil {
		return nil, err
	}
	return bookingFromDoc(doc), nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	return r.store.SetMerge(ctx, store.CollectionBookings, id, map[string]any{
		"status":     string(status),
		"updated_on": time.Now().UTC(),
	})
}

func (r *bookingRepository) MarkCharging(ctx context.Context, id string, startedAt time.Time) error {
	return r.store.SetMerge(ctx, store.CollectionBookings, id, map[string]any{
		"status":              string(domain.BookingStatusCharging),
		"charging_started_at": startedAt.UTC(),
		"updated_on":          time.Now().UTC(),
	})
}

func (r *bookingRepository) SetRating(ctx context.Context, id string, rating int64) error {
	return r.store.SetMerge(ctx, store.CollectionBookings, id, map[string]any{
		"rating":     rating,
		"updated_on": time.Now().UTC(),
	})
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	return r.list(ctx, store.Filter{Field: "user_id", Value: userID})
}

func (r *bookingRepository) ListByStation(ctx context.Context, stationID string) ([]domain.Booking, error) {
	return r.list(ctx, store.Filter{Field: "station_id", Value: stationID})
}

func (r *bookingRepository) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	return r.list(ctx, store.Filter{Field: "status", Value: string(status)})
}

func (r *bookingRepository) list(ctx context.Context, filters ...store.Filter) ([]domain.Booking, error) {
	docs, err := r.store.Query(ctx, store.CollectionBookings, filters...)
	if err != nil {
		return nil, err
	}
	bookings := make([]domain.Booking, 0, len(docs))
	for _, doc := range docs {
		bookings = append(bookings, *bookingFromDoc(doc))
	}
	return bookings, nil
}

func bookingFields(b *domain.Booking) map[string]any {
	fields := map[string]any{
		"id":               b.ID,
		"user_id":          b.UserID,
		"station_id":       b.StationID,
		"station_name":     b.StationName,
		"start_at":         b.StartAt.UTC(),
		"duration_minutes": b.DurationMinutes,
		"cost_cents":       b.CostCents,
		"status":           string(b.Status),
		"rating":           b.Rating,
		"created_on":       b.CreatedOn,
		"updated_on":       b.UpdatedOn,
	}
	if b.ChargingStartedAt != nil {
		fields["charging_started_at"] = b.ChargingStartedAt.UTC()
	}
	return fields
}

func bookingFromDoc(doc store.Document) *domain.Booking {
	return &domain.Booking{
		ID:                docString(doc, "id"),
		UserID:            docString(doc, "user_id"),
		StationID:         docString(doc, "station_id"),
		StationName:       docString(doc, "station_name"),
		StartAt:           docTime(doc, "start_at"),
		DurationMinutes:   docInt64(doc, "duration_minutes"),
		CostCents:         docInt64(doc, "cost_cents"),
		Status:            domain.BookingStatus(docString(doc, "status")),
		ChargingStartedAt: docTimePtr(doc, "charging_started_at"),
		Rating:            docInt64(doc, "rating"),
		CreatedOn:         docTime(doc, "created_on"),
		UpdatedOn:         docTime(doc, "updated_on"),
	}
}
