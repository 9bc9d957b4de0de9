package store

import (
	"context"
)

// Collection names used across the backend.
const (
	CollectionBookings  = "bookings"
	CollectionAccounts  = "accounts"
	CollectionStations  = "stations"
	CollectionCompanies = "companies"
	CollectionUsers     = "users"
)

// Document is one stored entity as a flat field map.
type Document map[string]any

// Filter is an equality predicate for Query.
type Filter struct {
	Field string
	Value any
}

// Store is the narrow surface the backend needs from the hosted document
// database: read one document, upsert with shallow merge, atomic counter
// deltas, and equality queries. No cross-document transaction is offered;
// multi-entity operations must tolerate partial application.
type Store interface {
	// Get returns the document or domain.ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)

	// SetMerge upserts, shallow-merging fields into any existing document.
	SetMerge(ctx context.Context, collection, id string, fields map[string]any) error

	// Delta applies atomic increments (negative for decrements) to numeric
	// fields. Pure deltas, no read-modify-write: concurrent writers converge
	// by commutativity.
	Delta(ctx context.Context, collection, id string, deltas map[string]int64) error

	// DeltaClamped applies increments like Delta but floors each resulting
	// field at zero, tolerating drift from concurrent operations instead of
	// going negative.
	DeltaClamped(ctx context.Context, collection, id string, deltas map[string]int64) error

	// Query returns all documents matching every filter.
	Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error)
}
