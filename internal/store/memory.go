package store

import (
	"context"
	"sync"

	"voltmarket-backend/internal/domain"
)

// MemoryStore is an in-memory Store used by tests and local development.
// Semantics mirror the Firestore adapter: shallow merge on SetMerge, atomic
// deltas, clamped decrements. FailNext lets tests inject a transient store
// failure into a specific operation.
type MemoryStore struct {
	mu    sync.Mutex
	data  map[string]map[string]Document // collection -> id -> document
	fails map[string]int                 // "op/collection" -> remaining failures
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:  make(map[string]map[string]Document),
		fails: make(map[string]int),
	}
}

// FailNext makes the next n calls of op ("get", "setmerge", "delta",
// "deltaclamped", "query") against collection return ErrStoreUnavailable.
func (s *MemoryStore) FailNext(op, collection string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fails[op+"/"+collection] = n
}

func (s *MemoryStore) failing(op, collection string) bool {
	key := op + "/" + collection
	if s.fails[key] > 0 {
		s.fails[key]--
		return true
	}
	return false
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing("get", collection) {
		return nil, domain.ErrStoreUnavailable
	}
	doc, ok := s.data[collection][id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneDocument(doc), nil
}

func (s *MemoryStore) SetMerge(ctx context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing("setmerge", collection) {
		return domain.ErrStoreUnavailable
	}
	coll, ok := s.data[collection]
	if !ok {
		coll = make(map[string]Document)
		s.data[collection] = coll
	}
	doc, ok := coll[id]
	if !ok {
		doc = make(Document)
		coll[id] = doc
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (s *MemoryStore) Delta(ctx context.Context, collection, id string, deltas map[string]int64) error {
	return s.applyDeltas(collection, id, deltas, false, "delta")
}

func (s *MemoryStore) DeltaClamped(ctx context.Context, collection, id string, deltas map[string]int64) error {
	return s.applyDeltas(collection, id, deltas, true, "deltaclamped")
}

func (s *MemoryStore) applyDeltas(collection, id string, deltas map[string]int64, clamp bool, op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing(op, collection) {
		return domain.ErrStoreUnavailable
	}
	doc, ok := s.data[collection][id]
	if !ok {
		return domain.ErrNotFound
	}
	for field, amount := range deltas {
		next := asInt64(doc[field]) + amount
		if clamp && next < 0 {
			next = 0
		}
		doc[field] = next
	}
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing("query", collection) {
		return nil, domain.ErrStoreUnavailable
	}
	var docs []Document
	for _, doc := range s.data[collection] {
		if matchesFilters(doc, filters) {
			docs = append(docs, cloneDocument(doc))
		}
	}
	return docs, nil
}

func matchesFilters(doc Document, filters []Filter) bool {
	for _, f := range filters {
		if doc[f.Field] != f.Value {
			return false
		}
	}
	return true
}

func cloneDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
