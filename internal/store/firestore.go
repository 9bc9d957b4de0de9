package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"voltmarket-backend/internal/domain"
)

// FirestoreStore implements Store on top of Cloud Firestore through the
// Firebase admin SDK.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore initializes the Firebase app and opens a Firestore
// client. credentialsFile may be empty to use application default credentials.
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile string) (*FirestoreStore, error) {
	conf := &firebase.Config{ProjectID: projectID}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open firestore client: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

// Close releases the underlying client.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, wrapFirestoreErr(err)
	}
	return Document(snap.Data()), nil
}

func (s *FirestoreStore) SetMerge(ctx context.Context, collection, id string, fields map[string]any) error {
	_, err := s.client.Collection(collection).Doc(id).Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return wrapFirestoreErr(err)
	}
	return nil
}

func (s *FirestoreStore) Delta(ctx context.Context, collection, id string, deltas map[string]int64) error {
	updates := make([]firestore.Update, 0, len(deltas))
	for field, amount := range deltas {
		updates = append(updates, firestore.Update{Path: field, Value: firestore.Increment(amount)})
	}
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, updates)
	if err != nil {
		return wrapFirestoreErr(err)
	}
	return nil
}

// DeltaClamped needs the current values to floor at zero, so unlike Delta it
// runs a Firestore transaction instead of a blind increment.
func (s *FirestoreStore) DeltaClamped(ctx context.Context, collection, id string, deltas map[string]int64) error {
	ref := s.client.Collection(collection).Doc(id)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		data := snap.Data()
		fields := make(map[string]any, len(deltas))
		for field, amount := range deltas {
			next := asInt64(data[field]) + amount
			if next < 0 {
				next = 0
			}
			fields[field] = next
		}
		return tx.Set(ref, fields, firestore.MergeAll)
	})
	if err != nil {
		return wrapFirestoreErr(err)
	}
	return nil
}

func (s *FirestoreStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	q := s.client.Collection(collection).Query
	for _, f := range filters {
		q = q.Where(f.Field, "==", f.Value)
	}

	var docs []Document
	it := q.Documents(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, wrapFirestoreErr(err)
		}
		docs = append(docs, Document(snap.Data()))
	}
	return docs, nil
}

func wrapFirestoreErr(err error) error {
	if status.Code(err) == codes.NotFound {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

func asInt64(v any) int64 {
	switch n := v.(type) {
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
