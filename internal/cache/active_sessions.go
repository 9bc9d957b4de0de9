// Package cache keeps a short-lived Redis mirror of active charging sessions
// so presentation code can poll remaining time without hitting the document
// store once a second.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ActiveSession is the cached view of one charging booking.
type ActiveSession struct {
	BookingID        string `json:"booking_id"`
	UserID           string `json:"user_id"`
	StationID        string `json:"station_id"`
	RemainingSeconds int64  `json:"remaining_seconds"`
}

// ActiveSessionStore manages the active session cache.
type ActiveSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewActiveSessionStore(client *redis.Client, ttl time.Duration) *ActiveSessionStore {
	return &ActiveSessionStore{client: client, ttl: ttl}
}

func (s *ActiveSessionStore) key(bookingID string) string {
	return fmt.Sprintf("charging:active:%s", bookingID)
}

// Save caches the session snapshot.
func (s *ActiveSessionStore) Save(ctx context.Context, session ActiveSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(session.BookingID), data, s.ttl).Err()
}

// Get returns the cached session, or nil when not cached.
func (s *ActiveSessionStore) Get(ctx context.Context, bookingID string) (*ActiveSession, error) {
	result, err := s.client.Get(ctx, s.key(bookingID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session ActiveSession
	if err := json.Unmarshal([]byte(result), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete removes the cached session.
func (s *ActiveSessionStore) Delete(ctx context.Context, bookingID string) error {
	return s.client.Del(ctx, s.key(bookingID)).Err()
}
