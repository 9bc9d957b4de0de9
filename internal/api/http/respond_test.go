package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/security"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", errors.Join(domain.ErrNotFound, errors.New("context")), http.StatusNotFound},
		{"unauthorized", domain.ErrUnauthorized, http.StatusForbidden},
		{"station unavailable", domain.ErrStationUnavailable, http.StatusConflict},
		{"already rated", domain.ErrAlreadyRated, http.StatusConflict},
		{"invalid transition", &domain.InvalidTransitionError{Action: "cancel", From: domain.BookingStatusCharging}, http.StatusConflict},
		{"store unavailable", domain.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"invalid rating", domain.ErrInvalidRating, http.StatusBadRequest},
		{"anything else", errors.New("bad input"), http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWriteError_InsufficientFundsPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, &domain.InsufficientFundsError{BalanceCents: 1000, CostCents: 6000})

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	var body errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.BalanceCents)
	require.NotNil(t, body.CostCents)
	assert.Equal(t, int64(1000), *body.BalanceCents)
	assert.Equal(t, int64(6000), *body.CostCents)
}

func TestAuthMiddleware(t *testing.T) {
	tokens := security.NewTokenManager("test-secret-key-at-least-32-characters", time.Hour)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := principal(r)
		require.NotNil(t, claims)
		writeJSON(w, http.StatusOK, map[string]string{"user_id": claims.UserID})
	})
	handler := AuthMiddleware(tokens)(next)

	t.Run("valid token", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken("user-1", "USER", "")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "user-1")
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	next := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
	guarded := requireRole(domain.UserRoleAdmin, next)

	t.Run("matching role", func(t *testing.T) {
		claims := &security.UserClaims{UserID: "admin-1", Role: string(domain.UserRoleAdmin)}
		req := httptest.NewRequest(http.MethodGet, "/admin/stations/pending", nil)
		req = req.WithContext(context.WithValue(req.Context(), principalKey, claims))
		rec := httptest.NewRecorder()
		guarded(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		claims := &security.UserClaims{UserID: "user-1", Role: string(domain.UserRoleUser)}
		req := httptest.NewRequest(http.MethodGet, "/admin/stations/pending", nil)
		req = req.WithContext(context.WithValue(req.Context(), principalKey, claims))
		rec := httptest.NewRecorder()
		guarded(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no principal", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/stations/pending", nil)
		rec := httptest.NewRecorder()
		guarded(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
