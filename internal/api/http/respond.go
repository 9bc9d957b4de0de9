package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
	// BalanceCents is only set for insufficient-funds rejections so the UI
	// can show the user their shortfall.
	BalanceCents *int64 `json:"balance_cents,omitempty"`
	CostCents    *int64 `json:"cost_cents,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var insufficient *domain.InsufficientFundsError
	var transition *domain.InvalidTransitionError

	switch {
	case errors.As(err, &insufficient):
		writeJSON(w, http.StatusPaymentRequired, errorResponse{
			Error:        insufficient.Error(),
			BalanceCents: &insufficient.BalanceCents,
			CostCents:    &insufficient.CostCents,
		})
	case errors.As(err, &transition):
		writeJSON(w, http.StatusConflict, errorResponse{Error: transition.Error()})
	case errors.Is(err, domain.ErrAlreadyRated),
		errors.Is(err, domain.ErrStationUnavailable):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "storage temporarily unavailable"})
	case errors.Is(err, domain.ErrInvalidRating):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
