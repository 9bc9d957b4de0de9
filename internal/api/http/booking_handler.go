package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"voltmarket-backend/internal/cache"
	"voltmarket-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
	ratingSvc  service.RatingService
	sessions   *cache.ActiveSessionStore
}

func NewBookingHandler(bookingSvc service.BookingService, ratingSvc service.RatingService, sessions *cache.ActiveSessionStore) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc, ratingSvc: ratingSvc, sessions: sessions}
}

type createBookingRequest struct {
	StationID       string    `json:"station_id"`
	StartAt         time.Time `json:"start_at"`
	DurationMinutes int64     `json:"duration_minutes"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	booking, err := h.bookingSvc.CreateBooking(r.Context(), principal(r).UserID, req.StationID, req.StartAt, req.DurationMinutes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingSvc.GetBooking(r.Context(), principal(r).UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingSvc.ListUserBookings(r.Context(), principal(r).UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) StartCharging(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingSvc.StartCharging(r.Context(), principal(r).UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	// Ownership is checked before the (principal-less) completion path.
	id := mux.Vars(r)["id"]
	if _, err := h.bookingSvc.GetBooking(r.Context(), principal(r).UserID, id); err != nil {
		writeError(w, err)
		return
	}
	if err := h.bookingSvc.CompleteBooking(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.bookingSvc.CancelBooking(r.Context(), principal(r).UserID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

type ratingRequest struct {
	Rating int64 `json:"rating"`
}

func (h *BookingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req ratingRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.ratingSvc.SubmitRating(r.Context(), principal(r).UserID, mux.Vars(r)["id"], req.Rating); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rated"})
}

// Session returns the live countdown snapshot for a charging booking from
// the active-session cache; 204 when nothing is cached.
func (h *BookingHandler) Session(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := h.bookingSvc.GetBooking(r.Context(), principal(r).UserID, id); err != nil {
		writeError(w, err)
		return
	}
	if h.sessions == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	session, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "session cache unavailable"})
		return
	}
	if session == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, session)
}
