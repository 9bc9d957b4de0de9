package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/service"
)

type StationHandler struct {
	stationSvc service.StationService
	bookingSvc service.BookingService
}

func NewStationHandler(stationSvc service.StationService, bookingSvc service.BookingService) *StationHandler {
	return &StationHandler{stationSvc: stationSvc, bookingSvc: bookingSvc}
}

type stationView struct {
	domain.Station
	AverageRating float64 `json:"average_rating"`
	CompanyName   string  `json:"company_name,omitempty"`
}

func stationViews(stations []domain.Station) []stationView {
	views := make([]stationView, 0, len(stations))
	for _, st := range stations {
		views = append(views, stationView{Station: st, AverageRating: st.AverageRating()})
	}
	return views
}

func (h *StationHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	stations, err := h.stationSvc.ListActiveStations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stationViews(stations))
}

func (h *StationHandler) Get(w http.ResponseWriter, r *http.Request) {
	station, company, err := h.stationSvc.GetStation(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stationView{
		Station:       *station,
		AverageRating: station.AverageRating(),
		CompanyName:   company.Name,
	})
}

type registerStationRequest struct {
	Name                string `json:"name"`
	Address             string `json:"address"`
	TotalChargers       int64  `json:"total_chargers"`
	PricePerMinuteCents int64  `json:"price_per_minute_cents"`
}

func (h *StationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerStationRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	station, err := h.stationSvc.RegisterStation(r.Context(), principal(r).CompanyID,
		req.Name, req.Address, req.TotalChargers, req.PricePerMinuteCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, station)
}

func (h *StationHandler) ListCompany(w http.ResponseWriter, r *http.Request) {
	stations, err := h.stationSvc.ListCompanyStations(r.Context(), principal(r).CompanyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stationViews(stations))
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

func (h *StationHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.stationSvc.SetAvailability(r.Context(), principal(r).CompanyID, mux.Vars(r)["id"], req.Available); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Bookings lists a station's booking history for its owning company.
func (h *StationHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	stationID := mux.Vars(r)["id"]
	station, _, err := h.stationSvc.GetStation(r.Context(), stationID)
	if err != nil {
		writeError(w, err)
		return
	}
	if station.CompanyID != principal(r).CompanyID {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
		return
	}
	bookings, err := h.bookingSvc.ListStationBookings(r.Context(), stationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
