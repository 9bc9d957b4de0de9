package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"voltmarket-backend/internal/domain"
	"voltmarket-backend/internal/security"
)

// NewRouter assembles the full API surface.
func NewRouter(
	tokens security.TokenManager,
	authHandler *AuthHandler,
	bookingHandler *BookingHandler,
	stationHandler *StationHandler,
	accountHandler *AccountHandler,
	adminHandler *AdminHandler,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Public
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/signup-company", authHandler.SignupCompany).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Authenticated
	api := r.PathPrefix("/").Subrouter()
	api.Use(AuthMiddleware(tokens))

	api.HandleFunc("/stations", stationHandler.ListActive).Methods(http.MethodGet)
	api.HandleFunc("/stations/{id}", stationHandler.Get).Methods(http.MethodGet)

	api.HandleFunc("/bookings", bookingHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/bookings", bookingHandler.ListMine).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", bookingHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/start", bookingHandler.StartCharging).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/complete", bookingHandler.Complete).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/cancel", bookingHandler.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/rating", bookingHandler.Rate).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/session", bookingHandler.Session).Methods(http.MethodGet)

	api.HandleFunc("/account", accountHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/account/funds", accountHandler.AddFunds).Methods(http.MethodPost)

	// Company
	api.HandleFunc("/company/stations", requireRole(domain.UserRoleCompany, stationHandler.Register)).Methods(http.MethodPost)
	api.HandleFunc("/company/stations", requireRole(domain.UserRoleCompany, stationHandler.ListCompany)).Methods(http.MethodGet)
	api.HandleFunc("/company/stations/{id}/availability", requireRole(domain.UserRoleCompany, stationHandler.SetAvailability)).Methods(http.MethodPatch)
	api.HandleFunc("/company/stations/{id}/bookings", requireRole(domain.UserRoleCompany, stationHandler.Bookings)).Methods(http.MethodGet)

	// Admin moderation
	api.HandleFunc("/admin/stations/pending", requireRole(domain.UserRoleAdmin, adminHandler.ListPending)).Methods(http.MethodGet)
	api.HandleFunc("/admin/stations/{id}/review", requireRole(domain.UserRoleAdmin, adminHandler.Review)).Methods(http.MethodPost)
	api.HandleFunc("/admin/stations/{id}/suspend", requireRole(domain.UserRoleAdmin, adminHandler.Suspend)).Methods(http.MethodPost)
	api.HandleFunc("/admin/stations/{id}/reinstate", requireRole(domain.UserRoleAdmin, adminHandler.Reinstate)).Methods(http.MethodPost)

	return r
}
