package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"voltmarket-backend/internal/service"
)

type AdminHandler struct {
	adminSvc service.AdminService
}

func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	stations, err := h.adminSvc.ListPendingStations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stations)
}

type reviewRequest struct {
	Approve bool `json:"approve"`
}

func (h *AdminHandler) Review(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.adminSvc.ReviewStation(r.Context(), mux.Vars(r)["id"], req.Approve); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reviewed"})
}

type suspendRequest struct {
	Reason string `json:"reason"`
}

func (h *AdminHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	var req suspendRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.adminSvc.SuspendStation(r.Context(), mux.Vars(r)["id"], req.Reason); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "suspended"})
}

func (h *AdminHandler) Reinstate(w http.ResponseWriter, r *http.Request) {
	if err := h.adminSvc.ReinstateStation(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reinstated"})
}
