package http

import (
	"net/http"

	"voltmarket-backend/internal/service"
)

type AccountHandler struct {
	accountSvc service.AccountService
}

func NewAccountHandler(accountSvc service.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountSvc.GetAccount(r.Context(), principal(r).UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

type addFundsRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

func (h *AccountHandler) AddFunds(w http.ResponseWriter, r *http.Request) {
	var req addFundsRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	account, err := h.accountSvc.AddFunds(r.Context(), principal(r).UserID, req.AmountCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}
