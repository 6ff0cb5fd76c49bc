// Package api exposes the engine over a JSON HTTP surface.
//
// The API is the boundary shell around the pure engine: it converts display
// decimals to integer minor units on the way in (rejecting anything that is
// not a whole number of minor units) and renders minor units back to display
// strings on the way out.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mohitk/splitledger/internal/ledger"
	"github.com/mohitk/splitledger/internal/money"
	"github.com/mohitk/splitledger/internal/service"
	"github.com/mohitk/splitledger/internal/storage"
)

// API holds the services and currency settings behind the HTTP surface.
type API struct {
	ledgerSvc *service.LedgerService
	debtSvc   *service.DebtService
	currency  money.Currency
}

// New creates the API over the given services.
func New(ledgerSvc *service.LedgerService, debtSvc *service.DebtService, currency money.Currency) *API {
	return &API{ledgerSvc: ledgerSvc, debtSvc: debtSvc, currency: currency}
}

// Routes registers all handlers on the given mux.
func (a *API) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/groups", a.createGroup)
	mux.HandleFunc("GET /api/groups/{id}", a.getGroup)
	mux.HandleFunc("POST /api/groups/{id}/expenses", a.createExpense)
	mux.HandleFunc("POST /api/groups/{id}/transfers", a.createTransfer)
	mux.HandleFunc("GET /api/groups/{id}/balances", a.getBalances)
	mux.HandleFunc("GET /api/groups/{id}/plan", a.getPlan)
	mux.HandleFunc("POST /api/groups/{id}/plan/commit", a.commitPlan)
	mux.HandleFunc("POST /api/debts", a.createDebt)
	mux.HandleFunc("GET /api/debts/{id}", a.getDebt)
	mux.HandleFunc("POST /api/debts/{id}/settlements", a.settleDebt)
	mux.HandleFunc("GET /api/participants/{id}/debts", a.listDebts)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON marshals data into a response with content-type application/json.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps a domain error onto an HTTP status and JSON body.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *ledger.ValidationError
	var amountErr *ledger.InvalidAmountError
	var invariantErr *ledger.InvariantViolationError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{validationErr.Error()})
	case errors.As(err, &amountErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{amountErr.Error()})
	case errors.As(err, &invariantErr):
		// Money unaccounted for: an upstream defect, reported as such.
		writeJSON(w, http.StatusInternalServerError, errorResponse{invariantErr.Error()})
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{err.Error()})
	}
}

// writeBadRequest reports a malformed request body.
func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{msg})
}

// parseAmount converts a display decimal string into minor units.
func (a *API) parseAmount(s string) (int64, error) {
	return money.Parse(s, a.currency)
}

// format renders minor units as a display string with the currency symbol.
func (a *API) format(minor int64) string {
	return money.Format(minor, a.currency)
}
