package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/bankledger/internal/adapter/http/dto"
	"github.com/iho/bankledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	CheckAccountConsistency(ctx context.Context, accountID string) (usecase.LedgerTotals, error)
}

// LedgerHandler handles ledger integrity checks.
type LedgerHandler struct {
	ledgerUC LedgerService
	accounts AccountService
}

// NewLedgerHandler creates a new LedgerHandler. Ownership is checked via
// the account service before the totals are read.
func NewLedgerHandler(ledgerUC LedgerService, accounts AccountService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, accounts: accounts}
}

// CheckConsistency verifies that an account's stored balance matches its postings.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	if _, err := h.accounts.GetBalance(r.Context(), id, userID); err != nil {
		writeDomainError(w, "failed to check consistency", err)
		return
	}

	totals, err := h.ledgerUC.CheckAccountConsistency(r.Context(), id)
	resp := dto.ConsistencyResponse{
		AccountID:     id,
		Consistent:    err == nil,
		StoredBalance: totals.StoredBalance.StringFixed(2),
		SumOfAmounts:  totals.SumOfAmounts.StringFixed(2),
		Transactions:  totals.Transactions,
	}

	if err != nil {
		if errors.Is(err, usecase.ErrInconsistentLedger) {
			writeJSON(w, http.StatusConflict, resp)
			return
		}
		writeDomainError(w, "failed to check consistency", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
