package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/bankledger/internal/adapter/http/dto"
	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	Deposit(ctx context.Context, input usecase.AccountAmountInput) (*domain.Account, error)
	Withdraw(ctx context.Context, input usecase.AccountAmountInput) (*domain.Account, error)
	CloseAccount(ctx context.Context, accountID, userID string) (*domain.Account, error)
	GetBalance(ctx context.Context, accountID, userID string) (domain.Money, error)
	ListAccounts(ctx context.Context, userID string, req domain.PageRequest) (domain.Page[domain.AccountListView], error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create opens an account for the caller.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		writeDomainError(w, "failed to create account", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// List pages through the caller's accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	page, err := h.accountUC.ListAccounts(r.Context(), userID, pageRequest(r))
	if err != nil {
		writeDomainError(w, "failed to list accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsPage(page))
}

// Balance returns the current balance of an account.
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	balance, err := h.accountUC.GetBalance(r.Context(), id, userID)
	if err != nil {
		writeDomainError(w, "failed to get balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{AccountID: id, Balance: balance.StringFixed(2)})
}

// Deposit credits an account.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, "failed to deposit", h.accountUC.Deposit)
}

// Withdraw debits an account.
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, "failed to withdraw", h.accountUC.Withdraw)
}

// Close closes an account with a zero balance.
func (h *AccountHandler) Close(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	account, err := h.accountUC.CloseAccount(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeDomainError(w, "failed to close account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

func (h *AccountHandler) post(
	w http.ResponseWriter,
	r *http.Request,
	message string,
	apply func(context.Context, usecase.AccountAmountInput) (*domain.Account, error),
) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := apply(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id"), userID))
	if err != nil {
		writeDomainError(w, message, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}
