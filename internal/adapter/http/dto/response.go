package dto

import (
	"time"

	"github.com/iho/bankledger/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	AccountNumber string    `json:"accountNumber"`
	Status        string    `json:"status"`
	Balance       string    `json:"balance"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID(),
		UserID:        a.UserID(),
		AccountNumber: a.AccountNumber(),
		Status:        string(a.Status()),
		Balance:       a.Balance().StringFixed(2),
		CreatedAt:     a.CreatedAt(),
	}
}

// AccountListItem represents one row of an account listing.
type AccountListItem struct {
	ID            string    `json:"id"`
	AccountNumber string    `json:"accountNumber"`
	Balance       string    `json:"balance"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TransactionResponse represents a posting in API responses.
type TransactionResponse struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Type    string    `json:"type"`
	Amount  string    `json:"amount"`
	Balance string    `json:"balance"`
}

// PageResponse is the cursor pagination envelope.
type PageResponse[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"nextCursor"`
	HasMore    bool    `json:"hasMore"`
}

// TransactionsPage converts a page of postings.
func TransactionsPage(p domain.Page[domain.Transaction]) PageResponse[TransactionResponse] {
	items := make([]TransactionResponse, len(p.Items))
	for i, tx := range p.Items {
		items[i] = TransactionResponse{
			ID:      tx.ID(),
			Date:    tx.Date(),
			Type:    string(tx.Type()),
			Amount:  tx.Amount().StringFixed(2),
			Balance: tx.Balance().StringFixed(2),
		}
	}
	return PageResponse[TransactionResponse]{Items: items, NextCursor: p.NextCursor, HasMore: p.HasMore}
}

// AccountsPage converts a page of account listings.
func AccountsPage(p domain.Page[domain.AccountListView]) PageResponse[AccountListItem] {
	items := make([]AccountListItem, len(p.Items))
	for i, a := range p.Items {
		items[i] = AccountListItem{
			ID:            a.ID,
			AccountNumber: a.AccountNumber,
			Balance:       a.Balance.StringFixed(2),
			Status:        string(a.Status),
			CreatedAt:     a.CreatedAt,
		}
	}
	return PageResponse[AccountListItem]{Items: items, NextCursor: p.NextCursor, HasMore: p.HasMore}
}

// BalanceResponse represents an account balance.
type BalanceResponse struct {
	AccountID string `json:"accountId"`
	Balance   string `json:"balance"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID    string `json:"id"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserFromDomain converts domain user to response.
func UserFromDomain(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Phone: u.Phone, Name: u.Name}
}

// ConsistencyResponse reports a ledger check.
type ConsistencyResponse struct {
	AccountID     string `json:"accountId"`
	Consistent    bool   `json:"consistent"`
	StoredBalance string `json:"storedBalance"`
	SumOfAmounts  string `json:"sumOfAmounts"`
	Transactions  int64  `json:"transactions"`
}

// MessageResponse carries a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
