package domain

import "time"

// Event types
const (
	EventTypeAccountCreated    = "account.created"
	EventTypeTransactionPosted = "transaction.posted"
	EventTypeAccountClosed     = "account.closed"
)

// AggregateTypeAccount tags events raised by accounts.
const AggregateTypeAccount = "account"

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// AccountCreatedEvent payload
type AccountCreatedEvent struct {
	AccountID     string `json:"account_id"`
	UserID        string `json:"user_id"`
	AccountNumber string `json:"account_number"`
}

// TransactionPostedEvent payload
type TransactionPostedEvent struct {
	TransactionID string `json:"transaction_id"`
	AccountID     string `json:"account_id"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	Balance       string `json:"balance"`
	PostedAt      string `json:"posted_at"`
}

// AccountClosedEvent payload
type AccountClosedEvent struct {
	AccountID string `json:"account_id"`
	ClosedAt  string `json:"closed_at"`
}

// Payload converts an event struct into the generic outbox payload.
func Payload(v any) map[string]any {
	switch e := v.(type) {
	case AccountCreatedEvent:
		return map[string]any{
			"account_id":     e.AccountID,
			"user_id":        e.UserID,
			"account_number": e.AccountNumber,
		}
	case TransactionPostedEvent:
		return map[string]any{
			"transaction_id": e.TransactionID,
			"account_id":     e.AccountID,
			"type":           e.Type,
			"amount":         e.Amount,
			"balance":        e.Balance,
			"posted_at":      e.PostedAt,
		}
	case AccountClosedEvent:
		return map[string]any{
			"account_id": e.AccountID,
			"closed_at":  e.ClosedAt,
		}
	}
	return nil
}

// TransactionPosted builds the event payload for a posting.
func TransactionPosted(accountID string, tx Transaction) TransactionPostedEvent {
	return TransactionPostedEvent{
		TransactionID: tx.ID(),
		AccountID:     accountID,
		Type:          string(tx.Type()),
		Amount:        tx.Amount().StringFixed(2),
		Balance:       tx.Balance().StringFixed(2),
		PostedAt:      tx.Date().Format(time.RFC3339Nano),
	}
}
