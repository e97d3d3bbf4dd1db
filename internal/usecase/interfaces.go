package usecase

import (
	"context"
	"time"

	"github.com/iho/bankledger/internal/domain"
)

// AccountRepository loads and stores account aggregates.
type AccountRepository interface {
	// FindByID returns domain.ErrAccountNotFound when the id does not resolve.
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByAccountNumber(ctx context.Context, number string) (*domain.Account, error)
	// Save writes the account metadata and its pending postings inside tx.
	// A taken account number maps to domain.ErrDuplicateAccountNumber and a
	// stale version to domain.ErrConcurrentModification.
	Save(ctx context.Context, tx Transaction, account *domain.Account) error
}

// AccountQueries is the read side used for balances, statements and listings.
type AccountQueries interface {
	// GetAccountOwner returns the owning user id or domain.ErrAccountNotFound.
	GetAccountOwner(ctx context.Context, accountID string) (string, error)
	GetBalance(ctx context.Context, accountID string) (domain.Money, error)
	GetStatement(ctx context.Context, accountID string, query domain.StatementQuery) (domain.Page[domain.Transaction], error)
	ListAccountsByUser(ctx context.Context, userID string, req domain.PageRequest) (domain.Page[domain.AccountListView], error)
}

// LedgerTotals summarises the stored ledger of one account.
type LedgerTotals struct {
	StoredBalance domain.Money
	SumOfAmounts  domain.Money
	LastBalance   domain.Money
	Transactions  int64
}

// LedgerRepository defines data access for ledger-wide checks.
type LedgerRepository interface {
	AccountTotals(ctx context.Context, accountID string) (LedgerTotals, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	// Create returns domain.ErrUserAlreadyExists when the phone is taken.
	Create(ctx context.Context, user *domain.User) error
	// GetByPhone returns domain.ErrUserNotFound when no user matches.
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation while it fails with a retryable error.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claim so the key can be retried.
	Release(ctx context.Context, key string) error
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Generate(user *domain.User) (string, error)
}

// Recorder receives business metrics.
type Recorder interface {
	AccountCreated()
	AccountClosed()
	Posted(kind domain.TransactionType, amount domain.Money)
	OperationFailed(operation string, err error)
	ConcurrencyConflict()
	SaveDuration(d time.Duration)
}
