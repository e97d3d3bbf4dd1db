package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultBalanceCacheTTL bounds how stale a cached balance can be
	DefaultBalanceCacheTTL = 30 * time.Second

	// ExportRowLimit caps the rows rendered by a statement export
	ExportRowLimit = 1000
)
