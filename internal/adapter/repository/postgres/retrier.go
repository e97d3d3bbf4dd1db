package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/iho/bankledger/internal/domain"
)

// PostgreSQL error codes for retryable errors.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
)

// DefaultMaxRetries bounds how often a stale save is replayed.
const DefaultMaxRetries = 3

// Retrier implements usecase.Retrier with exponential backoff. It replays
// operations that lost an optimistic version check or hit a deadlock or
// serialization failure.
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          zerolog.Logger
}

// NewRetrier creates a new retrier. maxRetries <= 0 selects DefaultMaxRetries.
func NewRetrier(maxRetries int, logger zerolog.Logger) *Retrier {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Retrier{
		maxRetries:      maxRetries,
		initialInterval: 20 * time.Millisecond,
		maxInterval:     500 * time.Millisecond,
		maxElapsedTime:  5 * time.Second,
		logger:          logger,
	}
}

// Retry executes an operation with exponential backoff on retryable errors.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	retryCount := 0

	err := backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !isRetryableError(err) {
			return backoff.Permanent(err)
		}

		retryCount++
		if retryCount > r.maxRetries {
			return backoff.Permanent(err)
		}

		r.logger.Warn().
			Err(err).
			Int("retry", retryCount).
			Msg("retryable write conflict, retrying")

		return err
	}, backoff.WithContext(b, ctx))

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return permanent.Err
	}
	return err
}

// isRetryableError reports whether the operation may succeed on a fresh attempt.
func isRetryableError(err error) bool {
	if errors.Is(err, domain.ErrConcurrentModification) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrDeadlock, pgErrSerializationFailure:
			return true
		}
	}
	return false
}
