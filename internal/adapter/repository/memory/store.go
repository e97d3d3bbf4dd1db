// Package memory holds process-local implementations of the repository
// ports. Writes are staged on a transaction and applied atomically on
// commit, so readers never observe uncommitted postings.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/usecase"
)

// ErrForeignTransaction is returned when a write is handed a transaction
// that was not begun on the same Store.
var ErrForeignTransaction = errors.New("memory: transaction does not belong to this store")

type accountRow struct {
	snap    domain.AccountSnapshot
	balance domain.Money
}

// Store is an in-memory ledger database.
type Store struct {
	mu sync.RWMutex

	env      domain.AccountEnv
	accounts map[string]*accountRow
	byNumber map[string]string
	postings map[string][]domain.Transaction
	users    map[string]*domain.User
	outbox   []*domain.OutboxEvent
}

// NewStore creates an empty Store. Accounts it loads are bound to env.
func NewStore(env domain.AccountEnv) *Store {
	return &Store{
		env:      env,
		accounts: make(map[string]*accountRow),
		byNumber: make(map[string]string),
		postings: make(map[string][]domain.Transaction),
		users:    make(map[string]*domain.User),
	}
}

// Begin starts a transaction. Nothing it stages is visible until Commit.
func (s *Store) Begin(ctx context.Context) (usecase.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &tx{store: s}, nil
}

// op is one staged write: check runs for every op before any apply.
type op struct {
	check func() error
	apply func()
}

type tx struct {
	store *Store
	ops   []op
	done  bool
}

func (t *tx) stage(o op) {
	t.ops = append(t.ops, o)
}

func (t *tx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	for _, o := range t.ops {
		if o.check == nil {
			continue
		}
		if err := o.check(); err != nil {
			return err
		}
	}
	for _, o := range t.ops {
		o.apply()
	}

	t.done = true
	return nil
}

func (t *tx) Rollback(context.Context) error {
	t.ops = nil
	t.done = true
	return nil
}

func (s *Store) own(t usecase.Transaction) (*tx, error) {
	mt, ok := t.(*tx)
	if !ok || mt.store != s {
		return nil, ErrForeignTransaction
	}
	return mt, nil
}

// restore rebuilds an aggregate from a row. Callers hold s.mu.
func (s *Store) restore(row *accountRow) *domain.Account {
	return domain.RestoreAccount(s.env, row.snap, s.postings[row.snap.ID])
}

func stamp(t time.Time) time.Time {
	return t.UTC()
}
