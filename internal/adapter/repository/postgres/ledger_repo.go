package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/infrastructure/postgres/generated"
	"github.com/iho/bankledger/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db DB) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// AccountTotals sums the stored postings of one account next to its
// stored balance.
func (r *LedgerRepository) AccountTotals(ctx context.Context, accountID string) (usecase.LedgerTotals, error) {
	row, err := r.queries.GetAccountTotals(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return usecase.LedgerTotals{}, domain.ErrAccountNotFound
		}
		return usecase.LedgerTotals{}, err
	}

	return usecase.LedgerTotals{
		StoredBalance: numericToMoney(row.StoredBalance),
		SumOfAmounts:  numericToMoney(row.SumOfAmounts),
		LastBalance:   numericToMoney(row.LastBalance),
		Transactions:  row.Transactions,
	}, nil
}
