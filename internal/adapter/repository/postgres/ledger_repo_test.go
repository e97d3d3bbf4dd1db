package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"

	"github.com/iho/bankledger/internal/domain"
)

func TestLedgerRepositoryAccountTotals(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewLedgerRepository(mockPool)

	mockPool.ExpectQuery("LEFT JOIN transactions").
		WithArgs("acc-1").
		WillReturnRows(pgxmock.NewRows([]string{"stored_balance", "sum_of_amounts", "last_balance", "transactions"}).
			AddRow("75.25", "75.25", "75.25", int64(4)))
	mockPool.ExpectQuery("LEFT JOIN transactions").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	totals, err := repo.AccountTotals(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if !totals.StoredBalance.Equal(domain.MustMoney("75.25")) || totals.Transactions != 4 {
		t.Fatalf("unexpected totals %+v", totals)
	}

	if _, err := repo.AccountTotals(context.Background(), "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	assertExpectations(t, mockPool)
}
