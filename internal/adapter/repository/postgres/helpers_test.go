package postgres

import (
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v3"

	"github.com/iho/bankledger/internal/domain"
)

var (
	testNow = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	accountColumns     = []string{"id", "user_id", "account_number", "status", "balance", "version", "created_at", "updated_at"}
	transactionColumns = []string{"seq", "id", "account_id", "amount", "balance", "occurred_at"}
)

type seqIDs struct{ n int }

func (s *seqIDs) Generate() string {
	s.n++
	return fmt.Sprintf("id-%03d", s.n)
}

func testEnv() domain.AccountEnv {
	return domain.AccountEnv{Clock: domain.NewManualClock(testNow), IDs: &seqIDs{}}
}

func ts(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgxmock pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func assertExpectations(t *testing.T, pool pgxmock.PgxPoolIface) {
	t.Helper()
	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}
