package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"

	"github.com/iho/bankledger/internal/domain"
)

func TestAccountRepositorySaveInsertsNewAccount(t *testing.T) {
	mockPool := newMockPool(t)
	env := testEnv()
	repo := NewAccountRepository(mockPool, env)

	account := domain.NewAccount(env, domain.NewAccountParams{ID: "acc-1", UserID: "user-1", AccountNumber: "ACC-0001"})
	if err := account.Deposit(domain.MustMoney("100")); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	mockPool.ExpectBegin()
	mockPool.ExpectExec("INSERT INTO accounts").
		WithArgs("acc-1", "user-1", "ACC-0001", "ACTIVE", pgxmock.AnyArg(), int64(1), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectExec("INSERT INTO transactions").
		WithArgs("id-001", "acc-1", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectCommit()

	ctx := context.Background()
	tx, err := NewTxManager(mockPool).Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := repo.Save(ctx, tx, account); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if account.Version() != 1 || len(account.NewTransactions()) != 0 {
		t.Fatalf("expected drained account at version 1, got version %d", account.Version())
	}
	assertExpectations(t, mockPool)
}

func TestAccountRepositorySaveMapsDuplicateNumber(t *testing.T) {
	mockPool := newMockPool(t)
	env := testEnv()
	repo := NewAccountRepository(mockPool, env)
	account := domain.NewAccount(env, domain.NewAccountParams{ID: "acc-1", UserID: "user-1", AccountNumber: "ACC-0001"})

	mockPool.ExpectBegin()
	mockPool.ExpectExec("INSERT INTO accounts").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

	ctx := context.Background()
	tx, err := NewTxManager(mockPool).Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := repo.Save(ctx, tx, account); !errors.Is(err, domain.ErrDuplicateAccountNumber) {
		t.Fatalf("expected ErrDuplicateAccountNumber, got %v", err)
	}
}

func TestAccountRepositorySaveDetectsStaleVersion(t *testing.T) {
	mockPool := newMockPool(t)
	env := testEnv()
	repo := NewAccountRepository(mockPool, env)

	history := []domain.Transaction{
		domain.NewTransaction("t1", testNow.Add(-time.Hour), domain.MustMoney("50"), domain.MustMoney("50")),
	}
	account := domain.RestoreAccount(env, domain.AccountSnapshot{
		ID: "acc-1", UserID: "user-1", AccountNumber: "ACC-0001",
		Status: domain.AccountStatusActive, CreatedAt: testNow.Add(-2 * time.Hour), Version: 4,
	}, history)
	if err := account.Withdraw(domain.MustMoney("20")); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	mockPool.ExpectBegin()
	mockPool.ExpectExec("UPDATE accounts").
		WithArgs("ACTIVE", pgxmock.AnyArg(), int64(5), pgxmock.AnyArg(), "acc-1", int64(4)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ctx := context.Background()
	tx, err := NewTxManager(mockPool).Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := repo.Save(ctx, tx, account); !errors.Is(err, domain.ErrConcurrentModification) {
		t.Fatalf("expected ErrConcurrentModification, got %v", err)
	}
	assertExpectations(t, mockPool)
}

func TestAccountRepositorySaveRejectsForeignTransaction(t *testing.T) {
	mockPool := newMockPool(t)
	env := testEnv()
	repo := NewAccountRepository(mockPool, env)
	account := domain.NewAccount(env, domain.NewAccountParams{UserID: "user-1", AccountNumber: "ACC-0001"})

	if err := repo.Save(context.Background(), otherTx{}, account); !errors.Is(err, ErrForeignTransaction) {
		t.Fatalf("expected ErrForeignTransaction, got %v", err)
	}
}

func TestAccountRepositoryFindByIDRestoresLedger(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewAccountRepository(mockPool, testEnv())
	created := testNow.Add(-48 * time.Hour)

	mockPool.ExpectQuery("FROM accounts WHERE id").
		WithArgs("acc-1").
		WillReturnRows(pgxmock.NewRows(accountColumns).
			AddRow("acc-1", "user-1", "ACC-0001", "ACTIVE", "70.50", int64(3), ts(created), ts(created)))
	mockPool.ExpectQuery("ORDER BY seq ASC").
		WithArgs("acc-1").
		WillReturnRows(pgxmock.NewRows(transactionColumns).
			AddRow(int64(1), "t1", "acc-1", "100.50", "100.50", ts(created.Add(time.Hour))).
			AddRow(int64(2), "t2", "acc-1", "-30", "70.50", ts(created.Add(2*time.Hour))))

	account, err := repo.FindByID(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	if !account.Balance().Equal(domain.MustMoney("70.50")) {
		t.Fatalf("expected balance 70.50, got %s", account.Balance())
	}
	if account.Version() != 3 || account.Status() != domain.AccountStatusActive {
		t.Fatalf("unexpected account version=%d status=%s", account.Version(), account.Status())
	}
	txs := account.Transactions()
	if len(txs) != 2 || txs[1].ID() != "t2" || !txs[1].Amount().Equal(domain.MustMoney("-30")) {
		t.Fatalf("unexpected ledger %+v", txs)
	}
	assertExpectations(t, mockPool)
}

func TestAccountRepositoryFindNotFound(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewAccountRepository(mockPool, testEnv())

	mockPool.ExpectQuery("FROM accounts WHERE id").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)
	mockPool.ExpectQuery("FROM accounts WHERE account_number").
		WithArgs("ACC-404").
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.FindByID(context.Background(), "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if _, err := repo.FindByAccountNumber(context.Background(), "ACC-404"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	assertExpectations(t, mockPool)
}
