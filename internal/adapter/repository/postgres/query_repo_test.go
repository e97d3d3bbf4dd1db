package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"

	"github.com/iho/bankledger/internal/domain"
)

func TestQueryRepositoryGetStatementFirstPage(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewQueryRepository(mockPool, domain.NewManualClock(testNow))

	start, end := domain.DefaultStatementRange(testNow)
	mockPool.ExpectQuery("ORDER BY occurred_at DESC, id DESC").
		WithArgs("acc-1", ts(start), ts(end), int32(3)).
		WillReturnRows(pgxmock.NewRows(transactionColumns).
			AddRow(int64(3), "t3", "acc-1", "5", "35", ts(testNow.Add(-time.Hour))).
			AddRow(int64(2), "t2", "acc-1", "10", "30", ts(testNow.Add(-2*time.Hour))).
			AddRow(int64(1), "t1", "acc-1", "20", "20", ts(testNow.Add(-3*time.Hour))))

	page, err := repo.GetStatement(context.Background(), "acc-1", domain.StatementQuery{PageRequest: domain.PageRequest{Limit: 2}})
	if err != nil {
		t.Fatalf("statement: %v", err)
	}

	if len(page.Items) != 2 || !page.HasMore {
		t.Fatalf("expected 2 items with more, got %+v", page)
	}
	if page.NextCursor == nil || *page.NextCursor != "t2" {
		t.Fatalf("expected cursor t2, got %v", page.NextCursor)
	}
	assertExpectations(t, mockPool)
}

func TestQueryRepositoryGetStatementAfterCursor(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewQueryRepository(mockPool, domain.NewManualClock(testNow))

	from := testNow.Add(-24 * time.Hour)
	cursorAt := testNow.Add(-2 * time.Hour)

	mockPool.ExpectQuery("SELECT id, occurred_at FROM transactions").
		WithArgs("t2", "acc-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "occurred_at"}).AddRow("t2", ts(cursorAt)))
	mockPool.ExpectQuery(`\(occurred_at, id\) <`).
		WithArgs("acc-1", ts(from), ts(testNow), ts(cursorAt), "t2", int32(3)).
		WillReturnRows(pgxmock.NewRows(transactionColumns).
			AddRow(int64(1), "t1", "acc-1", "20", "20", ts(testNow.Add(-3*time.Hour))))

	query := domain.StatementQuery{PageRequest: domain.PageRequest{Limit: 2, Cursor: "t2"}, StartDate: &from}
	page, err := repo.GetStatement(context.Background(), "acc-1", query)
	if err != nil {
		t.Fatalf("statement: %v", err)
	}

	if len(page.Items) != 1 || page.HasMore || page.NextCursor != nil {
		t.Fatalf("expected final page, got %+v", page)
	}
	if page.Items[0].ID() != "t1" {
		t.Fatalf("expected t1, got %s", page.Items[0].ID())
	}
	assertExpectations(t, mockPool)
}

func TestQueryRepositoryGetStatementUnknownCursor(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewQueryRepository(mockPool, domain.NewManualClock(testNow))

	mockPool.ExpectQuery("SELECT id, occurred_at FROM transactions").
		WithArgs("nope", "acc-1").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetStatement(context.Background(), "acc-1", domain.StatementQuery{PageRequest: domain.PageRequest{Limit: 10, Cursor: "nope"}})
	if !errors.Is(err, domain.ErrInvalidCursor) {
		t.Fatalf("expected ErrInvalidCursor, got %v", err)
	}
}

func TestQueryRepositoryBalanceAndOwner(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewQueryRepository(mockPool, domain.NewManualClock(testNow))

	mockPool.ExpectQuery("SELECT user_id FROM accounts").
		WithArgs("acc-1").
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow("user-1"))
	mockPool.ExpectQuery("SELECT balance FROM accounts").
		WithArgs("acc-1").
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow("1234.56"))
	mockPool.ExpectQuery("SELECT user_id FROM accounts").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	owner, err := repo.GetAccountOwner(context.Background(), "acc-1")
	if err != nil || owner != "user-1" {
		t.Fatalf("unexpected owner %q err=%v", owner, err)
	}

	balance, err := repo.GetBalance(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance.StringFixed(2) != "1234.56" {
		t.Fatalf("expected 1234.56, got %s", balance)
	}

	if _, err := repo.GetAccountOwner(context.Background(), "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	assertExpectations(t, mockPool)
}

func TestQueryRepositoryListAccountsByUser(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewQueryRepository(mockPool, domain.NewManualClock(testNow))
	cursorAt := testNow.Add(-time.Hour)

	mockPool.ExpectQuery("FROM accounts WHERE id").
		WithArgs("acc-2").
		WillReturnRows(pgxmock.NewRows(accountColumns).
			AddRow("acc-2", "user-1", "ACC-0002", "ACTIVE", "0", int64(1), ts(cursorAt), ts(cursorAt)))
	mockPool.ExpectQuery(`\(created_at, id\) <`).
		WithArgs("user-1", ts(cursorAt), "acc-2", int32(2)).
		WillReturnRows(pgxmock.NewRows(accountColumns).
			AddRow("acc-1", "user-1", "ACC-0001", "CLOSED", "0", int64(3), ts(cursorAt.Add(-time.Hour)), ts(cursorAt)))

	page, err := repo.ListAccountsByUser(context.Background(), "user-1", domain.PageRequest{Limit: 1, Cursor: "acc-2"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 1 || page.HasMore {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Items[0].ID != "acc-1" || page.Items[0].Status != domain.AccountStatusClosed {
		t.Fatalf("unexpected item %+v", page.Items[0])
	}
	assertExpectations(t, mockPool)
}

func TestQueryRepositoryListAccountsRejectsOtherUsersCursor(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewQueryRepository(mockPool, domain.NewManualClock(testNow))

	mockPool.ExpectQuery("FROM accounts WHERE id").
		WithArgs("acc-9").
		WillReturnRows(pgxmock.NewRows(accountColumns).
			AddRow("acc-9", "user-2", "ACC-0009", "ACTIVE", "0", int64(1), ts(testNow), ts(testNow)))

	_, err := repo.ListAccountsByUser(context.Background(), "user-1", domain.PageRequest{Limit: 5, Cursor: "acc-9"})
	if !errors.Is(err, domain.ErrInvalidCursor) {
		t.Fatalf("expected ErrInvalidCursor, got %v", err)
	}
}
