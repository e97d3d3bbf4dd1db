package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/usecase"
	"github.com/iho/bankledger/internal/usecase/mocks"
)

type recordingPrinter struct {
	got []domain.Transaction
}

func (p *recordingPrinter) Print(transactions []domain.Transaction) error {
	p.got = transactions
	return nil
}

var statementDay = time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)

func statementRows() []domain.Transaction {
	return []domain.Transaction{
		domain.NewTransaction("t2", statementDay.Add(time.Hour), domain.MustMoney("-1000"), domain.MustMoney("0")),
		domain.NewTransaction("t1", statementDay, domain.MustMoney("1000"), domain.MustMoney("1000")),
	}
}

func TestStatementUseCase_GetStatement(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockAccountRepository(ctrl)
	queries := mocks.NewMockAccountQueries(ctrl)

	query := domain.StatementQuery{PageRequest: domain.PageRequest{Limit: 2}}
	queries.EXPECT().GetAccountOwner(gomock.Any(), "acc-1").Return("user-1", nil)
	queries.EXPECT().GetStatement(gomock.Any(), "acc-1", query).Return(domain.Page[domain.Transaction]{Items: statementRows()}, nil)

	uc := usecase.NewStatementUseCase(accounts, queries)
	page, err := uc.GetStatement(context.Background(), usecase.StatementInput{AccountID: "acc-1", UserID: "user-1", Query: query})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 2 || page.HasMore {
		t.Fatalf("unexpected page %+v", page)
	}

	queries.EXPECT().GetAccountOwner(gomock.Any(), "acc-1").Return("user-2", nil)
	if _, err := uc.GetStatement(context.Background(), usecase.StatementInput{AccountID: "acc-1", UserID: "user-1"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestStatementUseCase_PrintStatement(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockAccountRepository(ctrl)
	queries := mocks.NewMockAccountQueries(ctrl)

	printer := &recordingPrinter{}
	env := domain.AccountEnv{Clock: domain.NewManualClock(statementDay), IDs: &seqIDs{}, Printer: printer}
	rows := statementRows()
	account := domain.RestoreAccount(env, domain.AccountSnapshot{ID: "acc-1", UserID: "user-1", Status: domain.AccountStatusActive}, []domain.Transaction{rows[1], rows[0]})

	accounts.EXPECT().FindByID(gomock.Any(), "acc-1").Return(account, nil).Times(2)

	uc := usecase.NewStatementUseCase(accounts, queries)
	if err := uc.PrintStatement(context.Background(), "acc-1", "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(printer.got) != 2 {
		t.Fatalf("expected 2 postings printed, got %d", len(printer.got))
	}

	if err := uc.PrintStatement(context.Background(), "acc-1", "intruder"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestStatementUseCase_ExportStatement(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		queries := mocks.NewMockAccountQueries(ctrl)
		queries.EXPECT().GetAccountOwner(gomock.Any(), "acc-1").Return("user-1", nil)
		queries.EXPECT().GetStatement(gomock.Any(), "acc-1", gomock.Any()).Return(domain.Page[domain.Transaction]{Items: statementRows()}, nil)

		uc := usecase.NewStatementUseCase(mocks.NewMockAccountRepository(ctrl), queries)
		export, err := uc.ExportStatement(context.Background(), usecase.StatementInput{AccountID: "acc-1", UserID: "user-1"}, "JSON")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var doc struct {
			AccountID    string `json:"accountId"`
			Transactions []struct {
				Date    string `json:"date"`
				Amount  string `json:"amount"`
				Balance string `json:"balance"`
			} `json:"transactions"`
		}
		if err := json.Unmarshal(export.Body, &doc); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if doc.AccountID != "acc-1" || len(doc.Transactions) != 2 {
			t.Fatalf("unexpected document %+v", doc)
		}
		if doc.Transactions[0].Amount != "-1000.00" || doc.Transactions[0].Balance != "0.00" {
			t.Fatalf("unexpected first row %+v", doc.Transactions[0])
		}
		if doc.Transactions[1].Date != "2024-03-10T14:30:00.000Z" {
			t.Fatalf("unexpected date %s", doc.Transactions[1].Date)
		}
		if export.ContentType != "application/json" {
			t.Fatalf("unexpected content type %s", export.ContentType)
		}
	})

	t.Run("csv follows cursors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		queries := mocks.NewMockAccountQueries(ctrl)
		rows := statementRows()
		next := "t2"

		queries.EXPECT().GetAccountOwner(gomock.Any(), "acc-1").Return("user-1", nil)
		gomock.InOrder(
			queries.EXPECT().GetStatement(gomock.Any(), "acc-1", gomock.Any()).DoAndReturn(
				func(_ context.Context, _ string, q domain.StatementQuery) (domain.Page[domain.Transaction], error) {
					if q.Cursor != "" || q.Limit != domain.MaxPageLimit {
						t.Errorf("unexpected first query %+v", q)
					}
					return domain.Page[domain.Transaction]{Items: rows[:1], NextCursor: &next, HasMore: true}, nil
				}),
			queries.EXPECT().GetStatement(gomock.Any(), "acc-1", gomock.Any()).DoAndReturn(
				func(_ context.Context, _ string, q domain.StatementQuery) (domain.Page[domain.Transaction], error) {
					if q.Cursor != "t2" {
						t.Errorf("expected cursor t2, got %q", q.Cursor)
					}
					return domain.Page[domain.Transaction]{Items: rows[1:]}, nil
				}),
		)

		uc := usecase.NewStatementUseCase(mocks.NewMockAccountRepository(ctrl), queries)
		export, err := uc.ExportStatement(context.Background(), usecase.StatementInput{AccountID: "acc-1", UserID: "user-1"}, "csv")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(export.Body)), "\n")
		want := []string{
			"Date,Amount,Balance",
			"2024-03-10T15:30:00.000Z,-1000.00,0.00",
			"2024-03-10T14:30:00.000Z,1000.00,1000.00",
		}
		if len(lines) != len(want) {
			t.Fatalf("expected %d lines, got %q", len(want), lines)
		}
		for i := range want {
			if lines[i] != want[i] {
				t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
			}
		}
	})

	t.Run("pdf is not implemented", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := usecase.NewStatementUseCase(mocks.NewMockAccountRepository(ctrl), mocks.NewMockAccountQueries(ctrl))

		_, err := uc.ExportStatement(context.Background(), usecase.StatementInput{AccountID: "acc-1", UserID: "user-1"}, "pdf")
		if !errors.Is(err, domain.ErrExportNotImplemented) {
			t.Fatalf("expected ErrExportNotImplemented, got %v", err)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := usecase.NewStatementUseCase(mocks.NewMockAccountRepository(ctrl), mocks.NewMockAccountQueries(ctrl))

		_, err := uc.ExportStatement(context.Background(), usecase.StatementInput{AccountID: "acc-1", UserID: "user-1"}, "xml")
		if !errors.Is(err, domain.ErrUnsupportedExportFormat) {
			t.Fatalf("expected ErrUnsupportedExportFormat, got %v", err)
		}
	})
}
