package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/bankledger/internal/adapter/http/dto"
	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/usecase"
)

type ledgerServiceFunc func(ctx context.Context, accountID string) (usecase.LedgerTotals, error)

func (f ledgerServiceFunc) CheckAccountConsistency(ctx context.Context, accountID string) (usecase.LedgerTotals, error) {
	return f(ctx, accountID)
}

func TestLedgerHandler_CheckConsistency(t *testing.T) {
	owner := &accountServiceStub{
		balanceFn: func(ctx context.Context, accountID, userID string) (domain.Money, error) {
			if userID != "user-1" {
				return domain.Money{}, domain.ErrForbidden
			}
			return domain.MustMoney("10"), nil
		},
	}

	totals := usecase.LedgerTotals{
		StoredBalance: domain.MustMoney("10"),
		SumOfAmounts:  domain.MustMoney("10"),
		LastBalance:   domain.MustMoney("10"),
		Transactions:  2,
	}

	t.Run("consistent", func(t *testing.T) {
		handler := NewLedgerHandler(ledgerServiceFunc(func(ctx context.Context, accountID string) (usecase.LedgerTotals, error) {
			return totals, nil
		}), owner)

		rec := httptest.NewRecorder()
		handler.CheckConsistency(rec, newRequest(http.MethodGet, "/accounts/acc-1/consistency", "", "user-1", "acc-1"))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp dto.ConsistencyResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if !resp.Consistent || resp.Transactions != 2 || resp.StoredBalance != "10.00" {
			t.Fatalf("unexpected response %+v", resp)
		}
	})

	t.Run("inconsistent", func(t *testing.T) {
		handler := NewLedgerHandler(ledgerServiceFunc(func(ctx context.Context, accountID string) (usecase.LedgerTotals, error) {
			return totals, fmt.Errorf("%w: drift", usecase.ErrInconsistentLedger)
		}), owner)

		rec := httptest.NewRecorder()
		handler.CheckConsistency(rec, newRequest(http.MethodGet, "/accounts/acc-1/consistency", "", "user-1", "acc-1"))
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("not owner", func(t *testing.T) {
		handler := NewLedgerHandler(ledgerServiceFunc(func(ctx context.Context, accountID string) (usecase.LedgerTotals, error) {
			t.Fatal("totals should not be read for a foreign account")
			return usecase.LedgerTotals{}, nil
		}), owner)

		rec := httptest.NewRecorder()
		handler.CheckConsistency(rec, newRequest(http.MethodGet, "/accounts/acc-1/consistency", "", "user-2", "acc-1"))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}
