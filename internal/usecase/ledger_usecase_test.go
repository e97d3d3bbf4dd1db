package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/usecase"
	"github.com/iho/bankledger/internal/usecase/mocks"
)

func TestLedgerUseCase_CheckAccountConsistency(t *testing.T) {
	m := domain.MustMoney

	tests := []struct {
		name        string
		totals      usecase.LedgerTotals
		repoErr     error
		expectedErr error
	}{
		{
			name:   "consistent ledger",
			totals: usecase.LedgerTotals{StoredBalance: m("150.75"), SumOfAmounts: m("150.75"), LastBalance: m("150.75"), Transactions: 3},
		},
		{
			name:   "empty account",
			totals: usecase.LedgerTotals{StoredBalance: domain.Zero(), SumOfAmounts: domain.Zero()},
		},
		{
			name:        "repo error surfaces",
			repoErr:     errors.New("db down"),
			expectedErr: errors.New("db down"),
		},
		{
			name:        "stored balance differs from sum",
			totals:      usecase.LedgerTotals{StoredBalance: m("10"), SumOfAmounts: m("9"), LastBalance: m("10"), Transactions: 2},
			expectedErr: usecase.ErrInconsistentLedger,
		},
		{
			name:        "latest posting differs",
			totals:      usecase.LedgerTotals{StoredBalance: m("10"), SumOfAmounts: m("10"), LastBalance: m("12"), Transactions: 2},
			expectedErr: usecase.ErrInconsistentLedger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockLedgerRepository(ctrl)
			repo.EXPECT().AccountTotals(gomock.Any(), "acc-1").Return(tt.totals, tt.repoErr)

			uc := usecase.NewLedgerUseCase(repo)
			_, err := uc.CheckAccountConsistency(context.Background(), "acc-1")

			if tt.expectedErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.expectedErr)
			}
			if errors.Is(tt.expectedErr, usecase.ErrInconsistentLedger) && !errors.Is(err, usecase.ErrInconsistentLedger) {
				t.Fatalf("expected ErrInconsistentLedger, got %v", err)
			}
			if !errors.Is(tt.expectedErr, usecase.ErrInconsistentLedger) && err.Error() != tt.expectedErr.Error() {
				t.Fatalf("expected %v, got %v", tt.expectedErr, err)
			}
		})
	}
}
