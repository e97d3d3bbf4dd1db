package usecase

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInconsistentLedger is returned when an account's stored balance
	// disagrees with its postings.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: balance does not match postings")
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// CheckAccountConsistency verifies that the stored balance equals the sum of
// the account's postings and the balance carried by its latest posting.
func (uc *LedgerUseCase) CheckAccountConsistency(ctx context.Context, accountID string) (LedgerTotals, error) {
	totals, err := uc.ledgerRepo.AccountTotals(ctx, accountID)
	if err != nil {
		return LedgerTotals{}, err
	}

	if !totals.StoredBalance.Equal(totals.SumOfAmounts) {
		return totals, fmt.Errorf("%w: stored %s, sum %s", ErrInconsistentLedger, totals.StoredBalance, totals.SumOfAmounts)
	}

	// An account without postings has no latest balance to compare.
	if totals.Transactions > 0 && !totals.StoredBalance.Equal(totals.LastBalance) {
		return totals, fmt.Errorf("%w: stored %s, latest posting %s", ErrInconsistentLedger, totals.StoredBalance, totals.LastBalance)
	}

	return totals, nil
}
