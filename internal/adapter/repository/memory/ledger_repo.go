package memory

import (
	"context"

	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/usecase"
)

// AccountTotals sums the stored ledger of one account.
func (s *Store) AccountTotals(_ context.Context, accountID string) (usecase.LedgerTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.accounts[accountID]
	if !ok {
		return usecase.LedgerTotals{}, domain.ErrAccountNotFound
	}

	totals := usecase.LedgerTotals{
		StoredBalance: row.balance,
		SumOfAmounts:  domain.Zero(),
		LastBalance:   domain.Zero(),
	}
	for _, t := range s.postings[accountID] {
		totals.SumOfAmounts = totals.SumOfAmounts.Add(t.Amount())
		totals.LastBalance = t.Balance()
		totals.Transactions++
	}
	return totals, nil
}
