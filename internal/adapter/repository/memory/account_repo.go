package memory

import (
	"context"

	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/usecase"
)

// FindByID loads an account with its full ledger.
func (s *Store) FindByID(_ context.Context, id string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return s.restore(row), nil
}

// FindByAccountNumber loads an account by its external number.
func (s *Store) FindByAccountNumber(_ context.Context, number string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byNumber[number]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return s.restore(s.accounts[id]), nil
}

// Save stages the account metadata and its new postings on t.
func (s *Store) Save(_ context.Context, t usecase.Transaction, account *domain.Account) error {
	mt, err := s.own(t)
	if err != nil {
		return err
	}

	changes := account.TakeChanges()
	snap := domain.AccountSnapshot{
		ID:            account.ID(),
		UserID:        account.UserID(),
		AccountNumber: account.AccountNumber(),
		Status:        account.Status(),
		CreatedAt:     stamp(account.CreatedAt()),
		Version:       changes.Version,
	}
	balance := account.Balance()
	postings := changes.Transactions

	mt.stage(op{
		check: func() error {
			row, exists := s.accounts[snap.ID]
			if changes.ExpectedVersion == 0 {
				if _, taken := s.byNumber[snap.AccountNumber]; taken {
					return domain.ErrDuplicateAccountNumber
				}
				if exists {
					return domain.ErrConcurrentModification
				}
				return nil
			}
			if !exists || row.snap.Version != changes.ExpectedVersion {
				return domain.ErrConcurrentModification
			}
			return nil
		},
		apply: func() {
			s.accounts[snap.ID] = &accountRow{snap: snap, balance: balance}
			s.byNumber[snap.AccountNumber] = snap.ID
			s.postings[snap.ID] = append(s.postings[snap.ID], postings...)
		},
	})

	return nil
}
