package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/infrastructure/postgres/generated"
	"github.com/iho/bankledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	queries *generated.Queries
	env     domain.AccountEnv
}

// NewAccountRepository creates a new AccountRepository. Loaded accounts are
// bound to env.
func NewAccountRepository(db DB, env domain.AccountEnv) *AccountRepository {
	return &AccountRepository{
		queries: generated.New(db),
		env:     env,
	}
}

// FindByID loads an account with its full ledger.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return r.restore(ctx, row)
}

// FindByAccountNumber loads an account by its external number.
func (r *AccountRepository) FindByAccountNumber(ctx context.Context, number string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return r.restore(ctx, row)
}

// Save writes the account row and its new postings inside tx. A first save
// inserts; later saves update only if the stored version is unchanged.
func (r *AccountRepository) Save(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	queries, err := queriesFor(tx)
	if err != nil {
		return err
	}

	changes := account.TakeChanges()
	now := r.env.Clock.Now()

	if changes.ExpectedVersion == 0 {
		err := queries.InsertAccount(ctx, generated.InsertAccountParams{
			ID:            account.ID(),
			UserID:        account.UserID(),
			AccountNumber: account.AccountNumber(),
			Status:        string(account.Status()),
			Balance:       moneyToNumeric(account.Balance()),
			Version:       changes.Version,
			CreatedAt:     timeToPgTimestamptz(account.CreatedAt()),
			UpdatedAt:     timeToPgTimestamptz(now),
		})
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateAccountNumber
			}
			return fmt.Errorf("insert account: %w", err)
		}
	} else {
		updated, err := queries.UpdateAccount(ctx, generated.UpdateAccountParams{
			Status:          string(account.Status()),
			Balance:         moneyToNumeric(account.Balance()),
			Version:         changes.Version,
			UpdatedAt:       timeToPgTimestamptz(now),
			ID:              account.ID(),
			ExpectedVersion: changes.ExpectedVersion,
		})
		if err != nil {
			return fmt.Errorf("update account: %w", err)
		}
		if updated == 0 {
			return domain.ErrConcurrentModification
		}
	}

	for _, t := range changes.Transactions {
		err := queries.InsertTransaction(ctx, generated.InsertTransactionParams{
			ID:         t.ID(),
			AccountID:  account.ID(),
			Amount:     moneyToNumeric(t.Amount()),
			Balance:    moneyToNumeric(t.Balance()),
			OccurredAt: timeToPgTimestamptz(t.Date()),
		})
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}

	return nil
}

func (r *AccountRepository) restore(ctx context.Context, row generated.Account) (*domain.Account, error) {
	history, err := r.queries.ListAccountHistory(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	snap := domain.AccountSnapshot{
		ID:            row.ID,
		UserID:        row.UserID,
		AccountNumber: row.AccountNumber,
		Status:        domain.AccountStatus(row.Status),
		CreatedAt:     row.CreatedAt.Time.UTC(),
		Version:       row.Version,
	}

	return domain.RestoreAccount(r.env, snap, rowsToTransactions(history)), nil
}
