package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/infrastructure/postgres/generated"
)

// QueryRepository implements usecase.AccountQueries.
type QueryRepository struct {
	queries *generated.Queries
	clock   domain.Clock
}

// NewQueryRepository creates a new QueryRepository. clock resolves the
// default statement range.
func NewQueryRepository(db DB, clock domain.Clock) *QueryRepository {
	return &QueryRepository{
		queries: generated.New(db),
		clock:   clock,
	}
}

// GetAccountOwner returns the owning user of an account.
func (r *QueryRepository) GetAccountOwner(ctx context.Context, accountID string) (string, error) {
	owner, err := r.queries.GetAccountOwner(ctx, accountID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrAccountNotFound
	}
	return owner, err
}

// GetBalance returns the stored balance of an account.
func (r *QueryRepository) GetBalance(ctx context.Context, accountID string) (domain.Money, error) {
	balance, err := r.queries.GetAccountBalance(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Money{}, domain.ErrAccountNotFound
		}
		return domain.Money{}, err
	}
	return numericToMoney(balance), nil
}

// GetStatement returns postings inside the query range, newest first,
// strictly after the cursor posting.
func (r *QueryRepository) GetStatement(ctx context.Context, accountID string, query domain.StatementQuery) (domain.Page[domain.Transaction], error) {
	start, end := query.Range(r.clock.Now())
	fetch := int32(query.FetchSize())

	var (
		rows []generated.Transaction
		err  error
	)
	if query.Cursor == "" {
		rows, err = r.queries.ListStatement(ctx, generated.ListStatementParams{
			AccountID: accountID,
			StartAt:   timeToPgTimestamptz(start),
			EndAt:     timeToPgTimestamptz(end),
			RowLimit:  fetch,
		})
	} else {
		cursor, cerr := r.queries.GetTransactionCursor(ctx, generated.GetTransactionCursorParams{
			ID:        query.Cursor,
			AccountID: accountID,
		})
		if cerr != nil {
			if errors.Is(cerr, pgx.ErrNoRows) {
				return domain.Page[domain.Transaction]{}, domain.ErrInvalidCursor
			}
			return domain.Page[domain.Transaction]{}, cerr
		}
		rows, err = r.queries.ListStatementAfter(ctx, generated.ListStatementAfterParams{
			AccountID:        accountID,
			StartAt:          timeToPgTimestamptz(start),
			EndAt:            timeToPgTimestamptz(end),
			CursorOccurredAt: cursor.OccurredAt,
			CursorID:         cursor.ID,
			RowLimit:         fetch,
		})
	}
	if err != nil {
		return domain.Page[domain.Transaction]{}, err
	}

	return domain.NewPage(rowsToTransactions(rows), query.Limit, domain.Transaction.ID), nil
}

// ListAccountsByUser pages through a user's accounts, newest first. The
// cursor is the id of the last account of the previous page.
func (r *QueryRepository) ListAccountsByUser(ctx context.Context, userID string, req domain.PageRequest) (domain.Page[domain.AccountListView], error) {
	fetch := int32(req.FetchSize())

	var (
		rows []generated.Account
		err  error
	)
	if req.Cursor == "" {
		rows, err = r.queries.ListAccountsByUser(ctx, generated.ListAccountsByUserParams{
			UserID:   userID,
			RowLimit: fetch,
		})
	} else {
		cursor, cerr := r.queries.GetAccountByID(ctx, req.Cursor)
		if cerr != nil && !errors.Is(cerr, pgx.ErrNoRows) {
			return domain.Page[domain.AccountListView]{}, cerr
		}
		if cerr != nil || cursor.UserID != userID {
			return domain.Page[domain.AccountListView]{}, domain.ErrInvalidCursor
		}
		rows, err = r.queries.ListAccountsByUserAfter(ctx, generated.ListAccountsByUserAfterParams{
			UserID:          userID,
			CursorCreatedAt: cursor.CreatedAt,
			CursorID:        cursor.ID,
			RowLimit:        fetch,
		})
	}
	if err != nil {
		return domain.Page[domain.AccountListView]{}, err
	}

	views := make([]domain.AccountListView, 0, len(rows))
	for _, row := range rows {
		views = append(views, rowToListView(row))
	}

	return domain.NewPage(views, req.Limit, func(v domain.AccountListView) string { return v.ID }), nil
}
