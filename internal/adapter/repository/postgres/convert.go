package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/infrastructure/postgres/generated"
)

const pgErrUniqueViolation = "23505"

func moneyToNumeric(m domain.Money) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(m.Decimal().String())

	return n
}

func numericToMoney(n pgtype.Numeric) domain.Money {
	if !n.Valid || n.Int == nil {
		return domain.Zero()
	}

	d := decimal.NewFromBigInt(n.Int, n.Exp)
	m, _ := domain.MoneyFrom(d)

	return m
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}

func rowToTransaction(row generated.Transaction) domain.Transaction {
	return domain.NewTransaction(
		row.ID,
		row.OccurredAt.Time.UTC(),
		numericToMoney(row.Amount),
		numericToMoney(row.Balance),
	)
}

func rowsToTransactions(rows []generated.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToTransaction(row))
	}
	return out
}

func rowToListView(row generated.Account) domain.AccountListView {
	return domain.AccountListView{
		ID:            row.ID,
		AccountNumber: row.AccountNumber,
		Balance:       numericToMoney(row.Balance),
		Status:        domain.AccountStatus(row.Status),
		CreatedAt:     row.CreatedAt.Time.UTC(),
	}
}
