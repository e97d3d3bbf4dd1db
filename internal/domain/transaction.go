package domain

import "time"

// Transaction is an immutable ledger posting. Positive amounts are deposits,
// negative amounts are withdrawals.
type Transaction struct {
	id      string
	date    time.Time
	amount  Money
	balance Money
}

// NewTransaction builds a posting. balance is the account balance right
// after amount has been applied.
func NewTransaction(id string, date time.Time, amount, balance Money) Transaction {
	return Transaction{id: id, date: date, amount: amount, balance: balance}
}

func (t Transaction) ID() string      { return t.id }
func (t Transaction) Date() time.Time { return t.date }
func (t Transaction) Amount() Money   { return t.amount }
func (t Transaction) Balance() Money  { return t.balance }

// IsDeposit reports whether the posting credited the account.
func (t Transaction) IsDeposit() bool {
	return t.amount.IsPositive()
}

// Type returns the stored classification of the posting.
func (t Transaction) Type() TransactionType {
	if t.IsDeposit() {
		return TransactionTypeDeposit
	}
	return TransactionTypeWithdrawal
}

// TransactionType mirrors the transaction_type column.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// Newer reports whether a sorts before b in statement order (date desc, id desc).
func Newer(a, b Transaction) bool {
	if !a.date.Equal(b.date) {
		return a.date.After(b.date)
	}
	return a.id > b.id
}
