package domain

import (
	"time"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusActive AccountStatus = "ACTIVE"
	AccountStatusClosed AccountStatus = "CLOSED"
	// AccountStatusSuspended is reserved. No operation moves an account into it.
	AccountStatusSuspended AccountStatus = "SUSPENDED"
)

// IsValid reports whether s is a known status.
func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusActive, AccountStatusClosed, AccountStatusSuspended:
		return true
	}
	return false
}

// IDGenerator produces unique, lexically increasing identifiers.
type IDGenerator interface {
	Generate() string
}

// StatementPrinter renders a sequence of postings.
type StatementPrinter interface {
	Print(transactions []Transaction) error
}

// AccountEnv holds the collaborators an account uses while mutating itself.
type AccountEnv struct {
	Clock   Clock
	IDs     IDGenerator
	Printer StatementPrinter
}

// NewAccountParams describes an account to open.
type NewAccountParams struct {
	ID            string
	UserID        string
	AccountNumber string
}

// AccountSnapshot is the stored metadata of an account.
type AccountSnapshot struct {
	ID            string
	UserID        string
	AccountNumber string
	Status        AccountStatus
	CreatedAt     time.Time
	Version       int64
}

// Account is the consistency boundary for one ledger. Balance is derived
// from the postings and cannot be set from outside.
type Account struct {
	id            string
	userID        string
	accountNumber string
	status        AccountStatus
	createdAt     time.Time
	version       int64

	balance      Money
	transactions []Transaction
	pending      []Transaction

	env AccountEnv
}

// NewAccount opens an ACTIVE account with a zero balance.
func NewAccount(env AccountEnv, params NewAccountParams) *Account {
	id := params.ID
	if id == "" {
		id = env.IDs.Generate()
	}
	return &Account{
		id:            id,
		userID:        params.UserID,
		accountNumber: params.AccountNumber,
		status:        AccountStatusActive,
		createdAt:     env.Clock.Now(),
		env:           env,
	}
}

// RestoreAccount rebuilds an account from storage. history must be in
// posting order (oldest first).
func RestoreAccount(env AccountEnv, snap AccountSnapshot, history []Transaction) *Account {
	a := &Account{
		id:            snap.ID,
		userID:        snap.UserID,
		accountNumber: snap.AccountNumber,
		status:        snap.Status,
		createdAt:     snap.CreatedAt,
		version:       snap.Version,
		transactions:  append([]Transaction(nil), history...),
		env:           env,
	}
	if n := len(a.transactions); n > 0 {
		a.balance = a.transactions[n-1].Balance()
	}
	return a
}

func (a *Account) ID() string              { return a.id }
func (a *Account) UserID() string          { return a.userID }
func (a *Account) AccountNumber() string   { return a.accountNumber }
func (a *Account) Status() AccountStatus   { return a.status }
func (a *Account) CreatedAt() time.Time    { return a.createdAt }
func (a *Account) Balance() Money          { return a.balance }
func (a *Account) Version() int64          { return a.version }
func (a *Account) IsOwnedBy(u string) bool { return a.userID == u }

// Transactions returns a copy of the full in-memory ledger, oldest first.
func (a *Account) Transactions() []Transaction {
	return append([]Transaction(nil), a.transactions...)
}

// NewTransactions returns a copy of the postings appended since the last
// TakeChanges.
func (a *Account) NewTransactions() []Transaction {
	return append([]Transaction(nil), a.pending...)
}

// Deposit credits a positive amount.
func (a *Account) Deposit(amount Money) error {
	if err := a.ensureActive(); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	a.post(amount)
	return nil
}

// Withdraw debits a positive amount not exceeding the balance.
func (a *Account) Withdraw(amount Money) error {
	if err := a.ensureActive(); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if a.balance.IsLessThan(amount) {
		return ErrInsufficientFunds
	}
	a.post(amount.Negated())
	return nil
}

// Close moves an ACTIVE account with zero balance to CLOSED.
func (a *Account) Close() error {
	if err := a.ensureActive(); err != nil {
		return err
	}
	if !a.balance.IsZero() {
		return ErrNonZeroBalanceOnClose
	}
	a.status = AccountStatusClosed
	return nil
}

// PrintStatement hands the full in-memory ledger to the printer.
func (a *Account) PrintStatement() error {
	return a.env.Printer.Print(a.Transactions())
}

// Changes is what a store must persist for one save.
type Changes struct {
	Transactions []Transaction
	// ExpectedVersion is the version the stored row must still have.
	// Zero means the account has never been stored.
	ExpectedVersion int64
	Version         int64
}

// TakeChanges drains the pending postings and advances the version. The
// returned slice is owned by the caller. If the store then fails to apply
// the changes, the account must be reloaded.
func (a *Account) TakeChanges() Changes {
	c := Changes{
		Transactions:    a.pending,
		ExpectedVersion: a.version,
		Version:         a.version + 1,
	}
	a.pending = nil
	a.version = c.Version
	return c
}

// ListView projects the account for listings.
func (a *Account) ListView() AccountListView {
	return AccountListView{
		ID:            a.id,
		AccountNumber: a.accountNumber,
		Balance:       a.balance,
		Status:        a.status,
		CreatedAt:     a.createdAt,
	}
}

func (a *Account) ensureActive() error {
	if a.status != AccountStatusActive {
		return ErrAccountNotActive
	}
	return nil
}

func (a *Account) post(delta Money) {
	newBalance := a.balance.Add(delta)
	tx := NewTransaction(a.env.IDs.Generate(), a.env.Clock.Now(), delta, newBalance)
	a.transactions = append(a.transactions, tx)
	a.pending = append(a.pending, tx)
	a.balance = newBalance
}

func validateAmount(amount Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// AccountListView is the listing projection of an account.
type AccountListView struct {
	ID            string
	AccountNumber string
	Balance       Money
	Status        AccountStatus
	CreatedAt     time.Time
}
