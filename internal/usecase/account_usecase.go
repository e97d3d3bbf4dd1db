package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iho/bankledger/internal/domain"
)

const (
	opCreateAccount = "create_account"
	opDeposit       = "deposit"
	opWithdraw      = "withdraw"
	opCloseAccount  = "close_account"
)

// AccountUseCase handles the account lifecycle and postings.
type AccountUseCase struct {
	txManager TransactionManager
	accounts  AccountRepository
	queries   AccountQueries
	outbox    OutboxRepository
	retrier   Retrier
	cache     Cache
	cacheTTL  time.Duration
	recorder  Recorder
	env       domain.AccountEnv
}

// AccountUseCaseConfig wires an AccountUseCase. Outbox, Retrier, Cache and
// Recorder are optional.
type AccountUseCaseConfig struct {
	TxManager TransactionManager
	Accounts  AccountRepository
	Queries   AccountQueries
	Outbox    OutboxRepository
	Retrier   Retrier
	Cache     Cache
	CacheTTL  time.Duration
	Recorder  Recorder
	Env       domain.AccountEnv
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(cfg AccountUseCaseConfig) *AccountUseCase {
	if cfg.Retrier == nil {
		cfg.Retrier = runOnce{}
	}
	if cfg.Recorder == nil {
		cfg.Recorder = nopRecorder{}
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultBalanceCacheTTL
	}

	return &AccountUseCase{
		txManager: cfg.TxManager,
		accounts:  cfg.Accounts,
		queries:   cfg.Queries,
		outbox:    cfg.Outbox,
		retrier:   cfg.Retrier,
		cache:     cfg.Cache,
		cacheTTL:  cfg.CacheTTL,
		recorder:  cfg.Recorder,
		env:       cfg.Env,
	}
}

// CreateAccountInput represents input for opening an account.
type CreateAccountInput struct {
	UserID         string
	AccountNumber  string
	InitialDeposit *domain.Money
}

// AccountAmountInput represents input for a deposit or withdrawal.
type AccountAmountInput struct {
	AccountID string
	UserID    string
	Amount    domain.Money
}

// CreateAccount opens an account, optionally funding it in the same save.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if input.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	number := strings.TrimSpace(input.AccountNumber)
	if err := domain.ValidateAccountNumber(number); err != nil {
		return nil, err
	}
	if input.InitialDeposit != nil && input.InitialDeposit.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	_, err := uc.accounts.FindByAccountNumber(ctx, number)
	switch {
	case err == nil:
		return nil, domain.ErrDuplicateAccountNumber
	case !errors.Is(err, domain.ErrAccountNotFound):
		return nil, err
	}

	account := domain.NewAccount(uc.env, domain.NewAccountParams{
		UserID:        input.UserID,
		AccountNumber: number,
	})

	if input.InitialDeposit != nil && input.InitialDeposit.IsPositive() {
		if err := account.Deposit(*input.InitialDeposit); err != nil {
			return nil, err
		}
	}

	posted := account.NewTransactions()
	events := []*domain.OutboxEvent{
		uc.newEvent(account.ID(), domain.EventTypeAccountCreated, domain.AccountCreatedEvent{
			AccountID:     account.ID(),
			UserID:        account.UserID(),
			AccountNumber: account.AccountNumber(),
		}),
	}
	events = append(events, uc.postedEvents(account.ID(), posted)...)

	if err := uc.persist(ctx, account, events); err != nil {
		uc.recorder.OperationFailed(opCreateAccount, err)
		return nil, err
	}

	uc.recorder.AccountCreated()
	uc.recordPostings(posted)

	return account, nil
}

// Deposit credits an account owned by the caller.
func (uc *AccountUseCase) Deposit(ctx context.Context, input AccountAmountInput) (*domain.Account, error) {
	return uc.mutate(ctx, opDeposit, input.AccountID, input.UserID, func(a *domain.Account) error {
		return a.Deposit(input.Amount)
	})
}

// Withdraw debits an account owned by the caller.
func (uc *AccountUseCase) Withdraw(ctx context.Context, input AccountAmountInput) (*domain.Account, error) {
	return uc.mutate(ctx, opWithdraw, input.AccountID, input.UserID, func(a *domain.Account) error {
		return a.Withdraw(input.Amount)
	})
}

// CloseAccount closes an account owned by the caller.
func (uc *AccountUseCase) CloseAccount(ctx context.Context, accountID, userID string) (*domain.Account, error) {
	return uc.mutate(ctx, opCloseAccount, accountID, userID, func(a *domain.Account) error {
		return a.Close()
	})
}

// GetBalance returns the stored balance, served from cache when possible.
func (uc *AccountUseCase) GetBalance(ctx context.Context, accountID, userID string) (domain.Money, error) {
	if err := authorize(ctx, uc.queries, accountID, userID); err != nil {
		return domain.Money{}, err
	}

	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, balanceCacheKey(accountID)); err == nil && raw != nil {
			if balance, err := domain.MoneyFrom(string(raw)); err == nil {
				return balance, nil
			}
		}
	}

	balance, err := uc.queries.GetBalance(ctx, accountID)
	if err != nil {
		return domain.Money{}, err
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, balanceCacheKey(accountID), []byte(balance.String()), uc.cacheTTL)
	}

	return balance, nil
}

// ListAccounts pages through the caller's accounts, newest first.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, userID string, req domain.PageRequest) (domain.Page[domain.AccountListView], error) {
	if userID == "" {
		return domain.Page[domain.AccountListView]{}, domain.ErrUnauthorized
	}
	return uc.queries.ListAccountsByUser(ctx, userID, req)
}

// mutate runs one load-mutate-save cycle. A stale save is retried from a
// fresh load.
func (uc *AccountUseCase) mutate(ctx context.Context, op, accountID, userID string, apply func(*domain.Account) error) (*domain.Account, error) {
	var result *domain.Account

	err := uc.retrier.Retry(ctx, func() error {
		account, err := uc.accounts.FindByID(ctx, accountID)
		if err != nil {
			return err
		}
		if !account.IsOwnedBy(userID) {
			return domain.ErrForbidden
		}

		if err := apply(account); err != nil {
			return err
		}

		posted := account.NewTransactions()
		events := uc.postedEvents(account.ID(), posted)
		if op == opCloseAccount {
			events = append(events, uc.newEvent(account.ID(), domain.EventTypeAccountClosed, domain.AccountClosedEvent{
				AccountID: account.ID(),
				ClosedAt:  uc.env.Clock.Now().Format(time.RFC3339Nano),
			}))
		}

		if err := uc.persist(ctx, account, events); err != nil {
			if errors.Is(err, domain.ErrConcurrentModification) {
				uc.recorder.ConcurrencyConflict()
			}
			return err
		}

		uc.recordPostings(posted)
		if op == opCloseAccount {
			uc.recorder.AccountClosed()
		}
		result = account
		return nil
	})
	if err != nil {
		uc.recorder.OperationFailed(op, err)
		return nil, err
	}

	return result, nil
}

// persist saves the account and its events in one transaction.
func (uc *AccountUseCase) persist(ctx context.Context, account *domain.Account, events []*domain.OutboxEvent) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	start := time.Now()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.accounts.Save(ctx, tx, account); err != nil {
		return err
	}

	if uc.outbox != nil {
		for _, event := range events {
			if err := uc.outbox.Create(ctx, tx, event); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.recorder.SaveDuration(time.Since(start))

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, balanceCacheKey(account.ID()))
	}

	return nil
}

func (uc *AccountUseCase) newEvent(accountID, eventType string, payload any) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:            uc.env.IDs.Generate(),
		AggregateID:   accountID,
		AggregateType: domain.AggregateTypeAccount,
		EventType:     eventType,
		Payload:       domain.Payload(payload),
		CreatedAt:     uc.env.Clock.Now(),
	}
}

func (uc *AccountUseCase) postedEvents(accountID string, posted []domain.Transaction) []*domain.OutboxEvent {
	events := make([]*domain.OutboxEvent, 0, len(posted))
	for _, tx := range posted {
		events = append(events, uc.newEvent(accountID, domain.EventTypeTransactionPosted, domain.TransactionPosted(accountID, tx)))
	}
	return events
}

func (uc *AccountUseCase) recordPostings(posted []domain.Transaction) {
	for _, tx := range posted {
		uc.recorder.Posted(tx.Type(), tx.Amount())
	}
}

func balanceCacheKey(accountID string) string {
	return "balance:" + accountID
}

// authorize checks that userID owns accountID.
func authorize(ctx context.Context, queries AccountQueries, accountID, userID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	owner, err := queries.GetAccountOwner(ctx, accountID)
	if err != nil {
		return err
	}
	if owner != userID {
		return domain.ErrForbidden
	}
	return nil
}

type runOnce struct{}

func (runOnce) Retry(_ context.Context, operation func() error) error {
	return operation()
}

type nopRecorder struct{}

func (nopRecorder) AccountCreated() {}
func (nopRecorder) AccountClosed() {}
func (nopRecorder) Posted(domain.TransactionType, domain.Money) {}
func (nopRecorder) OperationFailed(string, error) {}
func (nopRecorder) ConcurrencyConflict() {}
func (nopRecorder) SaveDuration(time.Duration) {}
