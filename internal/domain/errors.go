package domain

import "errors"

var (
	// Money errors
	ErrInvalidMoneyValue = errors.New("invalid money value")

	// Account errors
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrAccountNotActive       = errors.New("account is not active")
	ErrNonZeroBalanceOnClose  = errors.New("cannot close account with non-zero balance")
	ErrDuplicateAccountNumber = errors.New("account number already exists")
	ErrAccountNotFound        = errors.New("account not found")
	ErrConcurrentModification = errors.New("account was modified concurrently")

	// Query errors
	ErrInvalidCursor = errors.New("invalid cursor")

	// Statement errors
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrExportNotImplemented    = errors.New("export format not implemented")

	ErrClockMovedBackwards = errors.New("clock cannot move backwards")
)
