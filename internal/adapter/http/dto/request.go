package dto

import (
	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/usecase"
)

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	AccountNumber  string        `json:"accountNumber" validate:"required,min=4,max=34"`
	InitialDeposit *domain.Money `json:"initialDeposit,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(userID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		UserID:         userID,
		AccountNumber:  r.AccountNumber,
		InitialDeposit: r.InitialDeposit,
	}
}

// AmountRequest represents a deposit or withdrawal.
type AmountRequest struct {
	Amount *domain.Money `json:"amount" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *AmountRequest) ToUseCaseInput(accountID, userID string) usecase.AccountAmountInput {
	return usecase.AccountAmountInput{
		AccountID: accountID,
		UserID:    userID,
		Amount:    *r.Amount,
	}
}

// RegisterRequest represents a sign-up request.
type RegisterRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=255"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Phone:    r.Phone,
		Password: r.Password,
		Name:     r.Name,
	}
}

// LoginRequest represents a sign-in request.
type LoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.LoginInput {
	return usecase.LoginInput{
		Phone:    r.Phone,
		Password: r.Password,
	}
}
