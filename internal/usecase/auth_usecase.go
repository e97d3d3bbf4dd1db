package usecase

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/iho/bankledger/internal/domain"
)

// AuthUseCase handles user registration and sign-in.
type AuthUseCase struct {
	userRepo UserRepository
	tokens   TokenIssuer
	idGen    domain.IDGenerator
	clock    domain.Clock
	cost     int
}

// NewAuthUseCase creates a new AuthUseCase.
func NewAuthUseCase(userRepo UserRepository, tokens TokenIssuer, idGen domain.IDGenerator, clock domain.Clock) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		idGen:    idGen,
		clock:    clock,
		cost:     bcrypt.DefaultCost,
	}
}

// RegisterInput represents input for creating a user
type RegisterInput struct {
	Phone    string
	Password string
	Name     string
}

// LoginInput represents authentication input
type LoginInput struct {
	Phone    string
	Password string
}

// AuthResult is a signed-in user and its access token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// Register creates a user with a hashed password and signs them in.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	phone := strings.TrimSpace(input.Phone)

	if err := domain.ValidatePhone(phone); err != nil {
		return nil, err
	}
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), uc.cost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uc.idGen.Generate(),
		Phone:        phone,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: string(hash),
		CreatedAt:    uc.clock.Now(),
	}

	// The store's unique index on phone decides races.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return uc.signIn(user)
}

// Login verifies credentials and issues a token.
func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := uc.userRepo.GetByPhone(ctx, strings.TrimSpace(input.Phone))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return uc.signIn(user)
}

func (uc *AuthUseCase) signIn(user *domain.User) (*AuthResult, error) {
	token, err := uc.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	// Don't return hashed password
	out := *user
	out.PasswordHash = ""
	return &AuthResult{User: &out, Token: token}, nil
}
