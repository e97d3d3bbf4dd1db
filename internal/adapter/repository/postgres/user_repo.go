package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/infrastructure/postgres/generated"
)

// UserRepository implements user persistence
type UserRepository struct {
	queries *generated.Queries
}

// NewUserRepository creates a new user repository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{queries: generated.New(db)}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.queries.CreateUser(ctx, generated.CreateUserParams{
		ID:           user.ID,
		Phone:        user.Phone,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		CreatedAt:    timeToPgTimestamptz(user.CreatedAt),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByPhone retrieves a user by phone number
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	row, err := r.queries.GetUserByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &domain.User{
		ID:           row.ID,
		Phone:        row.Phone,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt.Time.UTC(),
	}, nil
}
