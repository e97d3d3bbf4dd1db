package memory

import (
	"context"

	"github.com/iho/bankledger/internal/domain"
)

// Create stores a user keyed by phone.
func (s *Store) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Phone]; ok {
		return domain.ErrUserAlreadyExists
	}
	u := *user
	s.users[user.Phone] = &u
	return nil
}

// GetByPhone finds a user by phone.
func (s *Store) GetByPhone(_ context.Context, phone string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[phone]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}
