package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/usecase"
	"github.com/iho/bankledger/internal/usecase/mocks"
)

func newAuthUseCase(t *testing.T) (*usecase.AuthUseCase, *mocks.MockUserRepository, *mocks.MockTokenIssuer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	tokens := mocks.NewMockTokenIssuer(ctrl)
	clock := domain.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return usecase.NewAuthUseCase(users, tokens, &seqIDs{}, clock), users, tokens
}

func TestAuthUseCase_Register(t *testing.T) {
	t.Run("hashes the password and issues a token", func(t *testing.T) {
		uc, users, tokens := newAuthUseCase(t)

		var stored *domain.User
		users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *domain.User) error {
			stored = u
			return nil
		})
		tokens.EXPECT().Generate(gomock.Any()).Return("signed-token", nil)

		result, err := uc.Register(context.Background(), usecase.RegisterInput{
			Phone:    "+15551234567",
			Password: "s3cret-pass",
			Name:     "Ada",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Token != "signed-token" {
			t.Fatalf("unexpected token %q", result.Token)
		}
		if result.User.PasswordHash != "" {
			t.Fatal("password hash must not be returned")
		}
		if stored.PasswordHash == "s3cret-pass" {
			t.Fatal("password stored in plain text")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")); err != nil {
			t.Fatalf("stored hash does not verify: %v", err)
		}
	})

	t.Run("taken phone", func(t *testing.T) {
		uc, users, _ := newAuthUseCase(t)
		users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrUserAlreadyExists)

		_, err := uc.Register(context.Background(), usecase.RegisterInput{Phone: "+15551234567", Password: "s3cret-pass", Name: "Ada"})
		if !errors.Is(err, domain.ErrUserAlreadyExists) {
			t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		uc, _, _ := newAuthUseCase(t)

		if _, err := uc.Register(context.Background(), usecase.RegisterInput{Phone: "nope", Password: "s3cret-pass", Name: "Ada"}); !errors.Is(err, domain.ErrInvalidPhone) {
			t.Fatalf("expected ErrInvalidPhone, got %v", err)
		}
		if _, err := uc.Register(context.Background(), usecase.RegisterInput{Phone: "+15551234567", Password: "short", Name: "Ada"}); !errors.Is(err, domain.ErrPasswordTooWeak) {
			t.Fatalf("expected ErrPasswordTooWeak, got %v", err)
		}
		if _, err := uc.Register(context.Background(), usecase.RegisterInput{Phone: "+15551234567", Password: "s3cret-pass"}); !errors.Is(err, domain.ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName, got %v", err)
		}
	})
}

func TestAuthUseCase_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &domain.User{ID: "user-1", Phone: "+15551234567", Name: "Ada", PasswordHash: string(hash)}

	t.Run("valid credentials", func(t *testing.T) {
		uc, users, tokens := newAuthUseCase(t)
		users.EXPECT().GetByPhone(gomock.Any(), "+15551234567").Return(user, nil)
		tokens.EXPECT().Generate(gomock.Any()).Return("signed-token", nil)

		result, err := uc.Login(context.Background(), usecase.LoginInput{Phone: " +15551234567 ", Password: "s3cret-pass"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.User.ID != "user-1" || result.Token != "signed-token" {
			t.Fatalf("unexpected result %+v", result)
		}
		if user.PasswordHash == "" {
			t.Fatal("repository user must not be mutated")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		uc, users, _ := newAuthUseCase(t)
		users.EXPECT().GetByPhone(gomock.Any(), "+15551234567").Return(user, nil)

		_, err := uc.Login(context.Background(), usecase.LoginInput{Phone: "+15551234567", Password: "wrong-pass"})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown phone", func(t *testing.T) {
		uc, users, _ := newAuthUseCase(t)
		users.EXPECT().GetByPhone(gomock.Any(), "+15550000000").Return(nil, domain.ErrUserNotFound)

		_, err := uc.Login(context.Background(), usecase.LoginInput{Phone: "+15550000000", Password: "whatever1"})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
