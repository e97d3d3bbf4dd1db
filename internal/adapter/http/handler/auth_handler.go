package handler

import (
	"context"
	"net/http"

	"github.com/iho/bankledger/internal/adapter/http/dto"
	"github.com/iho/bankledger/internal/usecase"
)

// AuthService defines the behavior needed by AuthHandler.
type AuthService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthResult, error)
	Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthResult, error)
}

// AuthHandler handles sign-up and sign-in.
type AuthHandler struct {
	authUC AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authUC AuthService) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Register creates a user and returns a token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.authUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "registration failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AuthResponse{Token: result.Token, User: dto.UserFromDomain(result.User)})
}

// Login authenticates a user and returns a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.authUC.Login(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "login failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{Token: result.Token, User: dto.UserFromDomain(result.User)})
}
