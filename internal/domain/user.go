package domain

import (
	"errors"
	"time"
)

// User is an account holder who can sign in.
type User struct {
	ID           string
	Phone        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// Authentication errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access to account denied")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
)
