package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidAccountNumber = errors.New("invalid account number")
	ErrInvalidPhone         = errors.New("invalid phone number")
	ErrInvalidName          = errors.New("invalid name")
	ErrPasswordTooWeak      = errors.New("password does not meet requirements")
)

// Validation constants
const (
	MinAccountNumberLength = 4
	MaxAccountNumberLength = 34 // IBAN max
	MaxNameLength          = 255
	MinPasswordLength      = 8
	MaxPasswordLength      = 72 // bcrypt input limit
)

var (
	accountNumberRegex = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	phoneRegex         = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// ValidateAccountNumber validates an account number
func ValidateAccountNumber(number string) error {
	number = strings.TrimSpace(number)

	if len(number) < MinAccountNumberLength || len(number) > MaxAccountNumberLength {
		return fmt.Errorf("%w: length must be between %d and %d", ErrInvalidAccountNumber, MinAccountNumberLength, MaxAccountNumberLength)
	}

	if !accountNumberRegex.MatchString(number) {
		return fmt.Errorf("%w: only letters, digits and dashes are allowed", ErrInvalidAccountNumber)
	}

	return nil
}

// ValidatePhone validates phone format
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(strings.TrimSpace(phone)) {
		return ErrInvalidPhone
	}
	return nil
}

// ValidateName validates a display name
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}
	return nil
}

// ValidatePassword validates password length
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	return nil
}
