package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iho/bankledger/internal/adapter/http/dto"
	"github.com/iho/bankledger/internal/adapter/http/middleware"
	"github.com/iho/bankledger/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError writes err with the status mapDomainError picks for it.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	writeError(w, mapDomainError(err), message, err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidMoneyValue),
		errors.Is(err, domain.ErrInvalidCursor),
		errors.Is(err, domain.ErrUnsupportedExportFormat),
		errors.Is(err, domain.ErrInvalidAccountNumber),
		errors.Is(err, domain.ErrInvalidPhone),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrPasswordTooWeak):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrAccountNotActive),
		errors.Is(err, domain.ErrNonZeroBalanceOnClose):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrDuplicateAccountNumber),
		errors.Is(err, domain.ErrConcurrentModification),
		errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrExportNotImplemented):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// decodeAndValidate reads a JSON body into dst and checks its validate tags.
// It writes a 400 and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, domain.ErrInvalidMoneyValue) {
			writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) && len(valErrs) > 0 {
			fe := valErrs[0]
			writeError(w, http.StatusBadRequest, "validation failed",
				fmt.Sprintf("field %s failed on %s", fe.Field(), fe.Tag()))
			return false
		}
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return false
	}

	return true
}

// currentUserID returns the authenticated caller. It writes a 401 and
// returns false when the request carries no user.
func currentUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok || user.ID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return "", false
	}
	return user.ID, true
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseTimeQuery parses an RFC 3339 or YYYY-MM-DD query parameter.
func parseTimeQuery(r *http.Request, key string) (*time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, val); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, val)
	if err != nil {
		return nil, fmt.Errorf("%s must be RFC 3339 or YYYY-MM-DD", key)
	}
	return &t, nil
}

// pageRequest reads limit and cursor from the query string.
func pageRequest(r *http.Request) domain.PageRequest {
	return domain.PageRequest{
		Limit:  parseIntQuery(r, "limit", domain.DefaultPageLimit),
		Cursor: r.URL.Query().Get("cursor"),
	}
}
