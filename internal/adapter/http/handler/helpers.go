package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/radkal2/bonusbank/internal/adapter/http/dto"
	"github.com/radkal2/bonusbank/internal/domain"
)

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

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrBankNotFound),
		errors.Is(err, domain.ErrBranchNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrLoanNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrStatisticNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEntityAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidLogin):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrAccountLimitExceeded),
		errors.Is(err, domain.ErrMinBalanceLimit),
		errors.Is(err, domain.ErrUnsettledLoan),
		errors.Is(err, domain.ErrAccountNotOwned):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrAccountInactive),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidKind),
		errors.Is(err, domain.ErrInvalidRepaymentTerm),
		errors.Is(err, domain.ErrBranchCloseMismatch),
		errors.Is(err, domain.ErrInvalidMobile),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrPasswordTooWeak):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
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
