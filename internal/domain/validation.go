package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidMobile   = errors.New("mobile field is not valid")
	ErrInvalidName     = errors.New("invalid name")
	ErrPasswordTooWeak = errors.New("password does not meet requirements")
)

// Validation constants
const (
	MinPasswordLength = 8
	MaxPasswordLength = 16
	MinNameLength     = 2
	MaxNameLength     = 32
	MobileDigits      = 10
)

var mobileRegex = regexp.MustCompile(`^[0-9]{10}$`)

// NormalizeMobile converts a local mobile number to canonical +98 form,
// keeping the last ten digits.
func NormalizeMobile(mobile string) string {
	digits := strings.ReplaceAll(mobile, " ", "")
	if len(digits) > MobileDigits {
		digits = digits[len(digits)-MobileDigits:]
	}
	return "+98" + digits
}

// ValidateMobile validates a mobile number in any of its written forms
// (9123456789, 09123456789, +989123456789): the significant last ten
// digits must start with 9.
func ValidateMobile(mobile string) error {
	mobile = strings.ReplaceAll(mobile, " ", "")
	if len(mobile) > MobileDigits {
		mobile = mobile[len(mobile)-MobileDigits:]
	}

	if !mobileRegex.MatchString(mobile) {
		return fmt.Errorf("%w: must be %d digits", ErrInvalidMobile, MobileDigits)
	}

	if mobile[0] != '9' {
		return ErrInvalidMobile
	}

	return nil
}

// ValidateName validates a first or last name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinNameLength || len(name) > MaxNameLength {
		return fmt.Errorf("%w: length must be between %d and %d", ErrInvalidName, MinNameLength, MaxNameLength)
	}

	return nil
}

// ValidatePassword validates password length bounds.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
