package utils

import (
	"errors"
	"fmt"
)

var (
	ErrConflict           = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
	ErrDatabaseError      = errors.New("database error")
	ErrUploadFailed       = errors.New("upload failed")

	// Both are validation failures and satisfy errors.Is(err, ErrValidation).
	ErrInvalidImageKind = fmt.Errorf("%w: invalid image kind", ErrValidation)
	ErrTenantMismatch   = fmt.Errorf("%w: studio mismatch", ErrValidation)
)

// Validationf builds a validation error with detail.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf builds a not-found error naming the missing record.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// DatabaseError wraps a storage failure so the cause survives for logging
// while callers still match ErrDatabaseError.
func DatabaseError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrDatabaseError, err)
}
