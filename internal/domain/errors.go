package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrValidation       = errors.New("validation failed")
	ErrAccountLocked    = errors.New("account locked")
)

// AppError carries the client-facing message and status for a failed operation.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
	RetryAfter int // seconds, lockouts only
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequest(message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message, StatusCode: http.StatusBadRequest}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Err: ErrUnauthorized, Message: message, StatusCode: http.StatusUnauthorized}
}

func NewForbidden(message string) *AppError {
	return &AppError{Err: ErrForbidden, Message: message, StatusCode: http.StatusForbidden}
}

func NewNotFound(message string) *AppError {
	return &AppError{Err: ErrNotFound, Message: message, StatusCode: http.StatusNotFound}
}

func NewLocked(message string, retryAfter int) *AppError {
	return &AppError{Err: ErrAccountLocked, Message: message, StatusCode: http.StatusLocked, RetryAfter: retryAfter}
}

// NewUnavailable reports a store failure. err should already wrap ErrStoreUnavailable.
func NewUnavailable(err error) *AppError {
	if !errors.Is(err, ErrStoreUnavailable) {
		err = fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return &AppError{Err: err, Message: "Database unavailable", StatusCode: http.StatusServiceUnavailable}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// AsAppError unwraps err into an *AppError when it carries one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
