package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is by callers
var (
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrUnknownKind       = errors.New("unknown transaction kind")
)

// ValidationError describes a single rejected field
type ValidationError struct {
	Field   string // Name of the offending field
	Message string // Human readable reason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrValidation) match every ValidationError
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
