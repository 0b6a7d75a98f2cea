package services

import (
	"errors"
	"fmt"
)

// Typed outcomes raised by the store and directory; controllers translate them into user messages.
var (
	ErrNotFound           = errors.New("record not found")
	ErrAlreadyDelivered   = errors.New("package already delivered")
	ErrReference          = errors.New("unresolved reference")
	ErrValidation         = errors.New("validation failed")
	ErrEmptySelection     = errors.New("empty selection")
	ErrResidentInUse      = errors.New("resident has packages")
	ErrDuplicateLogin     = errors.New("login already in use")
	ErrSelfModification   = errors.New("account cannot disable or delete itself")
	ErrBootstrapClosed    = errors.New("bootstrap already performed")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrDatabase           = errors.New("database failure")
)

// dbError wraps a driver error so callers can match ErrDatabase without seeing driver text
func dbError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrDatabase, err)
}

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func referenceError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrReference, fmt.Sprintf(format, args...))
}
