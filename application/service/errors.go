package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation marks input that failed validation before reaching a store.
var ErrValidation = errors.New("validation failed")

// ErrForbidden marks an operation attempted by a user who may not perform it.
var ErrForbidden = errors.New("forbidden")

// validationError wraps ErrValidation with a field-level message.
func validationError(field, msg string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, msg)
}

// requireNonEmpty validates that a trimmed string field has content.
func requireNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return validationError(field, "must not be empty")
	}
	return nil
}
