package service

import (
	"errors"
	"fmt"

	"github.com/carson-networks/budget-tracker/internal/operator/actions"
)

// ErrNotFound is returned when a record does not exist for the owner.
var ErrNotFound = actions.ErrNotFound

// ValidationError reports input rejected before anything was written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// translateActionError maps write-queue failures onto the errors callers of this package match on.
func translateActionError(err error) error {
	if errors.Is(err, actions.ErrInvalidReference) {
		return &ValidationError{Message: err.Error()}
	}
	return err
}
