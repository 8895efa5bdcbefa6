package actions

import (
	"context"
	"errors"

	"github.com/carson-networks/budget-tracker/internal/storage"
)

var (
	// ErrNotFound is returned when the row an action targets does not exist for the owner.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidReference is returned when an action refers to an account, category or
	// subcategory the owner does not have.
	ErrInvalidReference = errors.New("invalid reference")
)

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
