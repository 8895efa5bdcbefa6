package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

// DeleteTransaction removes a transaction and reverts its effect on the account balance.
type DeleteTransaction struct {
	UserID uuid.UUID
	ID     uuid.UUID
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transaction.FindByIDForUpdate(ctx, d.UserID, d.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("transaction %s: %w", d.ID, ErrNotFound)
	}

	err = adjustBalance(ctx, writer, d.UserID, existing.AccountID, balanceEffect(existing.Type, existing.Amount).Neg())
	if err != nil {
		return err
	}

	err = writer.Transaction.Delete(ctx, d.UserID, d.ID)
	if errors.Is(err, transaction.ErrNoRows) {
		return fmt.Errorf("transaction %s: %w", d.ID, ErrNotFound)
	}
	return err
}
