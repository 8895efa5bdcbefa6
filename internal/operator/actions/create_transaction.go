package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

type CreateTransaction struct {
	UserID uuid.UUID
	Fields transaction.TransactionFields

	CreatedID uuid.UUID
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	err := checkClassification(ctx, writer, t.UserID, t.Fields.Type, t.Fields.CategoryID, t.Fields.SubcategoryID)
	if err != nil {
		return err
	}

	err = adjustBalance(ctx, writer, t.UserID, t.Fields.AccountID, balanceEffect(t.Fields.Type, t.Fields.Amount))
	if err != nil {
		return err
	}

	id, err := writer.Transaction.Insert(ctx, t.UserID, &t.Fields)
	if err != nil {
		return err
	}

	t.CreatedID = id
	return nil
}
