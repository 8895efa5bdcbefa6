package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

// UpdateTransaction changes the set fields of a transaction and moves its balance effect:
// the old effect is reverted on the old account and the new one applied to the new account.
type UpdateTransaction struct {
	UserID uuid.UUID
	ID     uuid.UUID

	AccountID       omit.Val[uuid.UUID]
	CategoryID      omitnull.Val[uuid.UUID]
	SubcategoryID   omitnull.Val[uuid.UUID]
	Type            omit.Val[string]
	Amount          omit.Val[decimal.Decimal]
	Description     omit.Val[string]
	TransactionDate omit.Val[time.Time]
}

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transaction.FindByIDForUpdate(ctx, u.UserID, u.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("transaction %s: %w", u.ID, ErrNotFound)
	}

	fields := u.merge(existing)

	err = checkClassification(ctx, writer, u.UserID, fields.Type, fields.CategoryID, fields.SubcategoryID)
	if err != nil {
		return err
	}

	oldEffect := balanceEffect(existing.Type, existing.Amount)
	newEffect := balanceEffect(fields.Type, fields.Amount)
	if existing.AccountID == fields.AccountID {
		err = adjustBalance(ctx, writer, u.UserID, fields.AccountID, newEffect.Sub(oldEffect))
	} else {
		err = adjustBalance(ctx, writer, u.UserID, existing.AccountID, oldEffect.Neg())
		if err == nil {
			err = adjustBalance(ctx, writer, u.UserID, fields.AccountID, newEffect)
		}
	}
	if err != nil {
		return err
	}

	err = writer.Transaction.Update(ctx, u.UserID, u.ID, &fields)
	if errors.Is(err, transaction.ErrNoRows) {
		return fmt.Errorf("transaction %s: %w", u.ID, ErrNotFound)
	}
	return err
}

func (u *UpdateTransaction) merge(existing *transaction.Transaction) transaction.TransactionFields {
	fields := transaction.TransactionFields{
		AccountID:       u.AccountID.GetOr(existing.AccountID),
		CategoryID:      existing.CategoryID,
		SubcategoryID:   existing.SubcategoryID,
		Type:            u.Type.GetOr(existing.Type),
		Amount:          u.Amount.GetOr(existing.Amount),
		Description:     u.Description.GetOr(existing.Description.String),
		TransactionDate: u.TransactionDate.GetOr(existing.TransactionDate),
	}

	if !u.CategoryID.IsUnset() {
		fields.CategoryID = nullUUID(u.CategoryID)
	}
	if !u.SubcategoryID.IsUnset() {
		fields.SubcategoryID = nullUUID(u.SubcategoryID)
	}

	return fields
}

func nullUUID(v omitnull.Val[uuid.UUID]) uuid.NullUUID {
	id, ok := v.Get()
	return uuid.NullUUID{UUID: id, Valid: ok}
}
