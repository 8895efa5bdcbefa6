package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/storage"
)

const (
	typeIncome  = "income"
	typeExpense = "expense"
)

// balanceEffect is what a transaction contributes to its account: income adds, expense subtracts.
func balanceEffect(transactionType string, amount decimal.Decimal) decimal.Decimal {
	if transactionType == typeExpense {
		return amount.Neg()
	}
	return amount
}

// adjustBalance locks the account and shifts its balance by delta.
func adjustBalance(ctx context.Context, writer *storage.Writer, userID, accountID uuid.UUID, delta decimal.Decimal) error {
	account, err := writer.Account.FindByIDForUpdate(ctx, userID, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return fmt.Errorf("account %s: %w", accountID, ErrInvalidReference)
	}

	if delta.IsZero() {
		return nil
	}
	return writer.Account.UpdateBalance(ctx, accountID, account.Balance.Add(delta))
}
