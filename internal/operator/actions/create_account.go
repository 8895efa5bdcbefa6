package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/account"
)

type CreateAccount struct {
	UserID         uuid.UUID
	Name           string
	Type           string
	BankName       string
	AccountNumber  string
	OpeningBalance decimal.Decimal

	// CreatedID is set once Perform succeeds.
	CreatedID uuid.UUID
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Account.Insert(ctx, &account.AccountCreate{
		UserID:         c.UserID,
		Name:           c.Name,
		Type:           c.Type,
		BankName:       c.BankName,
		AccountNumber:  c.AccountNumber,
		OpeningBalance: c.OpeningBalance,
	})
	if err != nil {
		return err
	}

	c.CreatedID = id
	return nil
}
