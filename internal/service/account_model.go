package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/storage/account"
)

// Account represents an account in the service layer.
type Account struct {
	ID            uuid.UUID
	Name          string
	Type          string
	BankName      string
	AccountNumber string
	Balance       decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
}

// AccountCreate is the input for opening an account.
type AccountCreate struct {
	Name           string
	Type           string
	BankName       string
	AccountNumber  string
	OpeningBalance decimal.Decimal
}

func accountFromStorage(row *account.Account) Account {
	return Account{
		ID:            row.ID,
		Name:          row.Name,
		Type:          row.Type,
		BankName:      row.BankName.String,
		AccountNumber: row.AccountNumber.String,
		Balance:       row.Balance,
		IsActive:      row.IsActive,
		CreatedAt:     row.CreatedAt,
	}
}
