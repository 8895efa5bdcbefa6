package account

import (
	"time"

	"github.com/carson-networks/budget-tracker/internal/service"
)

// Account is the API response model for an account.
type Account struct {
	ID            string `json:"id" doc:"Account UUID"`
	Name          string `json:"name" doc:"Account name"`
	Type          string `json:"type" doc:"Account type, e.g. bank or cash"`
	BankName      string `json:"bankName,omitempty" doc:"Bank holding the account"`
	AccountNumber string `json:"accountNumber,omitempty" doc:"Account number at the bank"`
	Balance       string `json:"balance" doc:"Decimal balance"`
	CreatedAt     string `json:"createdAt" doc:"RFC3339 creation time"`
}

func accountFromService(acc service.Account) Account {
	return Account{
		ID:            acc.ID.String(),
		Name:          acc.Name,
		Type:          acc.Type,
		BankName:      acc.BankName,
		AccountNumber: acc.AccountNumber,
		Balance:       acc.Balance.StringFixed(2),
		CreatedAt:     acc.CreatedAt.Format(time.RFC3339),
	}
}
