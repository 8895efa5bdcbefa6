package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/viewer"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              string `json:"id" doc:"Transaction UUID"`
	Date            string `json:"date" doc:"Transaction date, YYYY-MM-DD"`
	Description     string `json:"description" doc:"Free-text description"`
	Amount          string `json:"amount" doc:"Positive decimal amount"`
	Type            string `json:"type" doc:"income or expense"`
	AccountID       string `json:"accountID" doc:"Account UUID"`
	AccountName     string `json:"accountName" doc:"Account name, empty when the account is gone"`
	CategoryID      string `json:"categoryID,omitempty" doc:"Category UUID"`
	CategoryName    string `json:"categoryName,omitempty" doc:"Category name"`
	SubcategoryID   string `json:"subcategoryID,omitempty" doc:"Subcategory UUID"`
	SubcategoryName string `json:"subcategoryName,omitempty" doc:"Subcategory name"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

func transactionFromService(tx service.Transaction) Transaction {
	out := Transaction{
		ID:          tx.ID.String(),
		Date:        tx.Date.Format(viewer.DateLayout),
		Description: tx.Description,
		Amount:      tx.Amount.StringFixed(2),
		Type:        string(tx.Type),
		AccountID:   tx.Account.ID.String(),
		AccountName: tx.Account.Name,
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.Category != nil {
		out.CategoryID = tx.Category.ID.String()
		out.CategoryName = tx.Category.Name
	}
	if tx.Subcategory != nil {
		out.SubcategoryID = tx.Subcategory.ID.String()
		out.SubcategoryName = tx.Subcategory.Name
	}
	return out
}

type sessionProvider interface {
	Get(ctx context.Context, owner uuid.UUID) (*viewer.Session, error)
}

type sessionRefresher interface {
	Refresh(ctx context.Context, owner uuid.UUID) error
}
