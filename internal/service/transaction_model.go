package service

import (
	"fmt"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionTypeIncome, TransactionTypeExpense:
		return TransactionType(s), nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// AccountRef identifies the account of a transaction. Name is empty when the account is gone.
type AccountRef struct {
	ID   uuid.UUID
	Name string
	Type string
}

type CategoryRef struct {
	ID   uuid.UUID
	Name string
}

type SubcategoryRef struct {
	ID   uuid.UUID
	Name string
}

// Transaction represents a transaction in the service layer. Category and Subcategory are nil
// when the transaction is unclassified.
type Transaction struct {
	ID          uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Account     AccountRef
	Category    *CategoryRef
	Subcategory *SubcategoryRef
	CreatedAt   time.Time
}

// TransactionFilter narrows a listing. Nil fields impose no constraint.
type TransactionFilter struct {
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Type       *TransactionType
	DateFrom   *time.Time
	DateTo     *time.Time
}

func (f TransactionFilter) IsEmpty() bool {
	return f.AccountID == nil && f.CategoryID == nil && f.Type == nil && f.DateFrom == nil && f.DateTo == nil
}

// TransactionCreate is the input for recording a transaction.
type TransactionCreate struct {
	AccountID     uuid.UUID
	CategoryID    *uuid.UUID
	SubcategoryID *uuid.UUID
	Type          TransactionType
	Amount        decimal.Decimal
	Description   string
	Date          time.Time
}

// TransactionPatch changes only the fields that are set. CategoryID and SubcategoryID may be
// set to null to unclassify the transaction.
type TransactionPatch struct {
	AccountID     omit.Val[uuid.UUID]
	CategoryID    omitnull.Val[uuid.UUID]
	SubcategoryID omitnull.Val[uuid.UUID]
	Type          omit.Val[TransactionType]
	Amount        omit.Val[decimal.Decimal]
	Description   omit.Val[string]
	Date          omit.Val[time.Time]
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	t := Transaction{
		ID:          row.ID,
		Date:        row.TransactionDate,
		Description: row.Description.String,
		Amount:      row.Amount,
		Type:        TransactionType(row.Type),
		Account: AccountRef{
			ID:   row.AccountID,
			Name: row.AccountName.String,
			Type: row.AccountType.String,
		},
		CreatedAt: row.CreatedAt,
	}
	if row.CategoryID.Valid {
		t.Category = &CategoryRef{ID: row.CategoryID.UUID, Name: row.CategoryName.String}
	}
	if row.SubcategoryID.Valid {
		t.Subcategory = &SubcategoryRef{ID: row.SubcategoryID.UUID, Name: row.SubcategoryName.String}
	}
	return t
}

func filterToStorage(f TransactionFilter) *transaction.TransactionFilter {
	storageFilter := &transaction.TransactionFilter{
		AccountID:  f.AccountID,
		CategoryID: f.CategoryID,
		DateFrom:   f.DateFrom,
		DateTo:     f.DateTo,
	}
	if f.Type != nil {
		typ := string(*f.Type)
		storageFilter.Type = &typ
	}
	return storageFilter
}

func nullUUIDFromPtr(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
