package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage  *storage.Storage
	operator actionProcessor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, op actionProcessor) *TransactionService {
	return &TransactionService{storage: store, operator: op}
}

// ListTransactions returns every transaction of the owner matching the filter, most recent date
// first. There is no paging at this layer.
func (s *TransactionService) ListTransactions(ctx context.Context, owner uuid.UUID, filter TransactionFilter) ([]Transaction, error) {
	rows, err := s.storage.Transactions.List(ctx, owner, filterToStorage(filter))
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = transactionFromStorage(row)
	}
	return convertedTransactions, nil
}

// GetTransaction returns ErrNotFound when the owner has no such transaction.
func (s *TransactionService) GetTransaction(ctx context.Context, owner, id uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}

	t := transactionFromStorage(row)
	return &t, nil
}

// CreateTransaction records a transaction, moves the account balance, and returns the new ID.
func (s *TransactionService) CreateTransaction(ctx context.Context, owner uuid.UUID, create TransactionCreate) (uuid.UUID, error) {
	if err := validateCreate(create); err != nil {
		return uuid.Nil, err
	}

	action := &actions.CreateTransaction{
		UserID: owner,
		Fields: transaction.TransactionFields{
			AccountID:       create.AccountID,
			CategoryID:      nullUUIDFromPtr(create.CategoryID),
			SubcategoryID:   nullUUIDFromPtr(create.SubcategoryID),
			Type:            string(create.Type),
			Amount:          create.Amount,
			Description:     strings.TrimSpace(create.Description),
			TransactionDate: create.Date,
		},
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, translateActionError(err)
	}

	return action.CreatedID, nil
}

// UpdateTransaction applies the set fields of patch and returns the updated record.
func (s *TransactionService) UpdateTransaction(ctx context.Context, owner, id uuid.UUID, patch TransactionPatch) (*Transaction, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	action := &actions.UpdateTransaction{
		UserID:          owner,
		ID:              id,
		AccountID:       patch.AccountID,
		CategoryID:      patch.CategoryID,
		SubcategoryID:   patch.SubcategoryID,
		Amount:          patch.Amount,
		TransactionDate: patch.Date,
	}
	if typ, ok := patch.Type.Get(); ok {
		action.Type = omit.From(string(typ))
	}
	if description, ok := patch.Description.Get(); ok {
		action.Description = omit.From(strings.TrimSpace(description))
	}

	if err := s.operator.Process(ctx, action); err != nil {
		return nil, translateActionError(err)
	}

	return s.GetTransaction(ctx, owner, id)
}

// DeleteTransaction removes the transaction and reverts its balance effect.
func (s *TransactionService) DeleteTransaction(ctx context.Context, owner, id uuid.UUID) error {
	return translateActionError(s.operator.Process(ctx, &actions.DeleteTransaction{UserID: owner, ID: id}))
}

func validateCreate(create TransactionCreate) error {
	if create.AccountID == uuid.Nil {
		return newValidationError("accountID", "is required")
	}
	if _, err := ParseTransactionType(string(create.Type)); err != nil {
		return newValidationError("type", err.Error())
	}
	if !create.Amount.IsPositive() {
		return newValidationError("amount", "must be greater than zero")
	}
	if create.Date.IsZero() {
		return newValidationError("date", "is required")
	}
	if create.SubcategoryID != nil && create.CategoryID == nil {
		return newValidationError("subcategoryID", "requires a category")
	}
	return nil
}

func validatePatch(patch TransactionPatch) error {
	if id, ok := patch.AccountID.Get(); ok && id == uuid.Nil {
		return newValidationError("accountID", "is required")
	}
	if typ, ok := patch.Type.Get(); ok {
		if _, err := ParseTransactionType(string(typ)); err != nil {
			return newValidationError("type", err.Error())
		}
	}
	if amount, ok := patch.Amount.Get(); ok && !amount.IsPositive() {
		return newValidationError("amount", "must be greater than zero")
	}
	if date, ok := patch.Date.Get(); ok && date.IsZero() {
		return newValidationError("date", "is required")
	}
	return nil
}
