package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage"
)

// AccountService handles account business logic.
type AccountService struct {
	storage  *storage.Storage
	operator actionProcessor
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage, op actionProcessor) *AccountService {
	return &AccountService{storage: store, operator: op}
}

// CreateAccount opens an account whose balance starts at the opening balance.
func (s *AccountService) CreateAccount(ctx context.Context, owner uuid.UUID, create AccountCreate) (uuid.UUID, error) {
	name := strings.TrimSpace(create.Name)
	if name == "" {
		return uuid.Nil, newValidationError("name", "is required")
	}
	accountType := strings.TrimSpace(create.Type)
	if accountType == "" {
		return uuid.Nil, newValidationError("type", "is required")
	}

	action := &actions.CreateAccount{
		UserID:         owner,
		Name:           name,
		Type:           accountType,
		BankName:       strings.TrimSpace(create.BankName),
		AccountNumber:  strings.TrimSpace(create.AccountNumber),
		OpeningBalance: create.OpeningBalance,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, translateActionError(err)
	}
	return action.CreatedID, nil
}

// GetAccount returns ErrNotFound when the owner has no such account.
func (s *AccountService) GetAccount(ctx context.Context, owner, id uuid.UUID) (*Account, error) {
	row, err := s.storage.Accounts.FindByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("account %s: %w", id, ErrNotFound)
	}

	a := accountFromStorage(row)
	return &a, nil
}

// ListAccounts returns the owner's active accounts ordered by name.
func (s *AccountService) ListAccounts(ctx context.Context, owner uuid.UUID) ([]Account, error) {
	rows, err := s.storage.Accounts.ListActive(ctx, owner)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	accounts := make([]Account, len(rows))
	for i, row := range rows {
		accounts[i] = accountFromStorage(row)
	}
	return accounts, nil
}

// TotalBalance sums the balances of the owner's active accounts.
func (s *AccountService) TotalBalance(ctx context.Context, owner uuid.UUID) (decimal.Decimal, error) {
	return s.storage.Accounts.TotalBalance(ctx, owner)
}
