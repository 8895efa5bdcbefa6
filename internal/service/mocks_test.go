package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage/account"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

type mockProcessor struct {
	mock.Mock
	// perform runs before the mocked result is returned, letting tests fill in CreatedID.
	perform func(action actions.IAction)
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	if m.perform != nil && args.Error(0) == nil {
		m.perform(action)
	}
	return args.Error(0)
}

type mockAccountTable struct {
	mock.Mock
}

func (m *mockAccountTable) FindByID(ctx context.Context, userID, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, userID, id)
	row, _ := args.Get(0).(*account.Account)
	return row, args.Error(1)
}

func (m *mockAccountTable) ListActive(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]*account.Account)
	return rows, args.Error(1)
}

func (m *mockAccountTable) TotalBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockCategoryTable struct {
	mock.Mock
}

func (m *mockCategoryTable) FindByID(ctx context.Context, userID, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, userID, id)
	row, _ := args.Get(0).(*category.Category)
	return row, args.Error(1)
}

func (m *mockCategoryTable) List(ctx context.Context, userID uuid.UUID, filter *category.CategoryFilter) ([]*category.Category, error) {
	args := m.Called(ctx, userID, filter)
	rows, _ := args.Get(0).([]*category.Category)
	return rows, args.Error(1)
}

func (m *mockCategoryTable) FindSubcategory(ctx context.Context, userID, id uuid.UUID) (*category.Subcategory, error) {
	args := m.Called(ctx, userID, id)
	row, _ := args.Get(0).(*category.Subcategory)
	return row, args.Error(1)
}

func (m *mockCategoryTable) ListSubcategories(ctx context.Context, userID uuid.UUID, filter *category.SubcategoryFilter) ([]*category.Subcategory, error) {
	args := m.Called(ctx, userID, filter)
	rows, _ := args.Get(0).([]*category.Subcategory)
	return rows, args.Error(1)
}

type mockTransactionTable struct {
	mock.Mock
}

func (m *mockTransactionTable) FindByID(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, userID, id)
	row, _ := args.Get(0).(*transaction.Transaction)
	return row, args.Error(1)
}

func (m *mockTransactionTable) List(ctx context.Context, userID uuid.UUID, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	rows, _ := args.Get(0).([]*transaction.Transaction)
	return rows, args.Error(1)
}
