package actions

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/account"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

// fakeStore is an in-memory stand-in for the tables a Writer exposes.
type fakeStore struct {
	accounts      map[uuid.UUID]*account.Account
	categories    map[uuid.UUID]*category.Category
	subcategories map[uuid.UUID]*category.Subcategory
	transactions  map[uuid.UUID]*transaction.Transaction
	failInsert    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:      map[uuid.UUID]*account.Account{},
		categories:    map[uuid.UUID]*category.Category{},
		subcategories: map[uuid.UUID]*category.Subcategory{},
		transactions:  map[uuid.UUID]*transaction.Transaction{},
	}
}

func (s *fakeStore) writer() *storage.Writer {
	return storage.NewWriterWith(nil, &fakeAccounts{s}, &fakeCategories{s}, &fakeTransactions{s})
}

func (s *fakeStore) addAccount(owner uuid.UUID, balance string) uuid.UUID {
	id := uuid.Must(uuid.NewV4())
	s.accounts[id] = &account.Account{ID: id, UserID: owner, Name: "Savings", Type: "bank", Balance: decimal.RequireFromString(balance), IsActive: true}
	return id
}

func (s *fakeStore) addCategory(owner uuid.UUID, categoryType string) uuid.UUID {
	id := uuid.Must(uuid.NewV4())
	s.categories[id] = &category.Category{ID: id, UserID: owner, Name: "Food", Type: categoryType}
	return id
}

func (s *fakeStore) addSubcategory(owner, categoryID uuid.UUID) uuid.UUID {
	id := uuid.Must(uuid.NewV4())
	s.subcategories[id] = &category.Subcategory{ID: id, UserID: owner, CategoryID: categoryID, Name: "Groceries"}
	return id
}

func (s *fakeStore) balance(id uuid.UUID) string {
	return s.accounts[id].Balance.StringFixed(2)
}

type fakeAccounts struct{ s *fakeStore }

func (f *fakeAccounts) FindByID(_ context.Context, userID, id uuid.UUID) (*account.Account, error) {
	a, ok := f.s.accounts[id]
	if !ok || a.UserID != userID {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) FindByIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*account.Account, error) {
	return f.FindByID(ctx, userID, id)
}

func (f *fakeAccounts) ListActive(context.Context, uuid.UUID) ([]*account.Account, error) {
	return nil, errors.New("not used")
}

func (f *fakeAccounts) TotalBalance(context.Context, uuid.UUID) (decimal.Decimal, error) {
	return decimal.Zero, errors.New("not used")
}

func (f *fakeAccounts) Insert(_ context.Context, create *account.AccountCreate) (uuid.UUID, error) {
	if f.s.failInsert != nil {
		return uuid.Nil, f.s.failInsert
	}
	id := uuid.Must(uuid.NewV4())
	f.s.accounts[id] = &account.Account{ID: id, UserID: create.UserID, Name: create.Name, Type: create.Type, Balance: create.OpeningBalance, IsActive: true}
	return id, nil
}

func (f *fakeAccounts) UpdateBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) error {
	a, ok := f.s.accounts[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.Balance = balance
	return nil
}

type fakeCategories struct{ s *fakeStore }

func (f *fakeCategories) FindByID(_ context.Context, userID, id uuid.UUID) (*category.Category, error) {
	c, ok := f.s.categories[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCategories) List(context.Context, uuid.UUID, *category.CategoryFilter) ([]*category.Category, error) {
	return nil, errors.New("not used")
}

func (f *fakeCategories) FindSubcategory(_ context.Context, userID, id uuid.UUID) (*category.Subcategory, error) {
	sc, ok := f.s.subcategories[id]
	if !ok || sc.UserID != userID {
		return nil, nil
	}
	return sc, nil
}

func (f *fakeCategories) ListSubcategories(context.Context, uuid.UUID, *category.SubcategoryFilter) ([]*category.Subcategory, error) {
	return nil, errors.New("not used")
}

func (f *fakeCategories) Insert(_ context.Context, create *category.CategoryCreate) (uuid.UUID, error) {
	id := uuid.Must(uuid.NewV4())
	f.s.categories[id] = &category.Category{ID: id, UserID: create.UserID, Name: create.Name, Type: create.Type}
	return id, nil
}

func (f *fakeCategories) InsertSubcategory(_ context.Context, create *category.SubcategoryCreate) (uuid.UUID, error) {
	id := uuid.Must(uuid.NewV4())
	f.s.subcategories[id] = &category.Subcategory{ID: id, UserID: create.UserID, CategoryID: create.CategoryID, Name: create.Name}
	return id, nil
}

type fakeTransactions struct{ s *fakeStore }

func (f *fakeTransactions) FindByID(_ context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	t, ok := f.s.transactions[id]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTransactions) FindByIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	return f.FindByID(ctx, userID, id)
}

func (f *fakeTransactions) List(context.Context, uuid.UUID, *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	return nil, errors.New("not used")
}

func (f *fakeTransactions) Insert(_ context.Context, userID uuid.UUID, fields *transaction.TransactionFields) (uuid.UUID, error) {
	id := uuid.Must(uuid.NewV4())
	f.s.transactions[id] = rowFromFields(id, userID, fields)
	return id, nil
}

func (f *fakeTransactions) Update(_ context.Context, userID, id uuid.UUID, fields *transaction.TransactionFields) error {
	if _, ok := f.s.transactions[id]; !ok {
		return transaction.ErrNoRows
	}
	f.s.transactions[id] = rowFromFields(id, userID, fields)
	return nil
}

func (f *fakeTransactions) Delete(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	if _, ok := f.s.transactions[id]; !ok {
		return transaction.ErrNoRows
	}
	delete(f.s.transactions, id)
	return nil
}

func rowFromFields(id, userID uuid.UUID, fields *transaction.TransactionFields) *transaction.Transaction {
	return &transaction.Transaction{
		ID:              id,
		UserID:          userID,
		AccountID:       fields.AccountID,
		CategoryID:      fields.CategoryID,
		SubcategoryID:   fields.SubcategoryID,
		Type:            fields.Type,
		Amount:          fields.Amount,
		Description:     sql.NullString{String: fields.Description, Valid: fields.Description != ""},
		TransactionDate: fields.TransactionDate,
	}
}
