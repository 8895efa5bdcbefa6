package actions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

var testDate = time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

func expenseFields(accountID uuid.UUID, amount string) transaction.TransactionFields {
	return transaction.TransactionFields{
		AccountID:       accountID,
		Type:            typeExpense,
		Amount:          decimal.RequireFromString(amount),
		Description:     "Groceries",
		TransactionDate: testDate,
	}
}

// -- CreateAccount tests --

func TestCreateAccount_SetsCreatedID(t *testing.T) {
	store := newFakeStore()
	owner := uuid.Must(uuid.NewV4())
	action := &CreateAccount{UserID: owner, Name: "Wallet", Type: "cash", OpeningBalance: decimal.RequireFromString("250")}

	require.NoError(t, action.Perform(context.Background(), store.writer()))

	assert.NotEqual(t, uuid.Nil, action.CreatedID)
	assert.Equal(t, "250.00", store.balance(action.CreatedID))
}

func TestCreateAccount_InsertError(t *testing.T) {
	store := newFakeStore()
	store.failInsert = errors.New("insert failed")
	action := &CreateAccount{UserID: uuid.Must(uuid.NewV4()), Name: "Wallet", Type: "cash"}

	err := action.Perform(context.Background(), store.writer())
	assert.EqualError(t, err, "insert failed")
	assert.Equal(t, uuid.Nil, action.CreatedID)
}

// -- CreateSubcategory tests --

func TestCreateSubcategory_ForeignCategory(t *testing.T) {
	store := newFakeStore()
	categoryID := store.addCategory(uuid.Must(uuid.NewV4()), typeExpense)

	action := &CreateSubcategory{UserID: uuid.Must(uuid.NewV4()), CategoryID: categoryID, Name: "Snacks"}
	err := action.Perform(context.Background(), store.writer())

	assert.ErrorIs(t, err, ErrInvalidReference)
	assert.Empty(t, store.subcategories)
}

func TestCreateSubcategory_Success(t *testing.T) {
	store := newFakeStore()
	owner := uuid.Must(uuid.NewV4())
	categoryID := store.addCategory(owner, typeExpense)

	action := &CreateSubcategory{UserID: owner, CategoryID: categoryID, Name: "Snacks"}
	require.NoError(t, action.Perform(context.Background(), store.writer()))

	assert.Equal(t, categoryID, store.subcategories[action.CreatedID].CategoryID)
}

// -- CreateTransaction tests --

func TestCreateTransaction_ExpenseSubtracts(t *testing.T) {
	store := newFakeStore()
	owner := uuid.Must(uuid.NewV4())
	accountID := store.addAccount(owner, "100.00")

	action := &CreateTransaction{UserID: owner, Fields: expenseFields(accountID, "40")}
	require.NoError(t, action.Perform(context.Background(), store.writer()))

	assert.Equal(t, "60.00", store.balance(accountID))
	assert.Contains(t, store.transactions, action.CreatedID)
}

func TestCreateTransaction_IncomeAdds(t *testing.T) {
	store := newFakeStore()
	owner := uuid.Must(uuid.NewV4())
	accountID := store.addAccount(owner, "100.00")
	fields := expenseFields(accountID, "25.50")
	fields.Type = typeIncome

	require.NoError(t, (&CreateTransaction{UserID: owner, Fields: fields}).Perform(context.Background(), store.writer()))

	assert.Equal(t, "125.50", store.balance(accountID))
}

func TestCreateTransaction_UnknownAccount(t *testing.T) {
	store := newFakeStore()
	owner := uuid.Must(uuid.NewV4())

	err := (&CreateTransaction{UserID: owner, Fields: expenseFields(uuid.Must(uuid.NewV4()), "1")}).
		Perform(context.Background(), store.writer())

	assert.ErrorIs(t, err, ErrInvalidReference)
	assert.Empty(t, store.transactions)
}

func TestCreateTransaction_CategoryTypeMismatch(t *testing.T) {
	store := newFakeStore()
	owner := uuid.Must(uuid.NewV4())
	accountID := store.addAccount(owner, "0")
	fields := expenseFields(accountID, "10")
	fields.CategoryID = uuid.NullUUID{UUID: store.addCategory(owner, typeIncome), Valid: true}

	err := (&CreateTransaction{UserID: owner, Fields: fields}).Perform(context.Background(), store.writer())

	assert.ErrorIs(t, err, ErrInvalidReference)
	assert.Equal(t, "0.00", store.balance(accountID))
}

func TestCreateTransaction_SubcategoryOutsideCategory(t *testing.T) {
	store := newFakeStore()
	owner := uuid.Must(uuid.NewV4())
	accountID := store.addAccount(owner, "0")
	categoryID := store.addCategory(owner, typeExpense)
	otherCategoryID := store.addCategory(owner, typeExpense)
	fields := expenseFields(accountID, "10")
	fields.CategoryID = uuid.NullUUID{UUID: categoryID, Valid: true}
	fields.SubcategoryID = uuid.NullUUID{UUID: store.addSubcategory(owner, otherCategoryID), Valid: true}

	err := (&CreateTransaction{UserID: owner, Fields: fields}).Perform(context.Background(), store.writer())

	assert.ErrorIs(t, err, ErrInvalidReference)
}

// -- UpdateTransaction tests --

func seedExpense(t *testing.T, store *fakeStore, owner, accountID uuid.UUID, amount string) uuid.UUID {
	t.Helper()
	action := &CreateTransaction{UserID: owner, Fields: expenseFields(accountID, amount)}
	require.NoError(t, action.Perform(context.Background(), store.writer()))
	return action.CreatedID
}

func TestUpdateTransaction_AmountRevertsThenApplies(t *testing.T) {
	store := newFakeStore()
	owner := uuid.Must(uuid.NewV4())
	accountID := store.addAccount(owner, "100.00")
	id := seedExpense(t, store, owner, accountID, "40")

	action := &UpdateTransaction{UserID: owner, ID: id, Amount: omit.From(decimal.RequireFromString("10"))}
	require.NoError(t, action.Perform(context.Background(), store.writer()))

	assert.Equal(t, "90.00", store.balance(accountID))
	assert.Equal(t, "Groceries", store.transactions[id].Description.String, "unset fields are kept")
}

func TestUpdateTransaction_TypeFlip(t *testing.T) {
	store := newFakeStore()
	owner := uuid.Must(uuid.NewV4())
	accountID := store.addAccount(owner, "100.00")
	id := seedExpense(t, store, owner, accountID, "40")

	action := &UpdateTransaction{UserID: owner, ID: id, Type: omit.From(typeIncome)}
	require.NoError(t, action.Perform(context.Background(), store.writer()))

	assert.Equal(t, "140.00", store.balance(accountID))
}

func TestUpdateTransaction_MoveAccount(t *testing.T) {
	store := newFakeStore()
	owner := uuid.Must(uuid.NewV4())
	fromID := store.addAccount(owner, "100.00")
	toID := store.addAccount(owner, "50.00")
	id := seedExpense(t, store, owner, fromID, "40")

	action := &UpdateTransaction{UserID: owner, ID: id, AccountID: omit.From(toID)}
	require.NoError(t, action.Perform(context.Background(), store.writer()))

	assert.Equal(t, "100.00", store.balance(fromID))
	assert.Equal(t, "10.00", store.balance(toID))
	assert.Equal(t, toID, store.transactions[id].AccountID)
}

func TestUpdateTransaction_ClearSubcategory(t *testing.T) {
	store := newFakeStore()
	owner := uuid.Must(uuid.NewV4())
	accountID := store.addAccount(owner, "100.00")
	categoryID := store.addCategory(owner, typeExpense)
	fields := expenseFields(accountID, "5")
	fields.CategoryID = uuid.NullUUID{UUID: categoryID, Valid: true}
	fields.SubcategoryID = uuid.NullUUID{UUID: store.addSubcategory(owner, categoryID), Valid: true}
	create := &CreateTransaction{UserID: owner, Fields: fields}
	require.NoError(t, create.Perform(context.Background(), store.writer()))

	action := &UpdateTransaction{UserID: owner, ID: create.CreatedID, SubcategoryID: omitnull.FromPtr[uuid.UUID](nil)}
	require.NoError(t, action.Perform(context.Background(), store.writer()))

	row := store.transactions[create.CreatedID]
	assert.False(t, row.SubcategoryID.Valid)
	assert.True(t, row.CategoryID.Valid)
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	store := newFakeStore()
	action := &UpdateTransaction{UserID: uuid.Must(uuid.NewV4()), ID: uuid.Must(uuid.NewV4())}

	err := action.Perform(context.Background(), store.writer())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateTransaction_OtherOwner(t *testing.T) {
	store := newFakeStore()
	owner := uuid.Must(uuid.NewV4())
	accountID := store.addAccount(owner, "100.00")
	id := seedExpense(t, store, owner, accountID, "40")

	action := &UpdateTransaction{UserID: uuid.Must(uuid.NewV4()), ID: id, Amount: omit.From(decimal.RequireFromString("1"))}
	err := action.Perform(context.Background(), store.writer())

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "60.00", store.balance(accountID))
}

// -- DeleteTransaction tests --

func TestDeleteTransaction_RevertsBalance(t *testing.T) {
	store := newFakeStore()
	owner := uuid.Must(uuid.NewV4())
	accountID := store.addAccount(owner, "100.00")
	id := seedExpense(t, store, owner, accountID, "40")

	require.NoError(t, (&DeleteTransaction{UserID: owner, ID: id}).Perform(context.Background(), store.writer()))

	assert.Equal(t, "100.00", store.balance(accountID))
	assert.NotContains(t, store.transactions, id)
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	store := newFakeStore()

	err := (&DeleteTransaction{UserID: uuid.Must(uuid.NewV4()), ID: uuid.Must(uuid.NewV4())}).
		Perform(context.Background(), store.writer())

	assert.ErrorIs(t, err, ErrNotFound)
}
