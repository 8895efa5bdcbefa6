//go:build integration

package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/davecgh/go-spew/spew"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/operator"
	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/storage"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("budget"),
		postgres.WithUsername("budget"),
		postgres.WithPassword("budget"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func newTestService(t *testing.T) *service.Service {
	t.Helper()
	logger := logging.SetupLogging()
	dsn := startPostgres(t)

	require.NoError(t, storage.RunMigrations(dsn, logger))
	// A second run is a no-op.
	require.NoError(t, storage.RunMigrations(dsn, logger))

	store, err := storage.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Ping(context.Background()))

	delegator := operator.NewOperatorDelegator(store, 1, logger)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	return service.NewService(store, delegator)
}

func day(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestIntegration_TransactionLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())

	accountID, err := svc.Account.CreateAccount(ctx, owner, service.AccountCreate{
		Name:           "Main",
		Type:           "bank",
		OpeningBalance: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	wagesID, err := svc.Category.CreateCategory(ctx, owner, "Wages", service.TransactionTypeIncome)
	require.NoError(t, err)
	foodID, err := svc.Category.CreateCategory(ctx, owner, "Food", service.TransactionTypeExpense)
	require.NoError(t, err)
	groceriesID, err := svc.Category.CreateSubcategory(ctx, owner, foodID, "Groceries")
	require.NoError(t, err)

	_, err = svc.Transaction.CreateTransaction(ctx, owner, service.TransactionCreate{
		AccountID:  accountID,
		CategoryID: &wagesID,
		Type:       service.TransactionTypeIncome,
		Amount:     decimal.NewFromInt(50),
		Date:       day("2024-01-05"),
	})
	require.NoError(t, err)
	expenseID, err := svc.Transaction.CreateTransaction(ctx, owner, service.TransactionCreate{
		AccountID:     accountID,
		CategoryID:    &foodID,
		SubcategoryID: &groceriesID,
		Type:          service.TransactionTypeExpense,
		Amount:        decimal.NewFromInt(20),
		Description:   "Market",
		Date:          day("2024-01-03"),
	})
	require.NoError(t, err)

	records, err := svc.Transaction.ListTransactions(ctx, owner, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, records, 2, spew.Sdump(records))
	assert.Equal(t, "2024-01-05", records[0].Date.Format(time.DateOnly))
	assert.Equal(t, "Main", records[0].Account.Name)
	require.NotNil(t, records[1].Subcategory, spew.Sdump(records[1]))
	assert.Equal(t, "Groceries", records[1].Subcategory.Name)

	balance, err := svc.Account.TotalBalance(ctx, owner)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(130).Equal(balance), balance.String())

	updated, err := svc.Transaction.UpdateTransaction(ctx, owner, expenseID, service.TransactionPatch{
		Amount: omit.From(decimal.NewFromInt(30)),
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(30).Equal(updated.Amount))

	balance, err = svc.Account.TotalBalance(ctx, owner)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(120).Equal(balance), balance.String())

	require.NoError(t, svc.Transaction.DeleteTransaction(ctx, owner, expenseID))
	balance, err = svc.Account.TotalBalance(ctx, owner)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150).Equal(balance), balance.String())
}

func TestIntegration_ListFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())

	accountID, err := svc.Account.CreateAccount(ctx, owner, service.AccountCreate{Name: "Main", Type: "bank"})
	require.NoError(t, err)
	for i, date := range []string{"2024-01-01", "2024-02-01", "2024-03-01"} {
		typ := service.TransactionTypeExpense
		if i == 1 {
			typ = service.TransactionTypeIncome
		}
		_, err := svc.Transaction.CreateTransaction(ctx, owner, service.TransactionCreate{
			AccountID: accountID,
			Type:      typ,
			Amount:    decimal.NewFromInt(int64(10 * (i + 1))),
			Date:      day(date),
		})
		require.NoError(t, err)
	}

	from, to := day("2024-01-15"), day("2024-03-01")
	records, err := svc.Transaction.ListTransactions(ctx, owner, service.TransactionFilter{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	assert.Len(t, records, 2, spew.Sdump(records))

	income := service.TransactionTypeIncome
	records, err = svc.Transaction.ListTransactions(ctx, owner, service.TransactionFilter{Type: &income})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].Category)

	other, err := svc.Transaction.ListTransactions(ctx, uuid.Must(uuid.NewV4()), service.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, other)
}
