package transaction

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/viewer"
)

type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, owner uuid.UUID, create service.TransactionCreate) (uuid.UUID, error) {
	args := m.Called(ctx, owner, create)
	if args.Get(0) == nil {
		return uuid.Nil, args.Error(1)
	}
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, owner uuid.UUID, filter service.TransactionFilter) ([]service.Transaction, error) {
	args := m.Called(ctx, owner, filter)
	records, _ := args.Get(0).([]service.Transaction)
	return records, args.Error(1)
}

func (m *mockTransactionService) UpdateTransaction(ctx context.Context, owner, id uuid.UUID, patch service.TransactionPatch) (*service.Transaction, error) {
	args := m.Called(ctx, owner, id, patch)
	updated, _ := args.Get(0).(*service.Transaction)
	return updated, args.Error(1)
}

func (m *mockTransactionService) DeleteTransaction(ctx context.Context, owner, id uuid.UUID) error {
	return m.Called(ctx, owner, id).Error(0)
}

type mockRefresher struct {
	mock.Mock
}

func (m *mockRefresher) Refresh(ctx context.Context, owner uuid.UUID) error {
	return m.Called(ctx, owner).Error(0)
}

// newTestAPI returns a humatest API whose requests are authenticated as owner, with the
// list endpoints backed by real sessions over svc.
func newTestAPI(t *testing.T, owner uuid.UUID, svc *mockTransactionService) (humatest.TestAPI, *viewer.Sessions) {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
		next(auth.HumaContextWithOwner(ctx, owner))
	})

	sessions := viewer.NewSessions(viewer.NewEngineFactory(svc, logging.SetupLogging(), 20), time.Minute)
	NewViewHandler(sessions).Register(api)
	return api, sessions
}

func makeRecords(n int) []service.Transaction {
	records := make([]service.Transaction, n)
	start := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	for i := range records {
		typ := service.TransactionTypeExpense
		if i%5 == 0 {
			typ = service.TransactionTypeIncome
		}
		records[i] = service.Transaction{
			ID:          uuid.Must(uuid.NewV4()),
			Date:        start.AddDate(0, 0, -i),
			Description: fmt.Sprintf("Item %d", i),
			Amount:      decimal.NewFromInt(int64(i + 1)),
			Type:        typ,
			Account:     service.AccountRef{ID: uuid.Must(uuid.NewV4()), Name: "Main", Type: "bank"},
		}
	}
	return records
}
