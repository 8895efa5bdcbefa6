package viewer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// fakeFetcher answers each fetch with respond, recording the filters it was asked for.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   []service.TransactionFilter
	respond func(call int, filter service.TransactionFilter) ([]service.Transaction, error)
}

func (f *fakeFetcher) FetchTransactions(_ context.Context, filter service.TransactionFilter) ([]service.Transaction, error) {
	f.mu.Lock()
	call := len(f.calls)
	f.calls = append(f.calls, filter)
	respond := f.respond
	f.mu.Unlock()
	return respond(call, filter)
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func returning(records []service.Transaction) *fakeFetcher {
	return &fakeFetcher{respond: func(int, service.TransactionFilter) ([]service.Transaction, error) {
		return records, nil
	}}
}

type mockMutator struct {
	mock.Mock
}

func (m *mockMutator) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMutator) UpdateTransaction(ctx context.Context, id uuid.UUID, patch service.TransactionPatch) (*service.Transaction, error) {
	args := m.Called(ctx, id, patch)
	updated, _ := args.Get(0).(*service.Transaction)
	return updated, args.Error(1)
}

// countingView wraps View and counts render calls.
type countingView struct {
	*View
	mu               sync.Mutex
	rowRenders       int
	summaryRenders   int
	paginationRender int
}

func newCountingView() *countingView {
	return &countingView{View: NewView()}
}

func (c *countingView) RenderRows(rows []service.Transaction) {
	c.mu.Lock()
	c.rowRenders++
	c.mu.Unlock()
	c.View.RenderRows(rows)
}

func (c *countingView) RenderSummary(summary Summary) {
	c.mu.Lock()
	c.summaryRenders++
	c.mu.Unlock()
	c.View.RenderSummary(summary)
}

func (c *countingView) RenderPagination(model PaginationModel) {
	c.mu.Lock()
	c.paginationRender++
	c.mu.Unlock()
	c.View.RenderPagination(model)
}

func newTestEngine(fetcher Fetcher, mutator Mutator, view *countingView) *Engine {
	return NewEngine(Config{
		Fetcher:  fetcher,
		Mutator:  mutator,
		Renderer: view,
		Notifier: view,
		Logger:   logging.SetupLogging(),
	})
}

func record(date string, typ service.TransactionType, amount string) service.Transaction {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		panic(err)
	}
	return service.Transaction{
		ID:     uuid.Must(uuid.NewV4()),
		Date:   d,
		Amount: decimal.RequireFromString(amount),
		Type:   typ,
		Account: service.AccountRef{
			ID:   uuid.Must(uuid.NewV4()),
			Name: "Savings",
			Type: "bank",
		},
	}
}

// makeRecords builds n expense records on descending dates.
func makeRecords(n int) []service.Transaction {
	records := make([]service.Transaction, n)
	start := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	for i := range records {
		records[i] = record(start.AddDate(0, 0, -i).Format(DateLayout), service.TransactionTypeExpense, fmt.Sprintf("%d.25", i+1))
	}
	return records
}
