package service

import (
	"context"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// UncategorizedName labels transactions without a category.
const UncategorizedName = "Uncategorized"

type transactionLister interface {
	ListTransactions(ctx context.Context, owner uuid.UUID, filter TransactionFilter) ([]Transaction, error)
}

// AnalyticsService derives monthly figures from the owner's transactions.
type AnalyticsService struct {
	transactions transactionLister
}

func NewAnalyticsService(transactions transactionLister) *AnalyticsService {
	return &AnalyticsService{transactions: transactions}
}

type MonthlyTotals struct {
	Year    int
	Month   time.Month
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// MonthlyTotals sums income and expense for one calendar month.
func (s *AnalyticsService) MonthlyTotals(ctx context.Context, owner uuid.UUID, year int, month time.Month) (MonthlyTotals, error) {
	totals := MonthlyTotals{Year: year, Month: month}

	rows, err := s.transactions.ListTransactions(ctx, owner, monthFilter(year, month, nil))
	if err != nil {
		return totals, err
	}

	for _, row := range rows {
		switch row.Type {
		case TransactionTypeIncome:
			totals.Income = totals.Income.Add(row.Amount)
		case TransactionTypeExpense:
			totals.Expense = totals.Expense.Add(row.Amount)
		}
	}
	totals.Net = totals.Income.Sub(totals.Expense)
	return totals, nil
}

// CategoryBreakdown groups one month's transactions of a type by category name, largest first.
func (s *AnalyticsService) CategoryBreakdown(ctx context.Context, owner uuid.UUID, year int, month time.Month, typ TransactionType) ([]CategoryAmount, error) {
	if _, err := ParseTransactionType(string(typ)); err != nil {
		return nil, newValidationError("type", err.Error())
	}

	rows, err := s.transactions.ListTransactions(ctx, owner, monthFilter(year, month, &typ))
	if err != nil {
		return nil, err
	}

	byName := map[string]decimal.Decimal{}
	var order []string
	for _, row := range rows {
		name := UncategorizedName
		if row.Category != nil && row.Category.Name != "" {
			name = row.Category.Name
		}
		if _, ok := byName[name]; !ok {
			order = append(order, name)
		}
		byName[name] = byName[name].Add(row.Amount)
	}

	breakdown := make([]CategoryAmount, len(order))
	for i, name := range order {
		breakdown[i] = CategoryAmount{Name: name, Amount: byName[name]}
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount.GreaterThan(breakdown[j].Amount)
	})
	return breakdown, nil
}

func monthFilter(year int, month time.Month, typ *TransactionType) TransactionFilter {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return TransactionFilter{Type: typ, DateFrom: &first, DateTo: &last}
}
