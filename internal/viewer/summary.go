package viewer

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/service"
)

// Summary totals the whole filtered result set, not just the visible page.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
	Count   int
}

func summarize(records []service.Transaction) Summary {
	s := Summary{Count: len(records)}
	for _, record := range records {
		switch record.Type {
		case service.TransactionTypeIncome:
			s.Income = s.Income.Add(record.Amount)
		case service.TransactionTypeExpense:
			s.Expense = s.Expense.Add(record.Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}
