package service

import (
	"context"

	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage"
)

// actionProcessor runs a mutation on the single-writer queue. *operator.OperatorDelegator satisfies it.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Account     *AccountService
	Category    *CategoryService
	Analytics   *AnalyticsService
}

// NewService creates a new Service with the given storage and write queue.
func NewService(store *storage.Storage, op actionProcessor) *Service {
	transactions := NewTransactionService(store, op)
	return &Service{
		Transaction: transactions,
		Account:     NewAccountService(store, op),
		Category:    NewCategoryService(store, op),
		Analytics:   NewAnalyticsService(transactions),
	}
}
