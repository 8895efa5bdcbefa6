package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-tracker/internal/storage/account"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

// Committer ends a database transaction. bob.Tx satisfies it.
type Committer interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Writer struct {
	tx          Committer
	Account     account.IAccountWriter
	Category    category.ICategoryWriter
	Transaction transaction.ITransactionWriter
}

func NewWriter(tx bob.Tx) *Writer {
	return NewWriterWith(tx, account.NewWriter(tx), category.NewWriter(tx), transaction.NewWriter(tx))
}

// NewWriterWith assembles a Writer from its parts, letting tests substitute the tables.
func NewWriterWith(
	tx Committer,
	accounts account.IAccountWriter,
	categories category.ICategoryWriter,
	transactions transaction.ITransactionWriter,
) *Writer {
	return &Writer{
		tx:          tx,
		Account:     accounts,
		Category:    categories,
		Transaction: transactions,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
