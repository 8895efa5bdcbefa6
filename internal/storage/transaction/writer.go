package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ ITransactionWriter = (*Writer)(nil)

// ErrNoRows is returned by Update and Delete when the owner has no such transaction.
var ErrNoRows = errors.New("transaction: no rows affected")

type Writer struct {
	tx bob.Executor
	Reader
}

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// FindByIDForUpdate locks the transaction row. Referenced names are not loaded because
// Postgres cannot lock the nullable side of an outer join.
func (w *Writer) FindByIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(
			"id", "user_id", "account_id", "category_id", "subcategory_id",
			"type", "amount", "description", "transaction_date", "created_at",
		),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.ForUpdate(),
	)

	row, err := bob.One(ctx, w.tx, q, scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return row, err
}

func (w *Writer) Insert(ctx context.Context, userID uuid.UUID, fields *TransactionFields) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into(tableName,
			"user_id", "account_id", "category_id", "subcategory_id",
			"type", "amount", "description", "transaction_date",
		),
		im.Values(
			psql.Arg(userID),
			psql.Arg(fields.AccountID),
			psql.Arg(fields.CategoryID),
			psql.Arg(fields.SubcategoryID),
			psql.Arg(fields.Type),
			psql.Arg(fields.Amount),
			psql.Arg(description(fields.Description)),
			psql.Arg(fields.TransactionDate.Format(DateLayout)),
		),
		im.Returning("id"),
	)

	return bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
}

func (w *Writer) Update(ctx context.Context, userID, id uuid.UUID, fields *TransactionFields) error {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("account_id").ToArg(fields.AccountID),
		um.SetCol("category_id").ToArg(fields.CategoryID),
		um.SetCol("subcategory_id").ToArg(fields.SubcategoryID),
		um.SetCol("type").ToArg(fields.Type),
		um.SetCol("amount").ToArg(fields.Amount),
		um.SetCol("description").ToArg(description(fields.Description)),
		um.SetCol("transaction_date").ToArg(fields.TransactionDate.Format(DateLayout)),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		um.Returning("id"),
	)

	_, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}
	return err
}

func (w *Writer) Delete(ctx context.Context, userID, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		dm.Returning("id"),
	)

	_, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}
	return err
}

func description(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
