package account

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ IAccountWriter = (*Writer)(nil)

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

// FindByIDForUpdate locks the account row until the surrounding transaction ends.
func (w *Writer) FindByIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*Account, error) {
	return w.findOne(ctx, userID, id, sm.ForUpdate())
}

func (w *Writer) Insert(ctx context.Context, create *AccountCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into(tableName, "user_id", "name", "type", "bank_name", "account_number", "balance"),
		im.Values(
			psql.Arg(create.UserID),
			psql.Arg(create.Name),
			psql.Arg(create.Type),
			psql.Arg(nullString(create.BankName)),
			psql.Arg(nullString(create.AccountNumber)),
			psql.Arg(create.OpeningBalance),
		),
		im.Returning("id"),
	)

	return bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
}

func (w *Writer) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("balance").ToArg(balance),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning("id"),
	)

	_, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return fmt.Errorf("update balance of account %s: %w", id, err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
