package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var _ IAccountTable = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// ListActive returns the owner's active accounts ordered by name.
func (r *Reader) ListActive(ctx context.Context, userID uuid.UUID) ([]*Account, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("is_active").EQ(psql.Arg(true))),
		sm.OrderBy(psql.Quote("name")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)

	return bob.All(ctx, r.exec, q, scan.StructMapper[*Account]())
}

// FindByID returns nil when the account does not exist for the owner.
func (r *Reader) FindByID(ctx context.Context, userID, id uuid.UUID) (*Account, error) {
	return r.findOne(ctx, userID, id)
}

// TotalBalance sums the balance of the owner's active accounts.
func (r *Reader) TotalBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	q := psql.Select(
		sm.Columns(psql.Raw("COALESCE(SUM(balance), 0)")),
		sm.From(tableName),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("is_active").EQ(psql.Arg(true))),
	)

	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[decimal.Decimal])
}

func (r *Reader) findOne(ctx context.Context, userID, id uuid.UUID, extra ...bob.Mod[*dialect.SelectQuery]) (*Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	}
	queryMods = append(queryMods, extra...)

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Account]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}
