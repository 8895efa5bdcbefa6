package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var _ ITransactionTable = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// List returns every transaction of the owner matching the filter, most recent date first.
func (r *Reader) List(ctx context.Context, userID uuid.UUID, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := joinedSelect(userID)
	if filter != nil {
		if filter.AccountID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("t", "account_id").EQ(psql.Arg(*filter.AccountID))))
		}
		if filter.CategoryID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("t", "category_id").EQ(psql.Arg(*filter.CategoryID))))
		}
		if filter.Type != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("t", "type").EQ(psql.Arg(*filter.Type))))
		}
		if filter.DateFrom != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("t", "transaction_date").GTE(psql.Arg(filter.DateFrom.Format(DateLayout)))))
		}
		if filter.DateTo != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("t", "transaction_date").LTE(psql.Arg(filter.DateTo.Format(DateLayout)))))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("t", "transaction_date")).Desc(),
		sm.OrderBy(psql.Quote("t", "created_at")).Desc(),
		sm.OrderBy(psql.Quote("t", "id")).Desc(),
	)

	return bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
}

// FindByID returns nil when the transaction does not exist for the owner.
func (r *Reader) FindByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	queryMods := joinedSelect(userID)
	queryMods = append(queryMods, sm.Where(psql.Quote("t", "id").EQ(psql.Arg(id))))

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return row, err
}

func joinedSelect(userID uuid.UUID) []bob.Mod[*dialect.SelectQuery] {
	return []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(
			"t.id AS id",
			"t.user_id AS user_id",
			"t.account_id AS account_id",
			"a.name AS account_name",
			"a.type AS account_type",
			"t.category_id AS category_id",
			"c.name AS category_name",
			"t.subcategory_id AS subcategory_id",
			"s.name AS subcategory_name",
			"t.type AS type",
			"t.amount AS amount",
			"t.description AS description",
			"t.transaction_date AS transaction_date",
			"t.created_at AS created_at",
		),
		sm.From(tableName).As("t"),
		sm.LeftJoin("accounts").As("a").On(psql.Quote("a", "id").EQ(psql.Quote("t", "account_id"))),
		sm.LeftJoin("categories").As("c").On(psql.Quote("c", "id").EQ(psql.Quote("t", "category_id"))),
		sm.LeftJoin("subcategories").As("s").On(psql.Quote("s", "id").EQ(psql.Quote("t", "subcategory_id"))),
		sm.Where(psql.Quote("t", "user_id").EQ(psql.Arg(userID))),
	}
}
