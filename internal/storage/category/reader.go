package category

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

var _ ICategoryTable = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) List(ctx context.Context, userID uuid.UUID, filter *CategoryFilter) ([]*Category, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns("id", "user_id", "name", "type", "created_at"),
		sm.From(categoriesTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	}
	if filter != nil && filter.Type != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("type").EQ(psql.Arg(*filter.Type))))
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("name")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)

	return bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Category]())
}

// FindByID returns nil when the category does not exist for the owner.
func (r *Reader) FindByID(ctx context.Context, userID, id uuid.UUID) (*Category, error) {
	q := psql.Select(
		sm.Columns("id", "user_id", "name", "type", "created_at"),
		sm.From(categoriesTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)

	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Category]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return row, err
}

func (r *Reader) ListSubcategories(ctx context.Context, userID uuid.UUID, filter *SubcategoryFilter) ([]*Subcategory, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns("id", "user_id", "category_id", "name", "created_at"),
		sm.From(subcategoriesTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	}
	if filter != nil && filter.CategoryID != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("category_id").EQ(psql.Arg(*filter.CategoryID))))
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("name")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)

	return bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Subcategory]())
}

// FindSubcategory returns nil when the subcategory does not exist for the owner.
func (r *Reader) FindSubcategory(ctx context.Context, userID, id uuid.UUID) (*Subcategory, error) {
	q := psql.Select(
		sm.Columns("id", "user_id", "category_id", "name", "created_at"),
		sm.From(subcategoriesTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)

	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Subcategory]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return row, err
}
