package category

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/scan"
)

var _ ICategoryWriter = (*Writer)(nil)

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

func (w *Writer) Insert(ctx context.Context, create *CategoryCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into(categoriesTable, "user_id", "name", "type"),
		im.Values(psql.Arg(create.UserID), psql.Arg(create.Name), psql.Arg(create.Type)),
		im.Returning("id"),
	)

	return bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
}

func (w *Writer) InsertSubcategory(ctx context.Context, create *SubcategoryCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into(subcategoriesTable, "user_id", "category_id", "name"),
		im.Values(psql.Arg(create.UserID), psql.Arg(create.CategoryID), psql.Arg(create.Name)),
		im.Returning("id"),
	)

	return bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
}
