package category

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

const (
	categoriesTable    = "categories"
	subcategoriesTable = "subcategories"
)

// Category represents a category record. Type is "income" or "expense".
type Category struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Name      string    `db:"name"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
}

// Subcategory represents a subcategory record nested under a category.
type Subcategory struct {
	ID         uuid.UUID `db:"id"`
	UserID     uuid.UUID `db:"user_id"`
	CategoryID uuid.UUID `db:"category_id"`
	Name       string    `db:"name"`
	CreatedAt  time.Time `db:"created_at"`
}

// CategoryFilter narrows a category listing. A nil Type lists both types.
type CategoryFilter struct {
	Type *string
}

// SubcategoryFilter narrows a subcategory listing. A nil CategoryID lists all of them.
type SubcategoryFilter struct {
	CategoryID *uuid.UUID
}

type CategoryCreate struct {
	UserID uuid.UUID
	Name   string
	Type   string
}

type SubcategoryCreate struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Name       string
}

// ICategoryTable defines the read side of category storage. Every call is scoped to one owner.
type ICategoryTable interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Category, error)
	List(ctx context.Context, userID uuid.UUID, filter *CategoryFilter) ([]*Category, error)
	FindSubcategory(ctx context.Context, userID, id uuid.UUID) (*Subcategory, error)
	ListSubcategories(ctx context.Context, userID uuid.UUID, filter *SubcategoryFilter) ([]*Subcategory, error)
}

// ICategoryWriter defines category operations that run inside a transaction.
type ICategoryWriter interface {
	ICategoryTable
	Insert(ctx context.Context, create *CategoryCreate) (uuid.UUID, error)
	InsertSubcategory(ctx context.Context, create *SubcategoryCreate) (uuid.UUID, error)
}
