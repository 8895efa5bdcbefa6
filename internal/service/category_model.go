package service

import (
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/storage/category"
)

// Category classifies transactions of one type.
type Category struct {
	ID   uuid.UUID
	Name string
	Type TransactionType
}

type Subcategory struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	Name       string
}

func categoryFromStorage(row *category.Category) Category {
	return Category{ID: row.ID, Name: row.Name, Type: TransactionType(row.Type)}
}

func subcategoryFromStorage(row *category.Subcategory) Subcategory {
	return Subcategory{ID: row.ID, CategoryID: row.CategoryID, Name: row.Name}
}
