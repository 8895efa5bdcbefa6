package service

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
)

// CategoryService handles categories and subcategories. Every listing is scoped to the owner.
type CategoryService struct {
	storage  *storage.Storage
	operator actionProcessor
}

func NewCategoryService(store *storage.Storage, op actionProcessor) *CategoryService {
	return &CategoryService{storage: store, operator: op}
}

// ListCategories returns the owner's categories, optionally only those of one type.
func (s *CategoryService) ListCategories(ctx context.Context, owner uuid.UUID, typ *TransactionType) ([]Category, error) {
	filter := &category.CategoryFilter{}
	if typ != nil {
		t := string(*typ)
		filter.Type = &t
	}

	rows, err := s.storage.Categories.List(ctx, owner, filter)
	if err != nil {
		return nil, err
	}

	categories := make([]Category, len(rows))
	for i, row := range rows {
		categories[i] = categoryFromStorage(row)
	}
	return categories, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, owner uuid.UUID, name string, typ TransactionType) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, newValidationError("name", "is required")
	}
	if _, err := ParseTransactionType(string(typ)); err != nil {
		return uuid.Nil, newValidationError("type", err.Error())
	}

	action := &actions.CreateCategory{UserID: owner, Name: name, Type: string(typ)}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, translateActionError(err)
	}
	return action.CreatedID, nil
}

// ListSubcategories returns the owner's subcategories, optionally only those under one category.
func (s *CategoryService) ListSubcategories(ctx context.Context, owner uuid.UUID, categoryID *uuid.UUID) ([]Subcategory, error) {
	rows, err := s.storage.Categories.ListSubcategories(ctx, owner, &category.SubcategoryFilter{CategoryID: categoryID})
	if err != nil {
		return nil, err
	}

	subcategories := make([]Subcategory, len(rows))
	for i, row := range rows {
		subcategories[i] = subcategoryFromStorage(row)
	}
	return subcategories, nil
}

// CreateSubcategory fails with a ValidationError when the category is not the owner's.
func (s *CategoryService) CreateSubcategory(ctx context.Context, owner, categoryID uuid.UUID, name string) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, newValidationError("name", "is required")
	}

	action := &actions.CreateSubcategory{UserID: owner, CategoryID: categoryID, Name: name}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, translateActionError(err)
	}
	return action.CreatedID, nil
}
