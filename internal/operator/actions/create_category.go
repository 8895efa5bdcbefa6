package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
)

type CreateCategory struct {
	UserID uuid.UUID
	Name   string
	Type   string

	CreatedID uuid.UUID
}

func (c *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Category.Insert(ctx, &category.CategoryCreate{
		UserID: c.UserID,
		Name:   c.Name,
		Type:   c.Type,
	})
	if err != nil {
		return err
	}

	c.CreatedID = id
	return nil
}

type CreateSubcategory struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Name       string

	CreatedID uuid.UUID
}

func (c *CreateSubcategory) Perform(ctx context.Context, writer *storage.Writer) error {
	parent, err := writer.Category.FindByID(ctx, c.UserID, c.CategoryID)
	if err != nil {
		return err
	}
	if parent == nil {
		return fmt.Errorf("category %s: %w", c.CategoryID, ErrInvalidReference)
	}

	id, err := writer.Category.InsertSubcategory(ctx, &category.SubcategoryCreate{
		UserID:     c.UserID,
		CategoryID: c.CategoryID,
		Name:       c.Name,
	})
	if err != nil {
		return err
	}

	c.CreatedID = id
	return nil
}
