package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/storage"
)

// checkClassification verifies the category and subcategory belong to the owner, that the
// subcategory sits under the category, and that the category type matches the transaction type.
func checkClassification(ctx context.Context, writer *storage.Writer, userID uuid.UUID, transactionType string, categoryID, subcategoryID uuid.NullUUID) error {
	if categoryID.Valid {
		category, err := writer.Category.FindByID(ctx, userID, categoryID.UUID)
		if err != nil {
			return err
		}
		if category == nil {
			return fmt.Errorf("category %s: %w", categoryID.UUID, ErrInvalidReference)
		}
		if category.Type != transactionType {
			return fmt.Errorf("category %s is for %s transactions: %w", categoryID.UUID, category.Type, ErrInvalidReference)
		}
	}

	if subcategoryID.Valid {
		if !categoryID.Valid {
			return fmt.Errorf("subcategory %s without a category: %w", subcategoryID.UUID, ErrInvalidReference)
		}
		subcategory, err := writer.Category.FindSubcategory(ctx, userID, subcategoryID.UUID)
		if err != nil {
			return err
		}
		if subcategory == nil || subcategory.CategoryID != categoryID.UUID {
			return fmt.Errorf("subcategory %s: %w", subcategoryID.UUID, ErrInvalidReference)
		}
	}

	return nil
}
