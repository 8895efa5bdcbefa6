package category

import (
	"github.com/carson-networks/budget-tracker/internal/service"
)

// Category is the API response model for a category.
type Category struct {
	ID   string `json:"id" doc:"Category UUID"`
	Name string `json:"name" doc:"Category name"`
	Type string `json:"type" doc:"Transaction type the category applies to"`
}

// Subcategory is the API response model for a subcategory.
type Subcategory struct {
	ID         string `json:"id" doc:"Subcategory UUID"`
	CategoryID string `json:"categoryID" doc:"Parent category UUID"`
	Name       string `json:"name" doc:"Subcategory name"`
}

// CreatedResponse is the response body of the create endpoints.
type CreatedResponse struct {
	ID string `json:"id" doc:"Created UUID"`
}

type CreatedOutput struct {
	Status int
	Body   CreatedResponse
}

func categoryFromService(c service.Category) Category {
	return Category{ID: c.ID.String(), Name: c.Name, Type: string(c.Type)}
}

func subcategoryFromService(s service.Subcategory) Subcategory {
	return Subcategory{ID: s.ID.String(), CategoryID: s.CategoryID.String(), Name: s.Name}
}
