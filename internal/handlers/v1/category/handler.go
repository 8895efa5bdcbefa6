package category

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

type ListCategoriesInput struct {
	Type string `query:"type" doc:"Only categories for this transaction type: income or expense"`
}

type ListCategoriesResponseBody struct {
	Categories []Category `json:"categories" doc:"Categories ordered by name"`
}

type ListCategoriesOutput struct {
	Body ListCategoriesResponseBody
}

type CreateCategoryBody struct {
	Name string `json:"name" minLength:"1" doc:"Category name"`
	Type string `json:"type" enum:"income,expense" doc:"Transaction type the category applies to"`
}

type CreateCategoryInput struct {
	Body CreateCategoryBody
}

type ListSubcategoriesInput struct {
	CategoryID string `query:"categoryID" doc:"Only subcategories under this category UUID"`
}

type ListSubcategoriesResponseBody struct {
	Subcategories []Subcategory `json:"subcategories" doc:"Subcategories ordered by name"`
}

type ListSubcategoriesOutput struct {
	Body ListSubcategoriesResponseBody
}

type CreateSubcategoryBody struct {
	CategoryID string `json:"categoryID" format:"uuid" doc:"Parent category UUID"`
	Name       string `json:"name" minLength:"1" doc:"Subcategory name"`
}

type CreateSubcategoryInput struct {
	Body CreateSubcategoryBody
}

type categoryService interface {
	ListCategories(ctx context.Context, owner uuid.UUID, typ *service.TransactionType) ([]service.Category, error)
	CreateCategory(ctx context.Context, owner uuid.UUID, name string, typ service.TransactionType) (uuid.UUID, error)
	ListSubcategories(ctx context.Context, owner uuid.UUID, categoryID *uuid.UUID) ([]service.Subcategory, error)
	CreateSubcategory(ctx context.Context, owner, categoryID uuid.UUID, name string) (uuid.UUID, error)
}

// Handler serves the category and subcategory endpoints.
type Handler struct {
	CategoryService categoryService
}

func NewHandler(svc categoryService) *Handler {
	return &Handler{CategoryService: svc}
}

// Register registers the category endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Description: "Returns the caller's categories, optionally only those of one transaction type.",
		Tags:        []string{"Categories"},
		Security:    auth.Security(),
	}, h.listCategories)

	huma.Register(api, huma.Operation{
		OperationID: "create-category",
		Method:      http.MethodPost,
		Path:        "/v1/category",
		Summary:     "Create category",
		Tags:        []string{"Categories"},
		Security:    auth.Security(),
	}, h.createCategory)

	huma.Register(api, huma.Operation{
		OperationID: "list-subcategories",
		Method:      http.MethodGet,
		Path:        "/v1/subcategories",
		Summary:     "List subcategories",
		Description: "Returns the caller's subcategories, optionally only those under one category.",
		Tags:        []string{"Categories"},
		Security:    auth.Security(),
	}, h.listSubcategories)

	huma.Register(api, huma.Operation{
		OperationID: "create-subcategory",
		Method:      http.MethodPost,
		Path:        "/v1/subcategory",
		Summary:     "Create subcategory",
		Description: "Creates a subcategory under one of the caller's categories.",
		Tags:        []string{"Categories"},
		Security:    auth.Security(),
	}, h.createSubcategory)
}

func parseTypeFilter(raw string) (*service.TransactionType, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	typ, err := service.ParseTransactionType(raw)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid type", err)
	}
	return &typ, nil
}

func (h *Handler) listCategories(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	owner, err := auth.RequireOwner(ctx)
	if err != nil {
		return nil, err
	}
	typ, err := parseTypeFilter(input.Type)
	if err != nil {
		return nil, err
	}

	categories, err := h.CategoryService.ListCategories(ctx, owner, typ)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list categories", err)
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("categoryCount", len(categories))
	}

	out := &ListCategoriesOutput{}
	out.Body.Categories = make([]Category, len(categories))
	for i, c := range categories {
		out.Body.Categories[i] = categoryFromService(c)
	}
	return out, nil
}

func (h *Handler) createCategory(ctx context.Context, input *CreateCategoryInput) (*CreatedOutput, error) {
	owner, err := auth.RequireOwner(ctx)
	if err != nil {
		return nil, err
	}

	id, err := h.CategoryService.CreateCategory(ctx, owner, input.Body.Name, service.TransactionType(input.Body.Type))
	if err != nil {
		return nil, httperr.FromError(err, "failed to create category")
	}
	return &CreatedOutput{Status: http.StatusCreated, Body: CreatedResponse{ID: id.String()}}, nil
}

func (h *Handler) listSubcategories(ctx context.Context, input *ListSubcategoriesInput) (*ListSubcategoriesOutput, error) {
	owner, err := auth.RequireOwner(ctx)
	if err != nil {
		return nil, err
	}

	var categoryID *uuid.UUID
	if raw := strings.TrimSpace(input.CategoryID); raw != "" {
		id, err := uuid.FromString(raw)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
		}
		categoryID = &id
	}

	subcategories, err := h.CategoryService.ListSubcategories(ctx, owner, categoryID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list subcategories", err)
	}

	out := &ListSubcategoriesOutput{}
	out.Body.Subcategories = make([]Subcategory, len(subcategories))
	for i, s := range subcategories {
		out.Body.Subcategories[i] = subcategoryFromService(s)
	}
	return out, nil
}

func (h *Handler) createSubcategory(ctx context.Context, input *CreateSubcategoryInput) (*CreatedOutput, error) {
	owner, err := auth.RequireOwner(ctx)
	if err != nil {
		return nil, err
	}
	categoryID, err := uuid.FromString(input.Body.CategoryID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
	}

	id, err := h.CategoryService.CreateSubcategory(ctx, owner, categoryID, input.Body.Name)
	if err != nil {
		return nil, httperr.FromError(err, "failed to create subcategory")
	}
	return &CreatedOutput{Status: http.StatusCreated, Body: CreatedResponse{ID: id.String()}}, nil
}
