package category

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/service"
)

type mockCategoryService struct {
	mock.Mock
}

func (m *mockCategoryService) ListCategories(ctx context.Context, owner uuid.UUID, typ *service.TransactionType) ([]service.Category, error) {
	args := m.Called(ctx, owner, typ)
	categories, _ := args.Get(0).([]service.Category)
	return categories, args.Error(1)
}

func (m *mockCategoryService) CreateCategory(ctx context.Context, owner uuid.UUID, name string, typ service.TransactionType) (uuid.UUID, error) {
	args := m.Called(ctx, owner, name, typ)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockCategoryService) ListSubcategories(ctx context.Context, owner uuid.UUID, categoryID *uuid.UUID) ([]service.Subcategory, error) {
	args := m.Called(ctx, owner, categoryID)
	subcategories, _ := args.Get(0).([]service.Subcategory)
	return subcategories, args.Error(1)
}

func (m *mockCategoryService) CreateSubcategory(ctx context.Context, owner, categoryID uuid.UUID, name string) (uuid.UUID, error) {
	args := m.Called(ctx, owner, categoryID, name)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func newTestAPI(t *testing.T, owner uuid.UUID, svc *mockCategoryService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
		next(auth.HumaContextWithOwner(ctx, owner))
	})
	NewHandler(svc).Register(api)
	return api
}

// -- categories --

func TestHTTP_ListCategories_ByType(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	svc := new(mockCategoryService)
	svc.On("ListCategories", mock.Anything, owner, mock.MatchedBy(func(typ *service.TransactionType) bool {
		return typ != nil && *typ == service.TransactionTypeExpense
	})).Return([]service.Category{
		{ID: uuid.Must(uuid.NewV4()), Name: "Groceries", Type: service.TransactionTypeExpense},
	}, nil)

	resp := newTestAPI(t, owner, svc).Get("/v1/categories?type=expense")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListCategoriesResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Categories, 1)
	assert.Equal(t, "Groceries", body.Categories[0].Name)
	assert.Equal(t, "expense", body.Categories[0].Type)
	svc.AssertExpectations(t)
}

func TestHTTP_ListCategories_AllTypes(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	svc := new(mockCategoryService)
	svc.On("ListCategories", mock.Anything, owner, (*service.TransactionType)(nil)).Return([]service.Category{}, nil)

	resp := newTestAPI(t, owner, svc).Get("/v1/categories")

	require.Equal(t, http.StatusOK, resp.Code)
	var body ListCategoriesResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Categories)
}

func TestHTTP_ListCategories_InvalidType(t *testing.T) {
	svc := new(mockCategoryService)

	resp := newTestAPI(t, uuid.Must(uuid.NewV4()), svc).Get("/v1/categories?type=transfer")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertNotCalled(t, "ListCategories", mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTP_CreateCategory_Success(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())
	svc := new(mockCategoryService)
	svc.On("CreateCategory", mock.Anything, owner, "Salary", service.TransactionTypeIncome).Return(id, nil)

	resp := newTestAPI(t, owner, svc).Post("/v1/category", CreateCategoryBody{Name: "Salary", Type: "income"})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreatedResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, id.String(), body.ID)
}

func TestHTTP_CreateCategory_BadType(t *testing.T) {
	svc := new(mockCategoryService)

	resp := newTestAPI(t, uuid.Must(uuid.NewV4()), svc).Post("/v1/category", CreateCategoryBody{Name: "Salary", Type: "gift"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

// -- subcategories --

func TestHTTP_ListSubcategories_ByCategory(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	svc := new(mockCategoryService)
	svc.On("ListSubcategories", mock.Anything, owner, &categoryID).Return([]service.Subcategory{
		{ID: uuid.Must(uuid.NewV4()), CategoryID: categoryID, Name: "Supermarket"},
	}, nil)

	resp := newTestAPI(t, owner, svc).Get("/v1/subcategories?categoryID=" + categoryID.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListSubcategoriesResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Subcategories, 1)
	assert.Equal(t, categoryID.String(), body.Subcategories[0].CategoryID)
}

func TestHTTP_ListSubcategories_InvalidCategory(t *testing.T) {
	svc := new(mockCategoryService)

	resp := newTestAPI(t, uuid.Must(uuid.NewV4()), svc).Get("/v1/subcategories?categoryID=abc")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_CreateSubcategory_ForeignCategory(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	svc := new(mockCategoryService)
	svc.On("CreateSubcategory", mock.Anything, owner, categoryID, "Fuel").
		Return(uuid.Nil, &service.ValidationError{Message: "category not found"})

	resp := newTestAPI(t, owner, svc).Post("/v1/subcategory", CreateSubcategoryBody{CategoryID: categoryID.String(), Name: "Fuel"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertExpectations(t)
}

func TestHTTP_CreateSubcategory_ServiceError(t *testing.T) {
	svc := new(mockCategoryService)
	svc.On("CreateSubcategory", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(uuid.Nil, errors.New("queue stopped"))

	resp := newTestAPI(t, uuid.Must(uuid.NewV4()), svc).Post("/v1/subcategory", CreateSubcategoryBody{
		CategoryID: uuid.Must(uuid.NewV4()).String(),
		Name:       "Fuel",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
