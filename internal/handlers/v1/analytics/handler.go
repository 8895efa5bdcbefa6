package analytics

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

type MonthInput struct {
	Year  int `query:"year" required:"true" minimum:"1970" maximum:"9999" doc:"Calendar year"`
	Month int `query:"month" required:"true" minimum:"1" maximum:"12" doc:"Calendar month, 1-12"`
}

type MonthlyTotalsBody struct {
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Income  string `json:"income" doc:"Sum of income in the month"`
	Expense string `json:"expense" doc:"Sum of expense in the month"`
	Net     string `json:"net" doc:"Income minus expense"`
}

type MonthlyTotalsOutput struct {
	Body MonthlyTotalsBody
}

type CategoryBreakdownInput struct {
	Year  int    `query:"year" required:"true" minimum:"1970" maximum:"9999" doc:"Calendar year"`
	Month int    `query:"month" required:"true" minimum:"1" maximum:"12" doc:"Calendar month, 1-12"`
	Type  string `query:"type" enum:"income,expense" default:"expense" doc:"Transaction type to break down"`
}

type CategoryAmount struct {
	Name   string `json:"name" doc:"Category name, Uncategorized for unclassified transactions"`
	Amount string `json:"amount" doc:"Sum for the category"`
}

type CategoryBreakdownBody struct {
	Categories []CategoryAmount `json:"categories" doc:"Categories by amount, largest first"`
}

type CategoryBreakdownOutput struct {
	Body CategoryBreakdownBody
}

type analyticsService interface {
	MonthlyTotals(ctx context.Context, owner uuid.UUID, year int, month time.Month) (service.MonthlyTotals, error)
	CategoryBreakdown(ctx context.Context, owner uuid.UUID, year int, month time.Month, typ service.TransactionType) ([]service.CategoryAmount, error)
}

// Handler serves the monthly analytics endpoints.
type Handler struct {
	AnalyticsService analyticsService
}

func NewHandler(svc analyticsService) *Handler {
	return &Handler{AnalyticsService: svc}
}

// Register registers the analytics endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "monthly-totals",
		Method:      http.MethodGet,
		Path:        "/v1/analytics/monthly",
		Summary:     "Monthly totals",
		Description: "Sums income and expense for one calendar month.",
		Tags:        []string{"Analytics"},
		Security:    auth.Security(),
	}, h.monthly)

	huma.Register(api, huma.Operation{
		OperationID: "category-breakdown",
		Method:      http.MethodGet,
		Path:        "/v1/analytics/categories",
		Summary:     "Category breakdown",
		Description: "Sums one transaction type per category for one calendar month.",
		Tags:        []string{"Analytics"},
		Security:    auth.Security(),
	}, h.categories)
}

func (h *Handler) monthly(ctx context.Context, input *MonthInput) (*MonthlyTotalsOutput, error) {
	owner, err := auth.RequireOwner(ctx)
	if err != nil {
		return nil, err
	}
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("monthlyTotalsMs")
	}
	totals, err := h.AnalyticsService.MonthlyTotals(ctx, owner, input.Year, time.Month(input.Month))
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to total month", err)
	}

	return &MonthlyTotalsOutput{Body: MonthlyTotalsBody{
		Year:    totals.Year,
		Month:   int(totals.Month),
		Income:  totals.Income.StringFixed(2),
		Expense: totals.Expense.StringFixed(2),
		Net:     totals.Net.StringFixed(2),
	}}, nil
}

func (h *Handler) categories(ctx context.Context, input *CategoryBreakdownInput) (*CategoryBreakdownOutput, error) {
	owner, err := auth.RequireOwner(ctx)
	if err != nil {
		return nil, err
	}

	amounts, err := h.AnalyticsService.CategoryBreakdown(ctx, owner, input.Year, time.Month(input.Month), service.TransactionType(input.Type))
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to break down month", err)
	}

	body := CategoryBreakdownBody{Categories: make([]CategoryAmount, len(amounts))}
	for i, amount := range amounts {
		body.Categories[i] = CategoryAmount{Name: amount.Name, Amount: amount.Amount.StringFixed(2)}
	}
	return &CategoryBreakdownOutput{Body: body}, nil
}
