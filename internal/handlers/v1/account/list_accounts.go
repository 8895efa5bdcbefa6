package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// ListAccountsResponseBody is the response body for listing accounts.
type ListAccountsResponseBody struct {
	Accounts []Account `json:"accounts" doc:"Active accounts ordered by name"`
}

// ListAccountsOutput is the Huma output for listing accounts.
type ListAccountsOutput struct {
	Body ListAccountsResponseBody
}

// BalanceResponseBody is the response body for the total balance.
type BalanceResponseBody struct {
	Total string `json:"total" doc:"Sum of the balances of all active accounts"`
}

type BalanceOutput struct {
	Body BalanceResponseBody
}

type accountReader interface {
	ListAccounts(ctx context.Context, owner uuid.UUID) ([]service.Account, error)
	TotalBalance(ctx context.Context, owner uuid.UUID) (decimal.Decimal, error)
}

// ListAccountsHandler handles GET /v1/accounts and GET /v1/accounts/balance.
type ListAccountsHandler struct {
	AccountService accountReader
}

func NewListAccountsHandler(svc accountReader) *ListAccountsHandler {
	return &ListAccountsHandler{AccountService: svc}
}

// Register registers the account read endpoints with the Huma API.
func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/accounts",
		Summary:     "List accounts",
		Description: "Returns the active accounts of the caller ordered by name.",
		Tags:        []string{"Accounts"},
		Security:    auth.Security(),
	}, h.handle)

	huma.Register(api, huma.Operation{
		OperationID: "total-balance",
		Method:      http.MethodGet,
		Path:        "/v1/accounts/balance",
		Summary:     "Total balance",
		Description: "Returns the summed balance of the caller's active accounts.",
		Tags:        []string{"Accounts"},
		Security:    auth.Security(),
	}, h.handleBalance)
}

func (h *ListAccountsHandler) handle(ctx context.Context, _ *struct{}) (*ListAccountsOutput, error) {
	owner, err := auth.RequireOwner(ctx)
	if err != nil {
		return nil, err
	}
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listAccountsMs")
	}
	accounts, err := h.AccountService.ListAccounts(ctx, owner)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list accounts", err)
	}

	if logData != nil {
		logData.AddData("accountCount", len(accounts))
	}

	resp := ListAccountsResponseBody{
		Accounts: make([]Account, len(accounts)),
	}
	for i, acc := range accounts {
		resp.Accounts[i] = accountFromService(acc)
	}

	return &ListAccountsOutput{Body: resp}, nil
}

func (h *ListAccountsHandler) handleBalance(ctx context.Context, _ *struct{}) (*BalanceOutput, error) {
	owner, err := auth.RequireOwner(ctx)
	if err != nil {
		return nil, err
	}

	total, err := h.AccountService.TotalBalance(ctx, owner)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to total balances", err)
	}

	return &BalanceOutput{Body: BalanceResponseBody{Total: total.StringFixed(2)}}, nil
}
