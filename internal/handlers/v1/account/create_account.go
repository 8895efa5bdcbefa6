package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

// CreateAccountBody is the request body fields for creating an account.
type CreateAccountBody struct {
	Name           string `json:"name" minLength:"1" doc:"Account name"`
	Type           string `json:"type" minLength:"1" doc:"Account type, e.g. bank or cash"`
	BankName       string `json:"bankName,omitempty" doc:"Bank holding the account"`
	AccountNumber  string `json:"accountNumber,omitempty" doc:"Account number at the bank"`
	OpeningBalance string `json:"openingBalance,omitempty" doc:"Opening balance (e.g. '0' or '1234.56'), defaults to 0"`
}

// CreateAccountResponse is the response body for creating an account.
type CreateAccountResponse struct {
	ID string `json:"id" doc:"Created account UUID"`
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   CreateAccountResponse
}

type accountCreator interface {
	CreateAccount(ctx context.Context, owner uuid.UUID, create service.AccountCreate) (uuid.UUID, error)
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	AccountService accountCreator
}

func NewCreateAccountHandler(svc accountCreator) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/v1/account",
		Summary:     "Create an account",
		Description: "Opens an account whose balance starts at the opening balance.",
		Tags:        []string{"Accounts"},
		Security:    auth.Security(),
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (service.AccountCreate, error) {
	openingBalance := decimal.Zero
	if input.Body.OpeningBalance != "" {
		parsed, err := decimal.NewFromString(input.Body.OpeningBalance)
		if err != nil {
			return service.AccountCreate{}, huma.NewError(http.StatusBadRequest, "invalid openingBalance", err)
		}
		openingBalance = parsed
	}

	return service.AccountCreate{
		Name:           input.Body.Name,
		Type:           input.Body.Type,
		BankName:       input.Body.BankName,
		AccountNumber:  input.Body.AccountNumber,
		OpeningBalance: openingBalance,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	owner, err := auth.RequireOwner(ctx)
	if err != nil {
		return nil, err
	}
	logData := logging.GetLogData(ctx)

	create, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}
	id, err := h.AccountService.CreateAccount(ctx, owner, create)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromError(err, "failed to create account")
	}

	if logData != nil {
		logData.AddData("accountID", id.String())
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   CreateAccountResponse{ID: id.String()},
	}, nil
}
