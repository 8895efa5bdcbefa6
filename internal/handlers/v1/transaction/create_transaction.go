package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/viewer"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	AccountID     string `json:"accountID" format:"uuid" doc:"Account UUID"`
	CategoryID    string `json:"categoryID,omitempty" format:"uuid" doc:"Category UUID"`
	SubcategoryID string `json:"subcategoryID,omitempty" format:"uuid" doc:"Subcategory UUID, requires categoryID"`
	Type          string `json:"type" enum:"income,expense" doc:"income or expense"`
	Amount        string `json:"amount" minLength:"1" doc:"Positive decimal amount"`
	Description   string `json:"description,omitempty" maxLength:"255" doc:"Free-text description"`
	Date          string `json:"date,omitempty" format:"date" doc:"Transaction date, YYYY-MM-DD, defaults to today"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionResponse is the response body for creating a transaction.
type CreateTransactionResponse struct {
	ID string `json:"id" doc:"Created transaction UUID"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

type transactionCreator interface {
	CreateTransaction(ctx context.Context, owner uuid.UUID, create service.TransactionCreate) (uuid.UUID, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
	Sessions           sessionRefresher
	now                func() time.Time
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator, sessions sessionRefresher) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc, Sessions: sessions, now: time.Now}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Records a transaction and moves the account balance.",
		Tags:        []string{"Transactions"},
		Security:    auth.Security(),
	}, h.handle)
}

func parseCreateTransactionInput(input *CreateTransactionInput, today time.Time) (service.TransactionCreate, error) {
	var create service.TransactionCreate

	accountID, err := uuid.FromString(input.Body.AccountID)
	if err != nil {
		return create, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return create, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	typ, err := service.ParseTransactionType(input.Body.Type)
	if err != nil {
		return create, huma.NewError(http.StatusBadRequest, "invalid type", err)
	}

	date := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if input.Body.Date != "" {
		date, err = time.Parse(viewer.DateLayout, input.Body.Date)
		if err != nil {
			return create, huma.NewError(http.StatusBadRequest, "invalid date", err)
		}
	}

	create = service.TransactionCreate{
		AccountID:   accountID,
		Type:        typ,
		Amount:      amount,
		Description: input.Body.Description,
		Date:        date,
	}

	if input.Body.CategoryID != "" {
		categoryID, err := uuid.FromString(input.Body.CategoryID)
		if err != nil {
			return create, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
		}
		create.CategoryID = &categoryID
	}
	if input.Body.SubcategoryID != "" {
		subcategoryID, err := uuid.FromString(input.Body.SubcategoryID)
		if err != nil {
			return create, huma.NewError(http.StatusBadRequest, "invalid subcategoryID", err)
		}
		create.SubcategoryID = &subcategoryID
	}

	return create, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	owner, err := auth.RequireOwner(ctx)
	if err != nil {
		return nil, err
	}
	logData := logging.GetLogData(ctx)

	create, err := parseCreateTransactionInput(input, h.now())
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	id, err := h.TransactionService.CreateTransaction(ctx, owner, create)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromError(err, "failed to create transaction")
	}

	// A failed refresh leaves the list stale but does not fail the create.
	if err := h.Sessions.Refresh(ctx, owner); err != nil && logData != nil {
		logData.AddData("sessionRefreshError", err.Error())
	}
	if logData != nil {
		logData.AddData("transactionID", id.String())
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   CreateTransactionResponse{ID: id.String()},
	}, nil
}
