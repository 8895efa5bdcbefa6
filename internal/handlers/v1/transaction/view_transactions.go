package transaction

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/export"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/viewer"
)

type ViewTransactionsInput struct {
	Page int `query:"page" doc:"Page to show, clamped into range. Omit to stay on the current page"`
}

// FiltersBody is the raw filter form. Blank fields impose no constraint.
type FiltersBody struct {
	AccountID  string `json:"accountID,omitempty" doc:"Account UUID"`
	CategoryID string `json:"categoryID,omitempty" doc:"Category UUID"`
	Type       string `json:"type,omitempty" doc:"income or expense"`
	DateFrom   string `json:"dateFrom,omitempty" doc:"Inclusive start date, YYYY-MM-DD"`
	DateTo     string `json:"dateTo,omitempty" doc:"Inclusive end date, YYYY-MM-DD"`
}

type ApplyFiltersInput struct {
	Body FiltersBody
}

type TransactionIDInput struct {
	ID string `path:"id" format:"uuid" doc:"Transaction UUID"`
}

// UpdateTransactionBody is the edit form. Account, type, category, amount and date are required;
// a blank subcategory clears it.
type UpdateTransactionBody struct {
	AccountID     string `json:"accountID,omitempty" doc:"Account UUID"`
	Type          string `json:"type,omitempty" doc:"income or expense"`
	CategoryID    string `json:"categoryID,omitempty" doc:"Category UUID"`
	SubcategoryID string `json:"subcategoryID,omitempty" doc:"Subcategory UUID"`
	Amount        string `json:"amount,omitempty" doc:"Positive decimal amount"`
	Description   string `json:"description,omitempty" doc:"Free-text description"`
	Date          string `json:"date,omitempty" doc:"Transaction date, YYYY-MM-DD"`
}

type UpdateTransactionInput struct {
	ID   string `path:"id" format:"uuid" doc:"Transaction UUID"`
	Body UpdateTransactionBody
}

type ExportTransactionsOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// ViewHandler serves the caller's transaction list session: paging, filtering, editing,
// deleting and exporting.
type ViewHandler struct {
	Sessions sessionProvider
	now      func() time.Time
}

func NewViewHandler(sessions sessionProvider) *ViewHandler {
	return &ViewHandler{Sessions: sessions, now: time.Now}
}

// Register registers the transaction list endpoints with the Huma API.
func (h *ViewHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "view-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/view",
		Summary:     "View transactions",
		Description: "Returns one page of the filtered transaction list with its summary and page controls.",
		Tags:        []string{"Transactions"},
		Security:    auth.Security(),
	}, h.view)

	huma.Register(api, huma.Operation{
		OperationID: "apply-transaction-filters",
		Method:      http.MethodPost,
		Path:        "/v1/transactions/filters",
		Summary:     "Apply filters",
		Description: "Validates the filter form, loads the matching transactions and returns page 1.",
		Tags:        []string{"Transactions"},
		Security:    auth.Security(),
	}, h.applyFilters)

	huma.Register(api, huma.Operation{
		OperationID: "clear-transaction-filters",
		Method:      http.MethodDelete,
		Path:        "/v1/transactions/filters",
		Summary:     "Clear filters",
		Tags:        []string{"Transactions"},
		Security:    auth.Security(),
	}, h.clearFilters)

	huma.Register(api, huma.Operation{
		OperationID: "reload-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transactions/reload",
		Summary:     "Reload transactions",
		Description: "Fetches the current filter again, keeping the page where possible.",
		Tags:        []string{"Transactions"},
		Security:    auth.Security(),
	}, h.reload)

	huma.Register(api, huma.Operation{
		OperationID: "export-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/export",
		Summary:     "Export transactions",
		Description: "Returns every transaction of the current filter as a CSV attachment.",
		Tags:        []string{"Transactions"},
		Security:    auth.Security(),
	}, h.export)

	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Replaces the editable fields of a transaction and returns the reloaded list.",
		Tags:        []string{"Transactions"},
		Security:    auth.Security(),
	}, h.update)

	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/v1/transaction/{id}",
		Summary:     "Delete transaction",
		Description: "Deletes a transaction, reverting its balance effect, and returns the reloaded list.",
		Tags:        []string{"Transactions"},
		Security:    auth.Security(),
	}, h.delete)
}

func (h *ViewHandler) session(ctx context.Context) (*viewer.Session, error) {
	owner, err := auth.RequireOwner(ctx)
	if err != nil {
		return nil, err
	}
	session, err := h.Sessions.Get(ctx, owner)
	if err != nil {
		return nil, httperr.FromError(err, viewer.MsgLoadFailed)
	}
	return session, nil
}

// fail drains the notifications the failed action queued, since the error response carries them.
func fail(session *viewer.Session, err error, message string) error {
	session.View.Snapshot()
	return httperr.FromError(err, message)
}

func (h *ViewHandler) view(ctx context.Context, input *ViewTransactionsInput) (*ViewOutput, error) {
	session, err := h.session(ctx)
	if err != nil {
		return nil, err
	}
	if input.Page != 0 {
		session.Engine.GoToPage(input.Page)
	}
	return newViewOutput(session), nil
}

func (h *ViewHandler) applyFilters(ctx context.Context, input *ApplyFiltersInput) (*ViewOutput, error) {
	session, err := h.session(ctx)
	if err != nil {
		return nil, err
	}

	err = session.Engine.ApplyFilters(ctx, viewer.FilterInput{
		AccountID:  input.Body.AccountID,
		CategoryID: input.Body.CategoryID,
		Type:       input.Body.Type,
		DateFrom:   input.Body.DateFrom,
		DateTo:     input.Body.DateTo,
	})
	if err != nil {
		return nil, fail(session, err, viewer.MsgFilterFailed)
	}
	return newViewOutput(session), nil
}

func (h *ViewHandler) clearFilters(ctx context.Context, _ *struct{}) (*ViewOutput, error) {
	session, err := h.session(ctx)
	if err != nil {
		return nil, err
	}
	if err := session.Engine.ClearFilters(ctx); err != nil {
		return nil, fail(session, err, viewer.MsgFilterFailed)
	}
	return newViewOutput(session), nil
}

func (h *ViewHandler) reload(ctx context.Context, _ *struct{}) (*ViewOutput, error) {
	session, err := h.session(ctx)
	if err != nil {
		return nil, err
	}
	if err := session.Engine.Reload(ctx); err != nil {
		return nil, fail(session, err, viewer.MsgLoadFailed)
	}
	return newViewOutput(session), nil
}

func (h *ViewHandler) export(ctx context.Context, _ *struct{}) (*ExportTransactionsOutput, error) {
	session, err := h.session(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := session.Engine.Export()
	if err != nil {
		return nil, fail(session, err, viewer.MsgLoadFailed)
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, rows); err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to write export", err)
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("exportRows", len(rows))
	}

	now := h.now()
	return &ExportTransactionsOutput{
		ContentType:        export.ContentType,
		ContentDisposition: export.ContentDisposition(now),
		Body:               buf.Bytes(),
	}, nil
}

func parseTransactionID(raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}
	return id, nil
}

func (h *ViewHandler) update(ctx context.Context, input *UpdateTransactionInput) (*ViewOutput, error) {
	id, err := parseTransactionID(input.ID)
	if err != nil {
		return nil, err
	}
	session, err := h.session(ctx)
	if err != nil {
		return nil, err
	}

	err = session.Engine.Edit(ctx, id, viewer.EditForm{
		AccountID:     input.Body.AccountID,
		Type:          input.Body.Type,
		CategoryID:    input.Body.CategoryID,
		SubcategoryID: input.Body.SubcategoryID,
		Amount:        input.Body.Amount,
		Description:   input.Body.Description,
		Date:          input.Body.Date,
	})
	if err != nil {
		return nil, fail(session, err, viewer.MsgUpdateFailed)
	}
	return newViewOutput(session), nil
}

func (h *ViewHandler) delete(ctx context.Context, input *TransactionIDInput) (*ViewOutput, error) {
	id, err := parseTransactionID(input.ID)
	if err != nil {
		return nil, err
	}
	session, err := h.session(ctx)
	if err != nil {
		return nil, err
	}

	if err := session.Engine.Delete(ctx, id); err != nil {
		return nil, fail(session, err, viewer.MsgDeleteFailed)
	}
	return newViewOutput(session), nil
}
