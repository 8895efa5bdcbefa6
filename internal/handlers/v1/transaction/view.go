package transaction

import (
	"github.com/carson-networks/budget-tracker/internal/viewer"
)

// Summary totals the whole filtered result set.
type Summary struct {
	Income  string `json:"income" doc:"Sum of income amounts"`
	Expense string `json:"expense" doc:"Sum of expense amounts"`
	Net     string `json:"net" doc:"Income minus expense"`
	Count   int    `json:"count" doc:"Number of matching transactions"`
}

type NavControl struct {
	Page     int  `json:"page" doc:"Target page"`
	Disabled bool `json:"disabled" doc:"True on the first or last page"`
}

type PageControl struct {
	Kind    string `json:"kind" enum:"page,ellipsis" doc:"A page link or a gap"`
	Page    int    `json:"page,omitempty" doc:"Target page of a page link"`
	Current bool   `json:"current,omitempty" doc:"True for the page being shown"`
}

// Pagination describes the page controls. It is absent when everything fits on one page.
type Pagination struct {
	Previous NavControl    `json:"previous"`
	Next     NavControl    `json:"next"`
	Items    []PageControl `json:"items"`
}

// Filters echoes the criteria the result set was loaded with.
type Filters struct {
	AccountID  string `json:"accountID,omitempty" doc:"Account UUID"`
	CategoryID string `json:"categoryID,omitempty" doc:"Category UUID"`
	Type       string `json:"type,omitempty" doc:"income or expense"`
	DateFrom   string `json:"dateFrom,omitempty" doc:"Inclusive start date, YYYY-MM-DD"`
	DateTo     string `json:"dateTo,omitempty" doc:"Inclusive end date, YYYY-MM-DD"`
}

type Notification struct {
	Level   string `json:"level" enum:"success,warning,error"`
	Message string `json:"message"`
}

// ViewResponseBody is one rendered page of the caller's transaction list.
type ViewResponseBody struct {
	Transactions  []Transaction  `json:"transactions" doc:"Visible page of transactions, most recent first"`
	Summary       Summary        `json:"summary"`
	Pagination    *Pagination    `json:"pagination,omitempty"`
	Page          int            `json:"page" doc:"Current page, 1-based"`
	TotalPages    int            `json:"totalPages" doc:"Number of pages, 0 when nothing matches"`
	PageSize      int            `json:"pageSize" doc:"Transactions per page"`
	Filters       Filters        `json:"filters"`
	Notifications []Notification `json:"notifications" doc:"Messages produced since the last read"`
}

type ViewOutput struct {
	Body ViewResponseBody
}

func newViewOutput(session *viewer.Session) *ViewOutput {
	state := session.View.Snapshot()
	engine := session.Engine

	body := ViewResponseBody{
		Transactions: make([]Transaction, len(state.Rows)),
		Summary: Summary{
			Income:  state.Summary.Income.StringFixed(2),
			Expense: state.Summary.Expense.StringFixed(2),
			Net:     state.Summary.Net.StringFixed(2),
			Count:   state.Summary.Count,
		},
		Page:          engine.Page(),
		TotalPages:    engine.TotalPages(),
		PageSize:      engine.PageSize(),
		Notifications: make([]Notification, len(state.Notifications)),
	}
	for i, row := range state.Rows {
		body.Transactions[i] = transactionFromService(row)
	}
	for i, note := range state.Notifications {
		body.Notifications[i] = Notification{Level: string(note.Level), Message: note.Message}
	}

	if !state.Pagination.IsEmpty() {
		pagination := &Pagination{
			Previous: NavControl{Page: state.Pagination.Previous.Page, Disabled: state.Pagination.Previous.Disabled},
			Next:     NavControl{Page: state.Pagination.Next.Page, Disabled: state.Pagination.Next.Disabled},
			Items:    make([]PageControl, len(state.Pagination.Items)),
		}
		for i, item := range state.Pagination.Items {
			pagination.Items[i] = PageControl{Kind: string(item.Kind), Page: item.Page, Current: item.Current}
		}
		body.Pagination = pagination
	}

	in := viewer.InputFromCriteria(engine.Criteria())
	body.Filters = Filters{
		AccountID:  in.AccountID,
		CategoryID: in.CategoryID,
		Type:       in.Type,
		DateFrom:   in.DateFrom,
		DateTo:     in.DateTo,
	}

	return &ViewOutput{Body: body}
}
