package viewer

import (
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/service"
)

// DateLayout is the form and query format of calendar dates.
const DateLayout = "2006-01-02"

// FilterInput is the raw filter form. Blank fields impose no constraint.
type FilterInput struct {
	AccountID  string
	CategoryID string
	Type       string
	DateFrom   string
	DateTo     string
}

// Criteria validates the form and converts it to a listing filter. An inverted date range is
// accepted and simply matches nothing.
func (in FilterInput) Criteria() (service.TransactionFilter, error) {
	var filter service.TransactionFilter

	if s := strings.TrimSpace(in.AccountID); s != "" {
		id, err := uuid.FromString(s)
		if err != nil {
			return filter, &ValidationError{Field: "account", Message: "Invalid account filter."}
		}
		filter.AccountID = &id
	}

	if s := strings.TrimSpace(in.CategoryID); s != "" {
		id, err := uuid.FromString(s)
		if err != nil {
			return filter, &ValidationError{Field: "category", Message: "Invalid category filter."}
		}
		filter.CategoryID = &id
	}

	if s := strings.TrimSpace(in.Type); s != "" {
		typ, err := service.ParseTransactionType(s)
		if err != nil {
			return filter, &ValidationError{Field: "type", Message: "Invalid transaction type filter."}
		}
		filter.Type = &typ
	}

	from, err := parseOptionalDate(in.DateFrom, "dateFrom", "Invalid start date. Use YYYY-MM-DD.")
	if err != nil {
		return filter, err
	}
	filter.DateFrom = from

	to, err := parseOptionalDate(in.DateTo, "dateTo", "Invalid end date. Use YYYY-MM-DD.")
	if err != nil {
		return filter, err
	}
	filter.DateTo = to

	return filter, nil
}

// InputFromCriteria renders a filter back into form values.
func InputFromCriteria(filter service.TransactionFilter) FilterInput {
	var in FilterInput
	if filter.AccountID != nil {
		in.AccountID = filter.AccountID.String()
	}
	if filter.CategoryID != nil {
		in.CategoryID = filter.CategoryID.String()
	}
	if filter.Type != nil {
		in.Type = string(*filter.Type)
	}
	if filter.DateFrom != nil {
		in.DateFrom = filter.DateFrom.Format(DateLayout)
	}
	if filter.DateTo != nil {
		in.DateTo = filter.DateTo.Format(DateLayout)
	}
	return in
}

func parseOptionalDate(raw, field, message string) (*time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	date, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, &ValidationError{Field: field, Message: message}
	}
	return &date, nil
}
