package viewer

import (
	"strings"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/service"
)

// EditForm is the raw edit dialog. Account, type, category, amount and date are required.
type EditForm struct {
	AccountID     string
	Type          string
	CategoryID    string
	SubcategoryID string
	Amount        string
	Description   string
	Date          string
}

// EditFormFor prefills the dialog from a record.
func EditFormFor(record service.Transaction) EditForm {
	form := EditForm{
		AccountID:   record.Account.ID.String(),
		Type:        string(record.Type),
		Amount:      record.Amount.StringFixed(2),
		Description: record.Description,
		Date:        record.Date.Format(DateLayout),
	}
	if record.Category != nil {
		form.CategoryID = record.Category.ID.String()
	}
	if record.Subcategory != nil {
		form.SubcategoryID = record.Subcategory.ID.String()
	}
	return form
}

// Patch validates the form and converts it to a full replacement of the editable fields.
// A blank subcategory clears it.
func (f EditForm) Patch() (service.TransactionPatch, error) {
	var patch service.TransactionPatch

	accountRaw := strings.TrimSpace(f.AccountID)
	typeRaw := strings.TrimSpace(f.Type)
	categoryRaw := strings.TrimSpace(f.CategoryID)
	amountRaw := strings.TrimSpace(f.Amount)
	dateRaw := strings.TrimSpace(f.Date)
	if accountRaw == "" || typeRaw == "" || categoryRaw == "" || amountRaw == "" || dateRaw == "" {
		return patch, &ValidationError{Message: MsgRequiredFields}
	}

	accountID, err := uuid.FromString(accountRaw)
	if err != nil {
		return patch, &ValidationError{Field: "account", Message: "Please select a valid account."}
	}
	typ, err := service.ParseTransactionType(typeRaw)
	if err != nil {
		return patch, &ValidationError{Field: "type", Message: "Please select a valid transaction type."}
	}
	categoryID, err := uuid.FromString(categoryRaw)
	if err != nil {
		return patch, &ValidationError{Field: "category", Message: "Please select a valid category."}
	}
	amount, err := decimal.NewFromString(amountRaw)
	if err != nil {
		return patch, &ValidationError{Field: "amount", Message: "Please enter a valid amount."}
	}
	if !amount.IsPositive() {
		return patch, &ValidationError{Field: "amount", Message: MsgAmountNotPositive}
	}
	date, err := time.Parse(DateLayout, dateRaw)
	if err != nil {
		return patch, &ValidationError{Field: "date", Message: "Please enter a valid date."}
	}

	patch.SubcategoryID = omitnull.FromPtr[uuid.UUID](nil)
	if s := strings.TrimSpace(f.SubcategoryID); s != "" {
		subcategoryID, err := uuid.FromString(s)
		if err != nil {
			return patch, &ValidationError{Field: "subcategory", Message: "Please select a valid subcategory."}
		}
		patch.SubcategoryID = omitnull.From(subcategoryID)
	}

	patch.AccountID = omit.From(accountID)
	patch.Type = omit.From(typ)
	patch.CategoryID = omitnull.From(categoryID)
	patch.Amount = omit.From(amount)
	patch.Description = omit.From(strings.TrimSpace(f.Description))
	patch.Date = omit.From(date)
	return patch, nil
}
