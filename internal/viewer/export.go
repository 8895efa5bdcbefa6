package viewer

import (
	"github.com/carson-networks/budget-tracker/internal/service"
)

const (
	// DisplayDateLayout formats dates for people, e.g. "5 Jan 2024".
	DisplayDateLayout = "2 Jan 2006"

	UnknownAccountName = "Unknown"
)

// ExportHeader is the column order of ExportRow.Values.
var ExportHeader = []string{"Date", "Description", "Category", "Subcategory", "Account", "Type", "Amount"}

// ExportRow is the flat tabular projection of one transaction.
type ExportRow struct {
	Date        string
	Description string
	Category    string
	Subcategory string
	Account     string
	Type        string
	Amount      string
}

func (r ExportRow) Values() []string {
	return []string{r.Date, r.Description, r.Category, r.Subcategory, r.Account, r.Type, r.Amount}
}

func exportRow(record service.Transaction) ExportRow {
	row := ExportRow{
		Date:        record.Date.Format(DisplayDateLayout),
		Description: record.Description,
		Category:    service.UncategorizedName,
		Account:     UnknownAccountName,
		Type:        string(record.Type),
		Amount:      record.Amount.StringFixed(2),
	}
	if record.Category != nil && record.Category.Name != "" {
		row.Category = record.Category.Name
	}
	if record.Subcategory != nil {
		row.Subcategory = record.Subcategory.Name
	}
	if record.Account.Name != "" {
		row.Account = record.Account.Name
	}
	return row
}

func exportRows(records []service.Transaction) []ExportRow {
	rows := make([]ExportRow, len(records))
	for i, record := range records {
		rows[i] = exportRow(record)
	}
	return rows
}
