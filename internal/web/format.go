package web

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/viewer"
)

const currencySymbol = "₹"

// formatCurrency renders an amount with thousands separators and two decimals, e.g. "-₹1,234.50".
func formatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	return sign + currencySymbol + humanize.FormatFloat("#,###.##", amount.InexactFloat64())
}

// signedAmount prefixes income with + and expense with -.
func signedAmount(typ service.TransactionType, amount decimal.Decimal) string {
	if typ == service.TransactionTypeIncome {
		return "+" + formatCurrency(amount)
	}
	return "-" + formatCurrency(amount)
}

type rowView struct {
	ID          string
	Date        string
	Description string
	Category    string
	Subcategory string
	Account     string
	Type        string
	Amount      string
	Income      bool
}

func rowFor(record service.Transaction) rowView {
	row := rowView{
		ID:          record.ID.String(),
		Date:        record.Date.Format(viewer.DisplayDateLayout),
		Description: "-",
		Category:    service.UncategorizedName,
		Subcategory: "-",
		Account:     viewer.UnknownAccountName,
		Type:        string(record.Type),
		Amount:      signedAmount(record.Type, record.Amount),
		Income:      record.Type == service.TransactionTypeIncome,
	}
	if record.Description != "" {
		row.Description = record.Description
	}
	if record.Category != nil && record.Category.Name != "" {
		row.Category = record.Category.Name
	}
	if record.Subcategory != nil && record.Subcategory.Name != "" {
		row.Subcategory = record.Subcategory.Name
	}
	if record.Account.Name != "" {
		row.Account = record.Account.Name
	}
	return row
}

type summaryView struct {
	Income      string
	Expense     string
	Net         string
	NetPositive bool
	Count       string
}

func summaryFor(summary viewer.Summary) summaryView {
	return summaryView{
		Income:      formatCurrency(summary.Income),
		Expense:     formatCurrency(summary.Expense),
		Net:         formatCurrency(summary.Net),
		NetPositive: !summary.Net.IsNegative(),
		Count:       humanize.Comma(int64(summary.Count)),
	}
}
