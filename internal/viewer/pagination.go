package viewer

import (
	"github.com/carson-networks/budget-tracker/internal/service"
)

// pageWindow is how many pages either side of the current one get their own control.
const pageWindow = 2

type PageControlKind string

const (
	ControlPage     PageControlKind = "page"
	ControlEllipsis PageControlKind = "ellipsis"
)

// PageControl is one entry between the previous and next controls.
type PageControl struct {
	Kind    PageControlKind
	Page    int
	Current bool
}

// NavControl is a previous or next control.
type NavControl struct {
	Page     int
	Disabled bool
}

// PaginationModel describes the page controls. The zero value means no controls are shown.
type PaginationModel struct {
	Previous NavControl
	Next     NavControl
	Items    []PageControl
}

func (m PaginationModel) IsEmpty() bool {
	return len(m.Items) == 0
}

// Pages lists the page numbers that have their own control, in order.
func (m PaginationModel) Pages() []int {
	var pages []int
	for _, item := range m.Items {
		if item.Kind == ControlPage {
			pages = append(pages, item.Page)
		}
	}
	return pages
}

func buildPagination(page, totalPages int) PaginationModel {
	if totalPages <= 1 {
		return PaginationModel{}
	}

	model := PaginationModel{
		Previous: NavControl{Page: page - 1, Disabled: page == 1},
		Next:     NavControl{Page: page + 1, Disabled: page == totalPages},
	}

	start := max(1, page-pageWindow)
	end := min(totalPages, page+pageWindow)

	if start > 1 {
		model.Items = append(model.Items, PageControl{Kind: ControlPage, Page: 1})
		if start > 2 {
			model.Items = append(model.Items, PageControl{Kind: ControlEllipsis})
		}
	}

	for p := start; p <= end; p++ {
		model.Items = append(model.Items, PageControl{Kind: ControlPage, Page: p, Current: p == page})
	}

	if end < totalPages {
		if end < totalPages-1 {
			model.Items = append(model.Items, PageControl{Kind: ControlEllipsis})
		}
		model.Items = append(model.Items, PageControl{Kind: ControlPage, Page: totalPages})
	}

	return model
}

func totalPages(count, pageSize int) int {
	return (count + pageSize - 1) / pageSize
}

func clampPage(page, totalPages int) int {
	return max(1, min(page, totalPages))
}

func visibleSlice(records []service.Transaction, page, pageSize int) []service.Transaction {
	start := (page - 1) * pageSize
	if start >= len(records) || start < 0 {
		return []service.Transaction{}
	}
	end := min(start+pageSize, len(records))

	rows := make([]service.Transaction, end-start)
	copy(rows, records[start:end])
	return rows
}
