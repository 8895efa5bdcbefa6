// Package export writes the flat transaction projection as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/carson-networks/budget-tracker/internal/viewer"
)

const ContentType = "text/csv; charset=utf-8"

// WriteCSV writes the header followed by one line per row.
func WriteCSV(w io.Writer, rows []viewer.ExportRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(viewer.ExportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range rows {
		if err := writer.Write(row.Values()); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Filename names an export made on the given day.
func Filename(now time.Time) string {
	return "transactions_" + now.Format(viewer.DateLayout) + ".csv"
}

// ContentDisposition is the attachment header for an export made on the given day.
func ContentDisposition(now time.Time) string {
	return fmt.Sprintf("attachment; filename=%q", Filename(now))
}
