package export

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/viewer"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

// -- WriteCSV tests --

func TestWriteCSV_HeaderAndRows(t *testing.T) {
	rows := []viewer.ExportRow{
		{Date: "5 Jan 2024", Description: "Salary", Category: "Wages", Account: "Main", Type: "income", Amount: "100.00"},
		{Date: "3 Jan 2024", Description: "Lunch, with \"friends\"", Category: "Uncategorized", Account: "Unknown", Type: "expense", Amount: "40.00"},
	}
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, rows))

	expected := "Date,Description,Category,Subcategory,Account,Type,Amount\n" +
		"5 Jan 2024,Salary,Wages,,Main,income,100.00\n" +
		"3 Jan 2024,\"Lunch, with \"\"friends\"\"\",Uncategorized,,Unknown,expense,40.00\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteCSV_EmptyWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t, "Date,Description,Category,Subcategory,Account,Type,Amount\n", buf.String())
}

func TestWriteCSV_WriterError(t *testing.T) {
	err := WriteCSV(failingWriter{}, []viewer.ExportRow{{Date: "1 Jan 2024"}})

	assert.Error(t, err)
}

// -- Filename tests --

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "transactions_2024-03-09.csv", Filename(now))
	assert.Equal(t, `attachment; filename="transactions_2024-03-09.csv"`, ContentDisposition(now))
}
