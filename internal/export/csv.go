// Package export serializes a filtered subset for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"finboard/internal/core"
)

// Filename is the suggested download name for the filtered export.
const Filename = "filtered_expenses.csv"

var header = []string{"Date", "Category", "Amount", "Notes", "Gender"}

// WriteCSV streams records as UTF-8 CSV with the exact five-column schema.
// Dates render as YYYY-MM-DD (empty string when null), amounts with two
// decimals, so an exported file re-imports cleanly.
func WriteCSV(w io.Writer, records []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range records {
		row := []string{
			t.Date.ExportString(),
			t.Category,
			strconv.FormatFloat(t.Amount.Value(), 'f', 2, 64),
			t.Notes,
			t.Gender,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
