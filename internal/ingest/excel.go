package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"finboard/internal/core"
)

// ReadExcel parses the first sheet of an xlsx workbook into normalized
// transactions.
func ReadExcel(r io.Reader) ([]core.Transaction, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return []core.Transaction{}, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []core.Transaction{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return []core.Transaction{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromRows(rows), nil
}
