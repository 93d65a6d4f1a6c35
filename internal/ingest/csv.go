package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"finboard/internal/core"
)

// ReadCSV parses CSV input into normalized transactions. A malformed file
// returns an error and an empty, correctly-shaped slice so the caller can
// keep operating on it.
func ReadCSV(r io.Reader) ([]core.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return []core.Transaction{}, fmt.Errorf("read csv: %w", err)
	}
	return fromRows(rows), nil
}

// ReadFile dispatches on the file extension: .csv goes to the CSV reader,
// anything else is treated as a spreadsheet.
func ReadFile(name string, r io.Reader) ([]core.Transaction, error) {
	if strings.ToLower(filepath.Ext(name)) == ".csv" {
		return ReadCSV(r)
	}
	return ReadExcel(r)
}
