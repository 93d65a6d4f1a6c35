package ingest

import (
	"bytes"
	"os"

	"finboard/assets"
	"finboard/internal/core"
)

// Sample returns the bundled sample ledger. An explicit path overrides the
// embedded dataset; if neither is readable the built-in rows are used, so
// sample loading never fails.
func Sample(path string) []core.Transaction {
	if path != "" {
		if f, err := os.Open(path); err == nil {
			defer f.Close()
			if records, err := ReadCSV(f); err == nil && len(records) > 0 {
				return records
			}
		}
	}
	if records, err := ReadCSV(bytes.NewReader(assets.SampleExpensesCSV)); err == nil && len(records) > 0 {
		return records
	}
	return fallbackSample()
}

func fallbackSample() []core.Transaction {
	return []core.Transaction{
		{Date: core.NewDate(2025, 1, 5), Category: "Groceries", Amount: core.Money{Cents: 120000}, Notes: "Big bazaar", Gender: core.UnspecifiedGender},
		{Date: core.NewDate(2025, 1, 7), Category: "Transport", Amount: core.Money{Cents: 6000}, Notes: "Auto", Gender: core.UnspecifiedGender},
		{Date: core.NewDate(2025, 2, 2), Category: "Utility", Amount: core.Money{Cents: 210000}, Notes: "Electricity Bill", Gender: core.UnspecifiedGender},
	}
}
