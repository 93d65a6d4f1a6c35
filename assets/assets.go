package assets

import _ "embed"

// SampleExpensesCSV is the bundled sample dataset used to seed a session
// when no file has been uploaded.
//
//go:embed data/sample_expenses.csv
var SampleExpensesCSV []byte
