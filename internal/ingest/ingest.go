// Package ingest normalizes arbitrary tabular input into the fixed
// transaction schema. Whatever the source looks like, the output records
// always carry all five fields: recognized columns are matched by their
// exact header name, unknown columns are ignored, missing ones default to
// the coercion fallbacks (empty text, zero amount, null date).
package ingest

import (
	"strings"

	"finboard/internal/core"
)

// Recognized column headers, matched case-sensitively.
const (
	ColDate     = "Date"
	ColCategory = "Category"
	ColAmount   = "Amount"
	ColNotes    = "Notes"
	ColGender   = "Gender"
)

// fromRows converts a header row plus data rows into transactions. The
// coercion functions are total, so this never fails: a malformed cell
// becomes its fallback value, a short row reads as empty cells.
func fromRows(rows [][]string) []core.Transaction {
	out := []core.Transaction{}
	if len(rows) == 0 {
		return out
	}
	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if _, seen := idx[h]; !seen {
			idx[h] = i
		}
	}
	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	for _, row := range rows[1:] {
		out = append(out, core.Transaction{
			Date:     core.CoerceDate(cell(row, ColDate)),
			Category: cell(row, ColCategory),
			Amount:   core.CoerceAmount(cell(row, ColAmount)),
			Notes:    cell(row, ColNotes),
			Gender:   cell(row, ColGender),
		})
	}
	return out
}
