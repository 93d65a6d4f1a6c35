package ingest

import (
	"strings"
	"testing"

	"finboard/internal/core"
)

func TestReadCSVNormalizesSchema(t *testing.T) {
	in := "Date,Category,Amount,Notes,Gender,Ignored\n" +
		"2025-01-05,Groceries,1200,Big bazaar,Female,x\n" +
		"bad-date,Transport,sixty,Auto,,y\n"
	records, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}
	if records[0].Date.ExportString() != "2025-01-05" || records[0].Amount.Cents != 120000 {
		t.Fatalf("first record = %+v", records[0])
	}
	// Unparseable values coerce, never raise.
	if !records[1].Date.IsNull() {
		t.Fatalf("bad date should coerce to null")
	}
	if records[1].Amount.Cents != 0 {
		t.Fatalf("bad amount should coerce to 0, got %d", records[1].Amount.Cents)
	}
	if records[1].Gender != "" {
		t.Fatalf("gender = %q", records[1].Gender)
	}
}

func TestReadCSVMissingColumns(t *testing.T) {
	in := "Amount,Memo\n42,hello\n"
	records, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records", len(records))
	}
	r := records[0]
	if !r.Date.IsNull() || r.Category != "" || r.Notes != "" || r.Gender != "" {
		t.Fatalf("missing columns must default to empty: %+v", r)
	}
	if r.Amount.Cents != 4200 {
		t.Fatalf("amount = %d", r.Amount.Cents)
	}
}

func TestReadCSVHeadersAreCaseSensitive(t *testing.T) {
	in := "date,amount\n2025-01-05,10\n"
	records, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !records[0].Date.IsNull() || records[0].Amount.Cents != 0 {
		t.Fatalf("lowercase headers must not be recognized: %+v", records[0])
	}
}

func TestReadCSVMalformedReturnsEmptyShaped(t *testing.T) {
	in := "Date,Category\n\"unterminated\n"
	records, err := ReadCSV(strings.NewReader(in))
	if err == nil {
		t.Fatalf("expected error for malformed csv")
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("malformed input must still yield an empty shaped slice")
	}
}

func TestSampleNeverFails(t *testing.T) {
	records := Sample("")
	if len(records) == 0 {
		t.Fatalf("sample must not be empty")
	}
	for i, r := range records {
		if r.Amount.Cents < 0 {
			t.Fatalf("record %d has negative amount", i)
		}
	}
	// A bogus override path falls back to the embedded data.
	if got := Sample("/does/not/exist.csv"); len(got) == 0 {
		t.Fatalf("missing sample file must fall back")
	}
}

func TestFallbackSampleRows(t *testing.T) {
	records := fallbackSample()
	if len(records) != 3 {
		t.Fatalf("got %d fallback rows", len(records))
	}
	if records[0].Notes != "Big bazaar" || records[0].Amount.Cents != 120000 {
		t.Fatalf("fallback row 0 = %+v", records[0])
	}
	for _, r := range records {
		if r.Gender != core.UnspecifiedGender {
			t.Fatalf("fallback gender = %q", r.Gender)
		}
	}
}
