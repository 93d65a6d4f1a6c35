package core

import "testing"

func TestSummarize(t *testing.T) {
	s := Summarize(fixtureLedger())
	if s.Total.Cents != 60000 {
		t.Fatalf("total = %d", s.Total.Cents)
	}
	if s.Average.Cents != 20000 {
		t.Fatalf("average = %d", s.Average.Cents)
	}
	if s.Max.Cents != 30000 {
		t.Fatalf("max = %d", s.Max.Cents)
	}
	if s.Count != 3 {
		t.Fatalf("count = %d", s.Count)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Total.Cents != 0 || s.Average.Cents != 0 || s.Max.Cents != 0 || s.Count != 0 {
		t.Fatalf("empty subset must summarize to zeros: %+v", s)
	}
}

func TestByCategoryOrdersAndMapsEmpty(t *testing.T) {
	records := []Transaction{
		{Category: "Transport", Amount: Money{Cents: 100}},
		{Category: "", Amount: Money{Cents: 500}},
		{Category: "Transport", Amount: Money{Cents: 300}},
	}
	got := ByCategory(records)
	if len(got) != 2 {
		t.Fatalf("got %d categories", len(got))
	}
	if got[0].Name != EmptyCategory || got[0].Amount.Cents != 500 {
		t.Fatalf("first = %+v", got[0])
	}
	if got[1].Name != "Transport" || got[1].Amount.Cents != 400 {
		t.Fatalf("second = %+v", got[1])
	}
}

func TestByMonthChronological(t *testing.T) {
	records := []Transaction{
		{Date: NewDate(2025, 2, 2), Amount: Money{Cents: 200}},
		{Date: NewDate(2025, 1, 5), Amount: Money{Cents: 100}},
		{Date: NewDate(2025, 1, 7), Amount: Money{Cents: 50}},
		{Amount: Money{Cents: 999}}, // null date dropped
	}
	got := ByMonth(records)
	if len(got) != 2 {
		t.Fatalf("got %d months", len(got))
	}
	if got[0].Month != "2025-01" || got[0].Amount.Cents != 150 {
		t.Fatalf("first month = %+v", got[0])
	}
	if got[1].Month != "2025-02" || got[1].Amount.Cents != 200 {
		t.Fatalf("second month = %+v", got[1])
	}
}

func TestTopN(t *testing.T) {
	records := []Transaction{
		{Notes: "a", Amount: Money{Cents: 100}},
		{Notes: "b", Amount: Money{Cents: 300}},
		{Notes: "c", Amount: Money{Cents: 300}},
		{Notes: "d", Amount: Money{Cents: 200}},
	}
	got := TopN(records, 3)
	if len(got) != 3 {
		t.Fatalf("got %d", len(got))
	}
	// Stable tie-break: b before c.
	if got[0].Notes != "b" || got[1].Notes != "c" || got[2].Notes != "d" {
		t.Fatalf("order = %s %s %s", got[0].Notes, got[1].Notes, got[2].Notes)
	}
}

func TestTopNSmallerSubset(t *testing.T) {
	records := fixtureLedger()
	got := TopN(records, 5)
	if len(got) != len(records) {
		t.Fatalf("subset smaller than n must be returned whole, got %d", len(got))
	}
}
