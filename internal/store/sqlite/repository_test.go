package sqlite

import (
	"context"
	"fmt"
	"testing"

	"finboard/internal/core"
)

var dsnCounter int

// testRepo opens a repository on a fresh in-memory database.
func testRepo(t *testing.T) *Repository {
	t.Helper()
	dsnCounter++
	dsn := fmt.Sprintf("file:finboard_test_%d?mode=memory&cache=shared", dsnCounter)
	r, err := NewRepository(dsn)
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestSeedAndList(t *testing.T) {
	ctx := context.Background()
	r := testRepo(t)

	seed := []core.Transaction{
		{Date: core.NewDate(2025, 1, 5), Category: "Groceries", Amount: core.Money{Cents: 120000}, Notes: "Big bazaar", Gender: "Not specified"},
		{Category: "Misc", Amount: core.Money{Cents: 50}},
	}
	if err := r.Seed(ctx, "sess-1", seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	records, err := r.List(ctx, "sess-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}
	if records[0].Date.ExportString() != "2025-01-05" || records[0].Amount.Cents != 120000 {
		t.Fatalf("record 0 = %+v", records[0])
	}
	// Null dates survive the round trip as null.
	if !records[1].Date.IsNull() {
		t.Fatalf("record 1 date should stay null")
	}
}

func TestAppendSequencesAndIsolation(t *testing.T) {
	ctx := context.Background()
	r := testRepo(t)

	if err := r.Seed(ctx, "a", []core.Transaction{{Category: "one"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	seq, err := r.Append(ctx, "a", core.Transaction{Category: "two", Amount: core.Money{Cents: 100}})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if seq != 2 {
		t.Fatalf("seq = %d, want 2", seq)
	}

	// Another session starts its own sequence.
	seq, err = r.Append(ctx, "b", core.Transaction{Category: "other"})
	if err != nil {
		t.Fatalf("append b: %v", err)
	}
	if seq != 1 {
		t.Fatalf("seq for fresh session = %d, want 1", seq)
	}

	records, _ := r.List(ctx, "a")
	if len(records) != 2 || records[1].Category != "two" {
		t.Fatalf("session a records = %+v", records)
	}
}

func TestSeedReplacesAndDropClears(t *testing.T) {
	ctx := context.Background()
	r := testRepo(t)

	_ = r.Seed(ctx, "a", []core.Transaction{{Category: "old"}, {Category: "older"}})
	if err := r.Seed(ctx, "a", []core.Transaction{{Category: "new"}}); err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	records, _ := r.List(ctx, "a")
	if len(records) != 1 || records[0].Category != "new" {
		t.Fatalf("re-seed must replace: %+v", records)
	}

	if err := r.Drop(ctx, "a"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	records, _ = r.List(ctx, "a")
	if len(records) != 0 {
		t.Fatalf("dropped ledger should list empty")
	}
}
