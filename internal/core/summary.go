package core

import "sort"

// Summary holds the KPI aggregates of a filtered subset. All fields are 0
// for an empty subset.
type Summary struct {
	Total   Money
	Average Money
	Max     Money
	Count   int
}

// CategoryAmount is an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// MonthAmount is an amount aggregated by calendar month (key YYYY-MM).
type MonthAmount struct {
	Month  string
	Amount Money
}

// Summarize computes the KPI aggregates. Pure function of the subset.
func Summarize(records []Transaction) Summary {
	s := Summary{Count: len(records)}
	for _, t := range records {
		s.Total.Cents += t.Amount.Cents
		if t.Amount.Cents > s.Max.Cents {
			s.Max = t.Amount
		}
	}
	if s.Count > 0 {
		s.Average = Money{Cents: (s.Total.Cents + int64(s.Count)/2) / int64(s.Count)}
	}
	return s
}

// ByCategory sums amounts per category (placeholder-mapped), largest first;
// ties break alphabetically for a stable chart order.
func ByCategory(records []Transaction) []CategoryAmount {
	sums := map[string]int64{}
	for _, t := range records {
		sums[DisplayCategory(t.Category)] += t.Amount.Cents
	}
	out := make([]CategoryAmount, 0, len(sums))
	for name, cents := range sums {
		out = append(out, CategoryAmount{Name: name, Amount: Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ByMonth sums amounts per calendar month in chronological order. Records
// with a null date are excluded.
func ByMonth(records []Transaction) []MonthAmount {
	sums := map[string]int64{}
	for _, t := range records {
		key := t.Date.MonthKey()
		if key == "" {
			continue
		}
		sums[key] += t.Amount.Cents
	}
	out := make([]MonthAmount, 0, len(sums))
	for month, cents := range sums {
		out = append(out, MonthAmount{Month: month, Amount: Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// TopN returns the n largest transactions by amount. Ties keep insertion
// order; a subset smaller than n is returned whole.
func TopN(records []Transaction, n int) []Transaction {
	out := append([]Transaction(nil), records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount.Cents > out[j].Amount.Cents })
	if n < len(out) {
		out = out[:n]
	}
	return out
}
