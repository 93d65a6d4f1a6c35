package core

import (
	"sort"
	"time"
)

// StringSet is a membership set for category and gender selections.
type StringSet map[string]struct{}

func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Values returns the members in sorted order.
func (s StringSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Filter is the filter spec applied to a ledger: selected categories and
// genders (after placeholder mapping) plus an inclusive date range.
type Filter struct {
	Categories StringSet
	Genders    StringSet
	Start      Date
	End        Date
}

// Matches reports whether t passes all three predicates. Records with a
// null date never match the date range.
func (f Filter) Matches(t Transaction) bool {
	if !f.Categories.Has(DisplayCategory(t.Category)) {
		return false
	}
	if !f.Genders.Has(DisplayGender(t.Gender)) {
		return false
	}
	if t.Date.IsNull() {
		return false
	}
	if t.Date.Before(f.Start.Time) || t.Date.After(f.End.Time) {
		return false
	}
	return true
}

// Apply returns the matching subset in insertion order.
func (f Filter) Apply(records []Transaction) []Transaction {
	out := make([]Transaction, 0, len(records))
	for _, t := range records {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// DefaultFilter selects every distinct category and gender present in the
// ledger and spans all non-null dates. With no dated records the range
// collapses to today, mirroring the date control's default.
func DefaultFilter(records []Transaction) Filter {
	f := Filter{
		Categories: NewStringSet(),
		Genders:    NewStringSet(),
	}
	for _, t := range records {
		f.Categories[DisplayCategory(t.Category)] = struct{}{}
		f.Genders[DisplayGender(t.Gender)] = struct{}{}
		if t.Date.IsNull() {
			continue
		}
		if f.Start.IsNull() || t.Date.Before(f.Start.Time) {
			f.Start = t.Date
		}
		if f.End.IsNull() || t.Date.After(f.End.Time) {
			f.End = t.Date
		}
	}
	if f.Start.IsNull() {
		today := DateOf(time.Now())
		f.Start, f.End = today, today
	}
	return f
}
