package core

import (
	"strings"
	"time"
)

// Placeholder labels used when a record carries no value. Filtering and
// display always see the placeholder, never the empty string.
const (
	EmptyCategory     = "(empty)"
	UnspecifiedGender = "Not specified"
	ExportDateLayout  = "2006-01-02"
	MonthKeyLayout    = "2006-01"
)

// DefaultCategories are always offered in the add-transaction form, merged
// with whatever categories the current ledger contains.
var DefaultCategories = []string{"Groceries", "Transport", "Entertainment", "Utility", "Health", "Travel"}

// GenderOptions is the fixed vocabulary offered by the form; uploads may
// still introduce other values.
var GenderOptions = []string{"Male", "Female", "Other", "Prefer not to say"}

// TagOptions is the tag vocabulary offered by the form.
var TagOptions = []string{"food", "monthly", "one-time", "refund", "family"}

type (
	// Date is a nullable calendar date. The zero time means "no date":
	// records with a null date stay in the ledger but are excluded from
	// date-range filtering and monthly grouping.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is the sole ledger entity. Every field is always
	// present; coercion at the input boundary guarantees the invariants
	// (finite non-negative amount, all five fields populated).
	Transaction struct {
		Date     Date
		Category string
		Amount   Money
		Notes    string
		Gender   string
	}
)

// NewDate creates a date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// IsNull reports whether the date is absent.
func (d Date) IsNull() bool {
	return d.IsZero()
}

// ExportString renders the date as YYYY-MM-DD, or "" when null.
func (d Date) ExportString() string {
	if d.IsNull() {
		return ""
	}
	return d.Format(ExportDateLayout)
}

// MonthKey returns the sortable calendar-month key (YYYY-MM), or "" when null.
func (d Date) MonthKey() string {
	if d.IsNull() {
		return ""
	}
	return d.Format(MonthKeyLayout)
}

// Value returns the amount as a float for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Value() float64 {
	return float64(m.Cents) / 100.0
}

// DisplayCategory maps the empty category to its placeholder.
func DisplayCategory(c string) string {
	if strings.TrimSpace(c) == "" {
		return EmptyCategory
	}
	return c
}

// DisplayGender maps the empty gender to its placeholder.
func DisplayGender(g string) string {
	if strings.TrimSpace(g) == "" {
		return UnspecifiedGender
	}
	return g
}

// AppendTags attaches the tag summary suffix to notes. With no tags the
// notes are returned unchanged.
func AppendTags(notes string, tags []string) string {
	if len(tags) == 0 {
		return notes
	}
	return strings.TrimSpace(notes + " | Tags: " + strings.Join(tags, ", "))
}
