// Package core holds the transaction domain: record types, the coercion
// boundary, the filter engine and the aggregations.
//
// This file contains the coercion functions applied to raw tabular input.
// They are total: any value, however malformed, maps to a defined fallback
// (null date, zero amount) and never to an error. Internal logic therefore
// never handles raw values.
package core

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var ErrInvalidAmount = errors.New("invalid amount")

// dateLayouts are tried in order by CoerceDate. The export layout comes
// first so round-tripped files parse on the fast path.
var dateLayouts = []string{
	ExportDateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseCents converts a decimal string to cents with half-up rounding on the
// third decimal place. Both dot (12.34) and comma (12,34) separators are
// accepted. Negative values are rejected; zero is allowed.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// CoerceAmount converts an arbitrary amount string to Money. Plain decimals
// go through the exact cents parser; anything else (scientific notation,
// currency junk, garbage) falls back to a float parse, and failures or
// negative, NaN and infinite values coerce to 0. The result is always
// finite and non-negative.
func CoerceAmount(s string) Money {
	if cents, err := ParseCents(s); err == nil {
		return Money{Cents: cents}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, ",", ".")), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return Money{}
	}
	if v > float64((1<<63-1)/100) {
		return Money{}
	}
	return Money{Cents: int64(math.Round(v * 100))}
}

// CoerceDate parses an arbitrary date string, returning the null date when
// no known layout matches.
func CoerceDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t)
		}
	}
	return Date{}
}
