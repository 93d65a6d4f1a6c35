// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request
// data: dashboard filter parameters, the manual entry form, and common
// method/form guards.

package http

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"finboard/internal/core"
)

// FilterFromQuery builds a filter from request query parameters, starting
// from the ledger's default filter. Repeated "category" and "gender"
// parameters replace the default selections; the filter form always sends
// a blank sentinel value, so a present-but-empty parameter is an explicit
// empty selection and matches nothing. "start" and "end" narrow the date
// range when they parse as YYYY-MM-DD.
func FilterFromQuery(query url.Values, ledger []core.Transaction) core.Filter {
	f := core.DefaultFilter(ledger)

	if cats, ok := query["category"]; ok {
		selected := make([]string, 0, len(cats))
		for _, c := range cats {
			if c = sanitizeInput(c); c != "" {
				selected = append(selected, c)
			}
		}
		f.Categories = core.NewStringSet(selected...)
	}

	if genders, ok := query["gender"]; ok {
		selected := make([]string, 0, len(genders))
		for _, g := range genders {
			if g = sanitizeInput(g); g != "" {
				selected = append(selected, g)
			}
		}
		f.Genders = core.NewStringSet(selected...)
	}

	if v := strings.TrimSpace(query.Get("start")); v != "" {
		if d, err := parseDate(v); err == nil {
			f.Start = d
		}
	}
	if v := strings.TrimSpace(query.Get("end")); v != "" {
		if d, err := parseDate(v); err == nil {
			f.End = d
		}
	}

	return f
}

// filterKey renders a filter as a stable cache key component.
func filterKey(f core.Filter) string {
	return strings.Join(f.Categories.Values(), ",") + "|" +
		strings.Join(f.Genders.Values(), ",") + "|" +
		f.Start.ExportString() + "|" + f.End.ExportString()
}

// ParseTransactionForm builds a transaction from the manual entry form.
// A blank date defaults to today and an unparseable date becomes null,
// but an unparseable amount is rejected so typos do not silently turn
// into zero-value entries.
func ParseTransactionForm(form url.Values) (core.Transaction, *HTMXResponseBuilder) {
	var tx core.Transaction

	amountStr := strings.TrimSpace(form.Get("amount"))
	if amountStr == "" {
		return tx, UnprocessableEntityError("Amount is required")
	}
	cents, err := core.ParseCents(amountStr)
	if err != nil {
		return tx, UnprocessableEntityError("Invalid amount: " + amountStr)
	}
	tx.Amount = core.Money{Cents: cents}

	dateStr := strings.TrimSpace(form.Get("date"))
	if dateStr == "" {
		tx.Date = core.DateOf(time.Now())
	} else {
		tx.Date = core.CoerceDate(dateStr)
	}

	tx.Category = sanitizeInput(form.Get("category"))
	if tx.Category == "" {
		tx.Category = core.EmptyCategory
	}

	tx.Gender = sanitizeInput(form.Get("gender"))
	if tx.Gender == "" {
		tx.Gender = core.UnspecifiedGender
	}

	notes := sanitizeInput(form.Get("notes"))
	tags := make([]string, 0, len(form["tag"]))
	for _, t := range form["tag"] {
		if t = sanitizeInput(t); t != "" {
			tags = append(tags, t)
		}
	}
	tx.Notes = core.AppendTags(notes, tags)

	return tx, nil
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// RequireGET is a convenience function for GET-only handlers.
func RequireGET(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodGet)
}

// ParseFormOrFail parses the request form and returns an error response on failure.
// Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format")
	}
	return nil
}
