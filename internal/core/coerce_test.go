package core

import "testing"

func TestParseCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0", 0, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestCoerceAmountIsTotal(t *testing.T) {
	cases := []struct {
		in  string
		out int64
	}{
		{"1200", 120000},
		{"60", 6000},
		{"12.34", 1234},
		{"12,34", 1234},
		{"1.2e3", 120000}, // float fallback
		{"-50", 0},        // negatives clamp to zero
		{"NaN", 0},
		{"Inf", 0},
		{"garbage", 0},
		{"", 0},
	}
	for _, tc := range cases {
		got := CoerceAmount(tc.in)
		if got.Cents != tc.out {
			t.Fatalf("%q: got %d cents, want %d", tc.in, got.Cents, tc.out)
		}
		if got.Cents < 0 {
			t.Fatalf("%q: coerced amount must be non-negative", tc.in)
		}
	}
}

func TestCoerceDate(t *testing.T) {
	cases := []struct {
		in   string
		want string // export form, "" for null
	}{
		{"2025-01-05", "2025-01-05"},
		{"2025/02/02", "2025-02-02"},
		{"07/01/2025", "2025-01-07"},
		{"2025-01-05 13:30:00", "2025-01-05"},
		{"Jan 5, 2025", "2025-01-05"},
		{"not a date", ""},
		{"", ""},
	}
	for _, tc := range cases {
		got := CoerceDate(tc.in)
		if got.ExportString() != tc.want {
			t.Fatalf("%q: got %q, want %q", tc.in, got.ExportString(), tc.want)
		}
	}
}
