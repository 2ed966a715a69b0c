package core_test

import (
	"errors"
	"testing"
	"time"

	"fiduciary-books/internal/core"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1'234,50", 123450},
		{"1’234.50", 123450},
		{"1â€™234.50", 123450},
		{" 1 080.00 ", 108000},
		{"\ufeff12.3", 1230},
		{"12", 1200},
		{"0.005", 1},
		{"0.004", 0},
		{"", 0},
		{"   ", 0},
		{"-5", -500},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := core.ParseCents(tt.in)
			if err != nil {
				t.Fatalf("ParseCents(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseCents(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseCents_Invalid(t *testing.T) {
	for _, in := range []string{"abc", "1.2.3", "12CHF", "1,2,3", "1e2", "1E2", "1e20000000", "1e2000000000", "-1e-3"} {
		if _, err := core.ParseCents(in); !errors.Is(err, core.ErrInvalidNumber) {
			t.Errorf("ParseCents(%q): expected ErrInvalidNumber, got %v", in, err)
		}
	}
}

func TestParseBasisPoints(t *testing.T) {
	tests := map[string]int64{
		"8.1":  810,
		"8,1":  810,
		"7.7":  770,
		"2.6":  260,
		"0":    0,
		"3.75": 375,
	}
	for in, want := range tests {
		got, err := core.ParseBasisPoints(in)
		if err != nil {
			t.Errorf("ParseBasisPoints(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseBasisPoints(%q) = %d, want %d", in, got, want)
		}
	}

	if _, err := core.ParseBasisPoints("8'1"); err == nil {
		t.Error("expected apostrophes to be rejected in a rate")
	}

	for _, in := range []string{"1e3", "8.1E0", "1e2000000000"} {
		if _, err := core.ParseBasisPoints(in); !errors.Is(err, core.ErrInvalidNumber) {
			t.Errorf("ParseBasisPoints(%q): expected ErrInvalidNumber, got %v", in, err)
		}
	}
}

func TestSplitGross_SumsToGross(t *testing.T) {
	rates := []int64{0, 1, 250, 260, 370, 770, 810, 2000, 10000}
	for _, bp := range rates {
		for g := int64(0); g <= 5000; g += 7 {
			net, vat := core.SplitGross(g, bp)
			if net+vat != g {
				t.Fatalf("SplitGross(%d, %d) = %d + %d, does not sum to gross", g, bp, net, vat)
			}
			if vat < 0 || net < 0 {
				t.Fatalf("SplitGross(%d, %d) produced a negative part: %d, %d", g, bp, net, vat)
			}
		}
	}
}

func TestSplitGross_StandardRate(t *testing.T) {
	// 108000 / 1.081 = 99907.49...
	net, vat := core.SplitGross(108000, 810)
	if net != 99907 || vat != 8093 {
		t.Errorf("SplitGross(108000, 810) = (%d, %d), want (99907, 8093)", net, vat)
	}

	net, vat = core.SplitGross(12345, 0)
	if net != 12345 || vat != 0 {
		t.Errorf("zero rate: got (%d, %d)", net, vat)
	}
	net, vat = core.SplitGross(12345, -10)
	if net != 12345 || vat != 0 {
		t.Errorf("negative rate: got (%d, %d)", net, vat)
	}
}

func TestFormatting(t *testing.T) {
	if got := core.FormatCHF(123450); got != "CHF 1234.50" {
		t.Errorf("FormatCHF = %q", got)
	}
	if got := core.FormatCHF(-5); got != "CHF -0.05" {
		t.Errorf("FormatCHF negative = %q", got)
	}
	if got := core.FormatRate(810); got != "8.10%" {
		t.Errorf("FormatRate = %q", got)
	}

	zurich := time.FixedZone("CET", 3600)
	d := time.Date(2025, 1, 1, 0, 30, 0, 0, zurich)
	if got := core.ISODate(d); got != "2024-12-31" {
		t.Errorf("ISODate should render in UTC, got %q", got)
	}
	if got := core.ISODate(time.Time{}); got != "" {
		t.Errorf("ISODate(zero) = %q", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := core.ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !d.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("got %v", d)
	}

	d, err = core.ParseDate("2024-03-15T01:00:00+02:00")
	if err != nil {
		t.Fatalf("ParseDate RFC3339: %v", err)
	}
	if d.Location() != time.UTC || d.Day() != 14 {
		t.Errorf("expected UTC conversion, got %v", d)
	}

	if _, err := core.ParseDate("15.03.2024"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestYearWindow(t *testing.T) {
	w := core.NewYearWindow(2024)
	cases := []struct {
		at   time.Time
		want bool
	}{
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), true},
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), false},
	}
	for _, c := range cases {
		if got := w.Contains(c.at); got != c.want {
			t.Errorf("Contains(%v) = %v, want %v", c.at, got, c.want)
		}
	}
}
