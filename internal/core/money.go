package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// ErrInvalidNumber is returned by ParseCents and ParseBasisPoints when the
// cleaned input is not a finite decimal number.
var ErrInvalidNumber = errors.New("invalid number")

// DefaultVATRate is the Swiss standard VAT rate applied when a form leaves the
// rate empty.
const DefaultVATRate = "8.1"

// misencodedApostrophe is U+2019 after a UTF-8 → Windows-1252 round trip.
const misencodedApostrophe = "\u00e2\u20ac\u2122"

var (
	hundred   = decimal.NewFromInt(100)
	half      = decimal.New(5, -1)
	bpPerUnit = decimal.NewFromInt(10000)
)

// ParseCents converts a user-entered CHF amount such as "1'234,50" into cents.
//
// Whitespace (including non-breaking variants) and apostrophe thousands
// separators are removed and the first comma is read as the decimal point.
// An input that is empty after cleaning yields 0; callers that require a value
// must reject empty input themselves.
func ParseCents(raw string) (int64, error) {
	return parseHundredths(normalizeNumber(raw, true))
}

// ParseBasisPoints converts a percentage such as "8.1" or "8,1" into basis
// points (810). Apostrophes are not stripped.
func ParseBasisPoints(raw string) (int64, error) {
	return parseHundredths(normalizeNumber(raw, false))
}

func normalizeNumber(raw string, apostrophes bool) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '\ufeff' {
			return -1
		}
		return r
	}, raw)
	if apostrophes {
		s = strings.ReplaceAll(s, misencodedApostrophe, "")
		s = strings.ReplaceAll(s, "\u2019", "")
		s = strings.ReplaceAll(s, "'", "")
	}
	return strings.Replace(s, ",", ".", 1)
}

// parseHundredths returns round(value*100), rounding halves towards +Inf.
func parseHundredths(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	// Exponent notation is refused before any arithmetic: rescaling a value
	// like 1e2000000000 to whole hundredths costs time proportional to the
	// exponent.
	if strings.ContainsAny(s, "eE") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	rounded := d.Mul(hundred).Add(half).Floor()
	if !rounded.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidNumber, s)
	}
	return rounded.IntPart(), nil
}

// SplitGross derives the net and VAT parts of a gross amount at the given rate
// in basis points. The VAT part absorbs the rounding remainder so that
// net+vat always equals gross.
func SplitGross(grossCents, vatRateBp int64) (netCents, vatCents int64) {
	if vatRateBp <= 0 {
		return grossCents, 0
	}
	gross := decimal.NewFromInt(grossCents).Mul(bpPerUnit)
	netCents = gross.DivRound(bpPerUnit.Add(decimal.NewFromInt(vatRateBp)), 0).IntPart()
	return netCents, grossCents - netCents
}

// FormatCHF renders cents as "CHF 1234.50".
func FormatCHF(cents int64) string {
	return "CHF " + decimal.New(cents, -2).StringFixed(2)
}

// FormatRate renders basis points as a percentage, e.g. 810 → "8.10%".
func FormatRate(bp int64) string {
	return decimal.New(bp, -2).StringFixed(2) + "%"
}

// ISODate formats t as YYYY-MM-DD in UTC. The zero time renders as "".
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}
