package app

import (
	"strconv"
	"strings"
	"time"

	"fiduciary-books/internal/core"
)

const (
	minYear = 1900
	maxYear = 9999
)

// parseYear returns the year in raw, or the UTC year of now when raw is empty
// or not a plausible calendar year.
func parseYear(raw string, now time.Time) int {
	y, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || y < minYear || y > maxYear {
		return now.UTC().Year()
	}
	return y
}

// billStatusFilter maps a listing status parameter to a filter value. "all",
// empty and unknown values mean no filter.
func billStatusFilter(raw string) core.BillStatus {
	s, defaulted := core.ResolveBillStatus(raw)
	if defaulted {
		return ""
	}
	return s
}

func invoiceStatusFilter(raw string) core.InvoiceStatus {
	s, defaulted := core.ResolveInvoiceStatus(raw)
	if defaulted {
		return ""
	}
	return s
}
