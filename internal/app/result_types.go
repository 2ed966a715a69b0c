package app

import "fiduciary-books/internal/core"

// DashboardResult is returned by GetDashboard.
type DashboardResult struct {
	Dashboard *core.Dashboard `json:"dashboard"`
	Cached    bool            `json:"cached"`
}

// BillsResult is returned by ListBills. The resolved filter is echoed back so
// pages can re-render the form.
type BillsResult struct {
	Year    int               `json:"year"`
	Query   string            `json:"q"`
	Status  string            `json:"status"`
	Sort    core.SortOrder    `json:"sort"`
	Listing *core.BillListing `json:"listing"`
	Cached  bool              `json:"cached"`
}

// InvoicesResult is returned by ListInvoices.
type InvoicesResult struct {
	Year    int                  `json:"year"`
	Query   string               `json:"q"`
	Status  string               `json:"status"`
	Sort    core.SortOrder       `json:"sort"`
	Listing *core.InvoiceListing `json:"listing"`
}

// MutationResult is returned by operations that may be skipped or whose
// input may have been normalized.
type MutationResult struct {
	core.MutationResult
	// StatusDefaulted is set when the requested status was empty or unknown
	// and OPEN was applied instead.
	StatusDefaulted bool `json:"statusDefaulted,omitempty"`
}
