package core

import "context"

// View names a cached, derived view that must be refreshed after a write.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewBills     View = "bills"
	ViewInvoices  View = "invoices"
	ViewExpenses  View = "expenses"
	ViewClients   View = "clients"
	ViewSuppliers View = "suppliers"
	ViewSalaries  View = "salaries"
)

// ViewRefresher drops cached copies of views after the data behind them
// changed. Refresh must not fail the write that triggered it.
type ViewRefresher interface {
	Refresh(ctx context.Context, views ...View)
}

type noopRefresher struct{}

func (noopRefresher) Refresh(context.Context, ...View) {}

func orNoop(v ViewRefresher) ViewRefresher {
	if v == nil {
		return noopRefresher{}
	}
	return v
}

// Outcome tells callers whether a mutation touched the datastore.
type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	// OutcomeSkipped marks a request that was ignored, such as a blank id.
	OutcomeSkipped Outcome = "skipped"
)

// MutationResult is returned by operations that may be silently skipped.
type MutationResult struct {
	Outcome Outcome `json:"outcome"`
	ID      string  `json:"id,omitempty"`
}

// Applied reports whether the mutation reached the datastore.
func (r MutationResult) Applied() bool {
	return r.Outcome == OutcomeApplied
}

func skipped() MutationResult {
	return MutationResult{Outcome: OutcomeSkipped}
}

func applied(id string) MutationResult {
	return MutationResult{Outcome: OutcomeApplied, ID: id}
}
