package core

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// DashboardService computes the yearly fiduciary summary.
type DashboardService interface {
	// Dashboard aggregates invoices and bills by issue date and expenses by
	// date over the UTC calendar year. Overdue means OPEN with a due date
	// before the current instant.
	Dashboard(ctx context.Context, year int) (*Dashboard, error)
}

type dashboardService struct {
	store ReportStore
	now   func() time.Time
}

// NewDashboardService constructs a DashboardService. now defaults to time.Now.
func NewDashboardService(store ReportStore, now func() time.Time) DashboardService {
	if now == nil {
		now = time.Now
	}
	return &dashboardService{store: store, now: now}
}

func (s *dashboardService) Dashboard(ctx context.Context, year int) (*Dashboard, error) {
	w := NewYearWindow(year)
	now := s.now().UTC()

	var (
		open, overdue, paid, expenses, purchases Totals
		overdueList                              []OverdueInvoice
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		open, err = s.store.SumInvoices(gctx, InvoiceSumFilter{Window: w, Status: InvoiceOpen})
		return wrapAggregate("open invoices", err)
	})
	g.Go(func() (err error) {
		overdue, err = s.store.SumInvoices(gctx, InvoiceSumFilter{Window: w, Status: InvoiceOpen, DueBefore: &now})
		return wrapAggregate("overdue invoices", err)
	})
	g.Go(func() (err error) {
		paid, err = s.store.SumInvoices(gctx, InvoiceSumFilter{Window: w, Status: InvoicePaid})
		return wrapAggregate("paid invoices", err)
	})
	g.Go(func() (err error) {
		expenses, err = s.store.SumExpenses(gctx, w)
		return wrapAggregate("expenses", err)
	})
	g.Go(func() (err error) {
		purchases, err = s.store.SumBills(gctx, w, BillCancelled)
		return wrapAggregate("purchases", err)
	})
	g.Go(func() (err error) {
		overdueList, err = s.store.OverdueInvoices(gctx, w, now, OverdueListLimit)
		return wrapAggregate("overdue list", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if overdueList == nil {
		overdueList = []OverdueInvoice{}
	}
	d := &Dashboard{
		Year:                 year,
		Open:                 open,
		Overdue:              overdue,
		Expenses:             expenses,
		Purchases:            purchases,
		VATCollectedCents:    paid.VatCents,
		VATPaidExpensesCents: expenses.VatCents,
		VATPaidBillsCents:    purchases.VatCents,
		OverdueInvoices:      overdueList,
		GeneratedAt:          now,
	}
	d.VATPaidCents = d.VATPaidExpensesCents + d.VATPaidBillsCents
	d.VATBalanceCents = d.VATCollectedCents - d.VATPaidCents
	return d, nil
}

func wrapAggregate(what string, err error) error {
	if err != nil {
		return fmt.Errorf("dashboard %s: %w", what, err)
	}
	return nil
}
