package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fiduciary-books/internal/core"
	"fiduciary-books/internal/memstore"
)

func TestDashboard_VATBalance(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	supplierID := seedSupplier(t, store, "Fournisseur")
	clientID := seedClient(t, store, "Client")

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	mustInsert := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	// Amounts are inserted directly so the VAT parts are exact.
	mustInsert(store.InsertInvoice(ctx, &core.Invoice{
		ID: "inv-paid", Number: "P1", ClientID: clientID, IssueDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Status: core.InvoicePaid, AmountGrossCents: 6673, AmountVatCents: 500, CreatedAt: created,
	}))
	mustInsert(store.InsertInvoice(ctx, &core.Invoice{
		ID: "inv-overdue", Number: "O1", ClientID: clientID, IssueDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		DueDate: &due, Status: core.InvoiceOpen, AmountGrossCents: 10000, AmountVatCents: 749, CreatedAt: created,
	}))
	future := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	mustInsert(store.InsertInvoice(ctx, &core.Invoice{
		ID: "inv-open", Number: "O2", ClientID: clientID, IssueDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		DueDate: &future, Status: core.InvoiceOpen, AmountGrossCents: 2000, AmountVatCents: 150, CreatedAt: created,
	}))
	mustInsert(store.InsertExpense(ctx, &core.Expense{
		ID: "exp", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), AmountGrossCents: 2669, AmountVatCents: 200, CreatedAt: created,
	}))
	mustInsert(store.InsertBill(ctx, &core.Bill{
		ID: "bill-open", IssueDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), SupplierID: supplierID, Status: core.BillOpen,
		AmountGrossCents: 1335, AmountNetCents: 1235, AmountVatCents: 100, VatRateBp: 810, CreatedAt: created,
	}))
	mustInsert(store.InsertBill(ctx, &core.Bill{
		ID: "bill-cancelled", IssueDate: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), SupplierID: supplierID, Status: core.BillCancelled,
		AmountGrossCents: 99999, AmountNetCents: 92506, AmountVatCents: 7493, VatRateBp: 810, CreatedAt: created,
	}))
	// Outside the year window.
	mustInsert(store.InsertExpense(ctx, &core.Expense{
		ID: "exp-2025", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), AmountGrossCents: 5000, AmountVatCents: 400, CreatedAt: created,
	}))

	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	svc := core.NewDashboardService(store, func() time.Time { return now })

	d, err := svc.Dashboard(ctx, 2024)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if d.VATCollectedCents != 500 {
		t.Errorf("vatCollected = %d, want 500", d.VATCollectedCents)
	}
	if d.VATPaidCents != 300 {
		t.Errorf("vatPaid = %d, want 300", d.VATPaidCents)
	}
	if d.VATBalanceCents != 200 {
		t.Errorf("vatBalance = %d, want 200", d.VATBalanceCents)
	}
	if d.Open.Count != 2 || d.Open.GrossCents != 12000 {
		t.Errorf("open totals = %+v", d.Open)
	}
	if d.Overdue.Count != 1 || d.Overdue.GrossCents != 10000 {
		t.Errorf("overdue totals = %+v", d.Overdue)
	}
	if d.Purchases.Count != 1 {
		t.Errorf("cancelled bills must be excluded from purchases, got %+v", d.Purchases)
	}
	if d.Expenses.Count != 1 {
		t.Errorf("expenses outside the year must be excluded, got %+v", d.Expenses)
	}
	if len(d.OverdueInvoices) != 1 || d.OverdueInvoices[0].Number != "O1" || d.OverdueInvoices[0].ClientName != "Client" {
		t.Errorf("overdue list = %+v", d.OverdueInvoices)
	}
	if !d.GeneratedAt.Equal(now) {
		t.Errorf("generatedAt = %v", d.GeneratedAt)
	}
}

func TestDashboard_EmptyYear(t *testing.T) {
	svc := core.NewDashboardService(memstore.New(), nil)
	d, err := svc.Dashboard(context.Background(), 1999)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if d.VATBalanceCents != 0 || d.Open.Count != 0 {
		t.Errorf("expected zero totals, got %+v", d)
	}
	if d.OverdueInvoices == nil {
		t.Error("overdue list must be an empty slice, not nil")
	}
}

type failingReports struct{ core.ReportStore }

func (failingReports) SumExpenses(context.Context, core.YearWindow) (core.Totals, error) {
	return core.Totals{}, errors.New("connection reset")
}

func TestDashboard_PropagatesStoreError(t *testing.T) {
	svc := core.NewDashboardService(failingReports{memstore.New()}, nil)
	_, err := svc.Dashboard(context.Background(), 2024)
	if err == nil || err.Error() != "dashboard expenses: connection reset" {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}
