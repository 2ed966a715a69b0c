package core_test

import (
	"context"
	"testing"

	"fiduciary-books/internal/core"
	"fiduciary-books/internal/memstore"
)

func seedClient(t *testing.T, store *memstore.Store, name string) string {
	t.Helper()
	res, err := core.NewPartyService(store, nil).CreateClient(context.Background(), name)
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	return res.ID
}

func TestInvoice_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := core.NewInvoiceService(store, nil)
	acme := seedClient(t, store, "Acme SA")
	beta := seedClient(t, store, "Beta GmbH")

	inv, err := svc.CreateInvoice(ctx, core.InvoiceInput{
		ClientID:  acme,
		Number:    "2024-001",
		IssueDate: "2024-01-10",
		DueDate:   "2024-02-10",
		TTC:       "540.50",
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if inv.AmountGrossCents != 54050 || inv.AmountNetCents()+inv.AmountVatCents != 54050 {
		t.Errorf("unexpected amounts: gross %d vat %d", inv.AmountGrossCents, inv.AmountVatCents)
	}
	if inv.Status != core.InvoiceOpen {
		t.Errorf("expected OPEN, got %s", inv.Status)
	}

	if _, err := svc.CreateInvoice(ctx, core.InvoiceInput{
		ClientID: beta, Number: "2024-002", IssueDate: "2024-06-01", TTC: "100", Status: "PAID",
	}); err != nil {
		t.Fatalf("CreateInvoice #2: %v", err)
	}

	t.Run("Validation", func(t *testing.T) {
		cases := map[string]core.InvoiceInput{
			"Date manquante":     {ClientID: acme, Number: "x", TTC: "1"},
			"Client manquant":    {IssueDate: "2024-01-01", Number: "x", TTC: "1"},
			"Numéro manquant":    {IssueDate: "2024-01-01", ClientID: acme, TTC: "1"},
			"Client introuvable": {IssueDate: "2024-01-01", ClientID: "ghost", Number: "x", TTC: "1"},
		}
		for msg, input := range cases {
			_, err := svc.CreateInvoice(ctx, input)
			if err == nil || err.Error() != msg {
				t.Errorf("expected %q, got %v", msg, err)
			}
		}
	})

	t.Run("ListByClientName", func(t *testing.T) {
		listing, err := svc.ListInvoices(ctx, core.InvoiceFilter{Window: core.NewYearWindow(2024), Query: "acme"})
		if err != nil {
			t.Fatalf("ListInvoices: %v", err)
		}
		if listing.Count != 1 || listing.Invoices[0].Number != "2024-001" {
			t.Errorf("expected invoice 2024-001, got %+v", listing.Invoices)
		}
		if listing.Invoices[0].Client == nil || listing.Invoices[0].Client.Name != "Acme SA" {
			t.Error("expected client attached")
		}
	})

	t.Run("StatusUpdate", func(t *testing.T) {
		res, err := svc.UpdateInvoiceStatus(ctx, inv.ID, core.InvoicePaid)
		if err != nil || !res.Applied() {
			t.Fatalf("UpdateInvoiceStatus: (%v, %v)", res, err)
		}
		paid, _ := svc.ListInvoices(ctx, core.InvoiceFilter{Window: core.NewYearWindow(2024), Status: core.InvoicePaid})
		if paid.Count != 2 {
			t.Errorf("expected 2 PAID invoices, got %d", paid.Count)
		}
		res, err = svc.UpdateInvoiceStatus(ctx, "", core.InvoicePaid)
		if err != nil || res.Applied() {
			t.Errorf("blank id: expected skipped, got (%v, %v)", res, err)
		}
	})
}

func TestExpense_CreateAndList(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	views := &recordingRefresher{}
	svc := core.NewExpenseService(store, views)

	for _, in := range []core.ExpenseInput{
		{Date: "2024-01-05", TTC: "108", Notes: "Papeterie"},
		{Date: "2024-07-05", TTC: "20", VAT: "0"},
		{Date: "2023-12-31", TTC: "99"},
	} {
		if _, err := svc.CreateExpense(ctx, in); err != nil {
			t.Fatalf("CreateExpense(%+v): %v", in, err)
		}
	}

	listing, err := svc.ListExpenses(ctx, 2024)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if listing.Count != 2 {
		t.Fatalf("expected 2 expenses in 2024, got %d", listing.Count)
	}
	if listing.Expenses[0].Date.Month() != 7 {
		t.Error("expected newest expense first")
	}
	if listing.TotalGrossCents != 12800 {
		t.Errorf("total gross = %d", listing.TotalGrossCents)
	}
	// 10800 at 8.1% -> net 9991, vat 809; the 0% expense carries no VAT.
	if listing.TotalVatCents != 809 {
		t.Errorf("total vat = %d, want 809", listing.TotalVatCents)
	}

	if _, err := svc.CreateExpense(ctx, core.ExpenseInput{TTC: "1"}); err == nil || err.Error() != "Date manquante" {
		t.Errorf("expected Date manquante, got %v", err)
	}
	if _, err := svc.CreateExpense(ctx, core.ExpenseInput{Date: "2024-01-01", TTC: "1", VAT: "abc"}); err == nil || err.Error() != "Taux TVA invalide" {
		t.Errorf("expected Taux TVA invalide, got %v", err)
	}
}
