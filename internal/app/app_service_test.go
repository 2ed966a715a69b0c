package app

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"fiduciary-books/internal/core"
	"fiduciary-books/internal/memstore"
	"fiduciary-books/internal/metrics"
)

var fixedNow = time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (ApplicationService, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	svc := NewAppService(memstore.New(), Options{
		Metrics: m,
		Now:     func() time.Time { return fixedNow },
	})
	return svc, m
}

func TestParseYear(t *testing.T) {
	tests := map[string]int{
		"2023":  2023,
		" 2021": 2021,
		"":      2024,
		"abc":   2024,
		"0":     2024,
		"12345": 2024,
	}
	for in, want := range tests {
		if got := parseYear(in, fixedNow); got != want {
			t.Errorf("parseYear(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestStatusFilters(t *testing.T) {
	for _, raw := range []string{"", "all", "bogus"} {
		if got := billStatusFilter(raw); got != "" {
			t.Errorf("billStatusFilter(%q) = %q, want no filter", raw, got)
		}
	}
	if got := billStatusFilter("PAID"); got != core.BillPaid {
		t.Errorf("billStatusFilter(PAID) = %q", got)
	}
	if got := invoiceStatusFilter("CANCELLED"); got != core.InvoiceCancelled {
		t.Errorf("invoiceStatusFilter(CANCELLED) = %q", got)
	}
}

func TestAppService_BillFlow(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestService(t)

	res, err := svc.CreateSupplier(ctx, "Swisscom")
	if err != nil || !res.Applied() {
		t.Fatalf("CreateSupplier: (%v, %v)", res, err)
	}

	b, err := svc.CreateBill(ctx, CreateBillRequest{IssueDate: "2024-02-01", SupplierID: res.ID, TTC: "1080"})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}
	if b.VatRateBp != 810 {
		t.Errorf("expected default VAT rate, got %d", b.VatRateBp)
	}

	if _, err := svc.CreateBill(ctx, CreateBillRequest{SupplierID: res.ID, TTC: "10"}); !core.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}

	t.Run("StatusDefaultsToOpen", func(t *testing.T) {
		mr, err := svc.UpdateBillStatus(ctx, b.ID, "ARCHIVED")
		if err != nil {
			t.Fatalf("UpdateBillStatus: %v", err)
		}
		if !mr.Applied() || !mr.StatusDefaulted {
			t.Errorf("expected applied with defaulted status, got %+v", mr)
		}
	})

	t.Run("ListUsesYearAndFilters", func(t *testing.T) {
		got, err := svc.ListBills(ctx, ListQuery{Status: "all"})
		if err != nil {
			t.Fatalf("ListBills: %v", err)
		}
		if got.Year != 2024 || got.Listing.Count != 1 || got.Sort != core.SortDateDesc {
			t.Errorf("unexpected result %+v", got)
		}
		paid, _ := svc.ListBills(ctx, ListQuery{Year: "2024", Status: "PAID"})
		if paid.Listing.Count != 0 {
			t.Errorf("expected no PAID bills, got %d", paid.Listing.Count)
		}
	})

	t.Run("BlankDeleteSkipped", func(t *testing.T) {
		mr, err := svc.DeleteBill(ctx, " ")
		if err != nil || mr.Applied() {
			t.Errorf("expected skipped, got (%+v, %v)", mr, err)
		}
	})

	if v := testutil.ToFloat64(m.Mutations.WithLabelValues("bill", "create", "applied")); v != 1 {
		t.Errorf("applied bill creates = %v", v)
	}
	if v := testutil.ToFloat64(m.Mutations.WithLabelValues("bill", "create", "invalid")); v != 1 {
		t.Errorf("invalid bill creates = %v", v)
	}
	if v := testutil.ToFloat64(m.Mutations.WithLabelValues("bill", "delete", "skipped")); v != 1 {
		t.Errorf("skipped deletes = %v", v)
	}
}

func TestAppService_CustomDefaultVAT(t *testing.T) {
	ctx := context.Background()
	svc := NewAppService(memstore.New(), Options{DefaultVATRate: "7.7"})
	e, err := svc.CreateExpense(ctx, CreateExpenseRequest{Date: "2024-01-01", TTC: "107.70"})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if e.AmountVatCents != 770 {
		t.Errorf("expected VAT at 7.7%%, got %d", e.AmountVatCents)
	}
}

func TestAppService_DashboardAndSalaries(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	d, err := svc.GetDashboard(ctx, "")
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if d.Dashboard.Year != 2024 || d.Cached {
		t.Errorf("unexpected dashboard %+v", d)
	}

	emp, err := svc.CreateEmployee(ctx, CreateEmployeeRequest{Name: "Anna", Type: "CADRE"})
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	sal, err := svc.UpsertSalary(ctx, UpsertSalaryRequest{EmployeeID: emp.ID, Year: 2024, Month: 2, GrossCents: 100})
	if err != nil {
		t.Fatalf("UpsertSalary: %v", err)
	}
	if core.ISODate(sal.Month) != "2024-02-01" {
		t.Errorf("month = %s", core.ISODate(sal.Month))
	}

	if err := svc.Health(ctx); err != nil {
		t.Errorf("Health: %v", err)
	}
}
