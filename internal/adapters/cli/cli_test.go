package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"fiduciary-books/internal/app"
	"fiduciary-books/internal/core"
	"fiduciary-books/internal/memstore"
)

func newService() app.ApplicationService {
	return app.NewAppService(memstore.New(), app.Options{
		Now: func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) },
	})
}

// run builds a fresh command tree per invocation; flag state is not reset between runs.
func run(t *testing.T, svc app.ApplicationService, migrate MigrateFunc, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := BuildCLI(svc, migrate, &out)
	err := cmd.Run(context.Background(), append([]string{"books"}, args...))
	return out.String(), err
}

func TestClientCommands(t *testing.T) {
	svc := newService()

	out, err := run(t, svc, nil, "client-create", "--name", "Acme SA")
	if err != nil {
		t.Fatalf("client-create: %v", err)
	}
	var res app.MutationResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if !res.Applied() || res.ID == "" {
		t.Errorf("unexpected result %+v", res)
	}

	out, err = run(t, svc, nil, "clients")
	if err != nil {
		t.Fatalf("clients: %v", err)
	}
	var clients []core.Client
	if err := json.Unmarshal([]byte(out), &clients); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(clients) != 1 || clients[0].Name != "Acme SA" {
		t.Errorf("clients = %+v", clients)
	}

	out, err = run(t, svc, nil, "--format", "table", "clients")
	if err != nil {
		t.Fatalf("clients table: %v", err)
	}
	if !strings.Contains(out, "CLIENTS") || !strings.Contains(out, "Acme SA") {
		t.Errorf("table output:\n%s", out)
	}
}

func TestSalaryUpsertCommand(t *testing.T) {
	svc := newService()

	out, err := run(t, svc, nil, "employee-create", "--name", "Anna", "--type", "CADRE")
	if err != nil {
		t.Fatalf("employee-create: %v", err)
	}
	var emp core.Employee
	if err := json.Unmarshal([]byte(out), &emp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if emp.Type != core.EmployeeExecutive {
		t.Errorf("type = %s", emp.Type)
	}

	out, err = run(t, svc, nil, "salary-upsert", "--employee", emp.ID, "--year", "2024", "--month", "4",
		"--gross", "600000", "--charges", "90000", "--net", "480000")
	if err != nil {
		t.Fatalf("salary-upsert: %v", err)
	}
	var sal core.Salary
	if err := json.Unmarshal([]byte(out), &sal); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if core.ISODate(sal.Month) != "2024-04-01" || sal.GrossCents != 600000 {
		t.Errorf("salary = %+v", sal)
	}

	t.Run("InvalidAmount", func(t *testing.T) {
		_, err := run(t, svc, nil, "salary-upsert", "--employee", emp.ID, "--year", "2024", "--month", "4", "--gross", "lots")
		var ve *core.ValidationError
		if !errors.As(err, &ve) || ve.Message != "Montant invalide" {
			t.Errorf("expected Montant invalide, got %v", err)
		}
	})

	t.Run("InvalidMonth", func(t *testing.T) {
		_, err := run(t, svc, nil, "salary-upsert", "--employee", emp.ID, "--year", "2024", "--month", "xx")
		var ve *core.ValidationError
		if !errors.As(err, &ve) || ve.Message != "Mois invalide" {
			t.Errorf("expected Mois invalide, got %v", err)
		}
	})
}

func TestListingCommands(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	sup, err := svc.CreateSupplier(ctx, "Swisscom")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateBill(ctx, app.CreateBillRequest{IssueDate: "2024-02-01", SupplierID: sup.ID, TTC: "108"}); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, svc, nil, "bills", "--year", "2024", "--q", "swiss")
	if err != nil {
		t.Fatalf("bills: %v", err)
	}
	var bills app.BillsResult
	if err := json.Unmarshal([]byte(out), &bills); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if bills.Listing.Count != 1 || bills.Listing.TotalVatCents != 809 {
		t.Errorf("listing = %+v", bills.Listing)
	}

	out, err = run(t, svc, nil, "--format", "table", "dashboard", "--year", "2024")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if !strings.Contains(out, "DASHBOARD 2024") || !strings.Contains(out, "CHF 108.00") {
		t.Errorf("dashboard table:\n%s", out)
	}

	if _, err := run(t, svc, nil, "--format", "xml", "expenses"); err == nil {
		t.Error("expected an error for unknown format")
	}
}

func TestMigrateCommand(t *testing.T) {
	svc := newService()
	if _, err := run(t, svc, nil, "migrate"); err == nil {
		t.Error("expected error without a migrate func")
	}

	called := false
	out, err := run(t, svc, func(context.Context) error { called = true; return nil }, "migrate")
	if err != nil || !called || !strings.Contains(out, "Migrations applied") {
		t.Errorf("migrate: called=%v out=%q err=%v", called, out, err)
	}
}
