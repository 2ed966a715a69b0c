package cli

import (
	"fmt"
	"io"
	"strings"

	"fiduciary-books/internal/app"
	"fiduciary-books/internal/core"
)

func rule(w io.Writer, ch string, n int) {
	fmt.Fprintln(w, strings.Repeat(ch, n))
}

func printDashboard(w io.Writer, res *app.DashboardResult) {
	d := res.Dashboard
	fmt.Fprintln(w)
	rule(w, "=", 62)
	fmt.Fprintf(w, "  DASHBOARD %d\n", d.Year)
	rule(w, "=", 62)
	fmt.Fprintf(w, "  %-28s %15s %6d\n", "Open invoices", core.FormatCHF(d.Open.GrossCents), d.Open.Count)
	fmt.Fprintf(w, "  %-28s %15s %6d\n", "Overdue", core.FormatCHF(d.Overdue.GrossCents), d.Overdue.Count)
	fmt.Fprintf(w, "  %-28s %15s %6d\n", "Expenses", core.FormatCHF(d.Expenses.GrossCents), d.Expenses.Count)
	fmt.Fprintf(w, "  %-28s %15s %6d\n", "Purchases", core.FormatCHF(d.Purchases.GrossCents), d.Purchases.Count)
	rule(w, "-", 62)
	fmt.Fprintf(w, "  %-28s %15s\n", "VAT collected", core.FormatCHF(d.VATCollectedCents))
	fmt.Fprintf(w, "  %-28s %15s\n", "VAT paid", core.FormatCHF(d.VATPaidCents))
	fmt.Fprintf(w, "  %-28s %15s\n", "VAT balance", core.FormatCHF(d.VATBalanceCents))
	if len(d.OverdueInvoices) > 0 {
		rule(w, "-", 62)
		for _, o := range d.OverdueInvoices {
			fmt.Fprintf(w, "  %-10s %-20s %s %15s\n", o.Number, o.ClientName, core.ISODate(o.DueDate), core.FormatCHF(o.AmountGrossCents))
		}
	}
	rule(w, "=", 62)
}

func printBills(w io.Writer, res *app.BillsResult) {
	fmt.Fprintln(w)
	rule(w, "=", 80)
	fmt.Fprintf(w, "  BILLS %d\n", res.Year)
	rule(w, "=", 80)
	if len(res.Listing.Bills) == 0 {
		fmt.Fprintln(w, "  No bills found.")
		rule(w, "=", 80)
		return
	}
	fmt.Fprintf(w, "  %-10s %-24s %-10s %15s %12s\n", "DATE", "SUPPLIER", "STATUS", "TTC", "VAT")
	rule(w, "-", 80)
	for _, b := range res.Listing.Bills {
		supplier := ""
		if b.Supplier != nil {
			supplier = b.Supplier.Name
		}
		fmt.Fprintf(w, "  %-10s %-24s %-10s %15s %12s\n",
			core.ISODate(b.IssueDate), supplier, b.Status, core.FormatCHF(b.AmountGrossCents), core.FormatCHF(b.AmountVatCents))
	}
	rule(w, "-", 80)
	fmt.Fprintf(w, "  %-46s %15s %12s\n", fmt.Sprintf("%d bill(s)", res.Listing.Count),
		core.FormatCHF(res.Listing.TotalGrossCents), core.FormatCHF(res.Listing.TotalVatCents))
	rule(w, "=", 80)
}

func printInvoices(w io.Writer, res *app.InvoicesResult) {
	fmt.Fprintln(w)
	rule(w, "=", 80)
	fmt.Fprintf(w, "  INVOICES %d\n", res.Year)
	rule(w, "=", 80)
	if len(res.Listing.Invoices) == 0 {
		fmt.Fprintln(w, "  No invoices found.")
		rule(w, "=", 80)
		return
	}
	fmt.Fprintf(w, "  %-10s %-10s %-20s %-10s %15s\n", "NUMBER", "DATE", "CLIENT", "STATUS", "TTC")
	rule(w, "-", 80)
	for _, i := range res.Listing.Invoices {
		client := ""
		if i.Client != nil {
			client = i.Client.Name
		}
		fmt.Fprintf(w, "  %-10s %-10s %-20s %-10s %15s\n",
			i.Number, core.ISODate(i.IssueDate), client, i.Status, core.FormatCHF(i.AmountGrossCents))
	}
	rule(w, "=", 80)
}

func printExpenses(w io.Writer, l *core.ExpenseListing) {
	fmt.Fprintln(w)
	rule(w, "=", 62)
	fmt.Fprintf(w, "  EXPENSES %d\n", l.Year)
	rule(w, "=", 62)
	for _, e := range l.Expenses {
		notes := ""
		if e.Notes != nil {
			notes = *e.Notes
		}
		fmt.Fprintf(w, "  %-10s %-22s %15s %10s\n", core.ISODate(e.Date), notes, core.FormatCHF(e.AmountGrossCents), core.FormatCHF(e.AmountVatCents))
	}
	rule(w, "-", 62)
	fmt.Fprintf(w, "  %-33s %15s %10s\n", fmt.Sprintf("%d expense(s)", l.Count), core.FormatCHF(l.TotalGrossCents), core.FormatCHF(l.TotalVatCents))
	rule(w, "=", 62)
}

func printNames(w io.Writer, title string, names []string) {
	fmt.Fprintln(w)
	rule(w, "=", 40)
	fmt.Fprintf(w, "  %s\n", title)
	rule(w, "=", 40)
	if len(names) == 0 {
		fmt.Fprintln(w, "  None.")
	}
	for _, n := range names {
		fmt.Fprintf(w, "  %s\n", n)
	}
	rule(w, "=", 40)
}

func printMutation(w io.Writer, entity string, res *app.MutationResult) {
	if !res.Applied() {
		fmt.Fprintf(w, "No %s created (blank name).\n", entity)
		return
	}
	fmt.Fprintf(w, "Created %s %s\n", entity, res.ID)
}

func salaryRow(s *core.Salary) []core.Salary {
	return []core.Salary{*s}
}

func printSalaries(w io.Writer, salaries []core.Salary) {
	fmt.Fprintln(w)
	rule(w, "=", 72)
	fmt.Fprintf(w, "  %-8s %-20s %12s %12s %12s\n", "MONTH", "EMPLOYEE", "GROSS", "CHARGES", "NET")
	rule(w, "-", 72)
	for _, s := range salaries {
		name := s.EmployeeID
		if s.Employee != nil {
			name = s.Employee.Name
		}
		fmt.Fprintf(w, "  %-8s %-20s %12s %12s %12s\n", s.Month.UTC().Format("2006-01"), name,
			core.FormatCHF(s.GrossCents), core.FormatCHF(s.ChargesCents), core.FormatCHF(s.NetCents))
	}
	rule(w, "=", 72)
}
