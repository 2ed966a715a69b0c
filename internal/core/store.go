package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	// ListingLimit caps the number of rows any listing returns.
	ListingLimit = 1000
	// OverdueListLimit is the size of the dashboard's overdue invoice list.
	OverdueListLimit = 8
)

// YearWindow is the half-open UTC interval [Jan 1 Year, Jan 1 Year+1).
type YearWindow struct {
	Year int
	From time.Time
	To   time.Time
}

// NewYearWindow returns the UTC window covering the calendar year.
func NewYearWindow(year int) YearWindow {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return YearWindow{Year: year, From: from, To: from.AddDate(1, 0, 0)}
}

// Contains reports whether t falls inside the window.
func (w YearWindow) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// SortOrder orders listings by their date column.
type SortOrder string

const (
	SortDateDesc SortOrder = "date_desc"
	SortDateAsc  SortOrder = "date_asc"
)

// ParseSortOrder returns SortDateAsc for "date_asc" and SortDateDesc otherwise.
func ParseSortOrder(raw string) SortOrder {
	if strings.TrimSpace(raw) == string(SortDateAsc) {
		return SortDateAsc
	}
	return SortDateDesc
}

// BillFilter selects bills by issue date window, free text and status.
// An empty Status matches every status.
type BillFilter struct {
	Window YearWindow
	Query  string
	Status BillStatus
	Sort   SortOrder
	Limit  int
}

// InvoiceFilter selects invoices by issue date window, free text and status.
type InvoiceFilter struct {
	Window YearWindow
	Query  string
	Status InvoiceStatus
	Sort   SortOrder
	Limit  int
}

// InvoiceSumFilter narrows an invoice aggregate. DueBefore, when set, keeps
// only invoices with a due date strictly before it.
type InvoiceSumFilter struct {
	Window    YearWindow
	Status    InvoiceStatus
	DueBefore *time.Time
}

func clampLimit(n int) int {
	if n <= 0 || n > ListingLimit {
		return ListingLimit
	}
	return n
}

// BillStore persists bills.
type BillStore interface {
	InsertBill(ctx context.Context, b *Bill) error
	// SetBillStatus returns ErrNotFound when no bill has the id.
	SetBillStatus(ctx context.Context, id string, status BillStatus) error
	// RemoveBill returns ErrNotFound when no bill has the id.
	RemoveBill(ctx context.Context, id string) error
	FindBills(ctx context.Context, f BillFilter) ([]Bill, error)
}

// InvoiceStore persists invoices.
type InvoiceStore interface {
	InsertInvoice(ctx context.Context, inv *Invoice) error
	SetInvoiceStatus(ctx context.Context, id string, status InvoiceStatus) error
	FindInvoices(ctx context.Context, f InvoiceFilter) ([]Invoice, error)
}

// ExpenseStore persists expenses.
type ExpenseStore interface {
	InsertExpense(ctx context.Context, e *Expense) error
	// FindExpenses returns expenses dated inside w, newest first.
	FindExpenses(ctx context.Context, w YearWindow, limit int) ([]Expense, error)
}

// PartyStore persists clients, suppliers and employees.
type PartyStore interface {
	InsertClient(ctx context.Context, c *Client) error
	FindClients(ctx context.Context) ([]Client, error)
	InsertSupplier(ctx context.Context, s *Supplier) error
	FindSuppliers(ctx context.Context, nameContains string) ([]Supplier, error)
	InsertEmployee(ctx context.Context, e *Employee) error
	FindEmployees(ctx context.Context) ([]Employee, error)
}

// SalaryStore persists salaries.
type SalaryStore interface {
	// UpsertSalary inserts or updates the row for (EmployeeID, Month) and fills
	// in ID, CreatedAt and Employee from the stored row.
	UpsertSalary(ctx context.Context, s *Salary) error
	FindSalaries(ctx context.Context) ([]Salary, error)
}

// ReportStore answers the dashboard aggregates. Sums over empty sets are zero.
type ReportStore interface {
	SumInvoices(ctx context.Context, f InvoiceSumFilter) (Totals, error)
	SumExpenses(ctx context.Context, w YearWindow) (Totals, error)
	// SumBills aggregates bills in w whose status differs from exclude.
	SumBills(ctx context.Context, w YearWindow, exclude BillStatus) (Totals, error)
	// OverdueInvoices lists OPEN invoices in w due before the given instant,
	// earliest due date first.
	OverdueInvoices(ctx context.Context, w YearWindow, before time.Time, limit int) ([]OverdueInvoice, error)
}

// Store is the full datastore contract implemented by internal/db and
// internal/memstore.
type Store interface {
	BillStore
	InvoiceStore
	ExpenseStore
	PartyStore
	SalaryStore
	ReportStore
	Ping(ctx context.Context) error
}

// ParseDate reads a form date. Plain YYYY-MM-DD dates are midnight UTC; full
// RFC 3339 timestamps are accepted and converted to UTC.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return t.UTC(), nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optionalText(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}
