// Package memstore is an in-memory core.Store. It backs the "memory" store
// driver and the service tests; it has the same filtering, ordering and
// uniqueness behaviour as the PostgreSQL store.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"fiduciary-books/internal/core"
)

// Store holds every entity in maps guarded by one mutex.
type Store struct {
	mu        sync.RWMutex
	clients   map[string]core.Client
	suppliers map[string]core.Supplier
	employees map[string]core.Employee
	invoices  map[string]core.Invoice
	bills     map[string]core.Bill
	expenses  map[string]core.Expense
	salaries  map[string]core.Salary
}

var _ core.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		clients:   make(map[string]core.Client),
		suppliers: make(map[string]core.Supplier),
		employees: make(map[string]core.Employee),
		invoices:  make(map[string]core.Invoice),
		bills:     make(map[string]core.Bill),
		expenses:  make(map[string]core.Expense),
		salaries:  make(map[string]core.Salary),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// --- parties ---

func (s *Store) InsertClient(_ context.Context, c *core.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.ID] = *c
	return nil
}

func (s *Store) FindClients(_ context.Context) ([]core.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) InsertSupplier(_ context.Context, sup *core.Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers[sup.ID] = *sup
	return nil
}

func (s *Store) FindSuppliers(_ context.Context, nameContains string) ([]core.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Supplier, 0, len(s.suppliers))
	for _, sup := range s.suppliers {
		if containsFold(sup.Name, nameContains) {
			out = append(out, sup)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) InsertEmployee(_ context.Context, e *core.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = *e
	return nil
}

func (s *Store) FindEmployees(_ context.Context) ([]core.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- bills ---

func (s *Store) InsertBill(_ context.Context, b *core.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.suppliers[b.SupplierID]; !ok {
		return core.ErrNotFound
	}
	row := *b
	row.Supplier = nil
	s.bills[b.ID] = row
	return nil
}

func (s *Store) SetBillStatus(_ context.Context, id string, status core.BillStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bills[id]
	if !ok {
		return core.ErrNotFound
	}
	b.Status = status
	s.bills[id] = b
	return nil
}

func (s *Store) RemoveBill(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bills[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.bills, id)
	return nil
}

func (s *Store) FindBills(_ context.Context, f core.BillFilter) ([]core.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Bill
	for _, b := range s.bills {
		if !f.Window.Contains(b.IssueDate) {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		sup := s.suppliers[b.SupplierID]
		if f.Query != "" && !containsFold(deref(b.Notes), f.Query) && !containsFold(sup.Name, f.Query) {
			continue
		}
		b.Supplier = &sup
		out = append(out, b)
	}
	sortByDate(out, f.Sort, func(b core.Bill) (time.Time, string) { return b.IssueDate, b.ID })
	return limit(out, f.Limit), nil
}

// --- invoices ---

func (s *Store) InsertInvoice(_ context.Context, inv *core.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[inv.ClientID]; !ok {
		return core.ErrNotFound
	}
	row := *inv
	row.Client = nil
	s.invoices[inv.ID] = row
	return nil
}

func (s *Store) SetInvoiceStatus(_ context.Context, id string, status core.InvoiceStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[id]
	if !ok {
		return core.ErrNotFound
	}
	inv.Status = status
	s.invoices[id] = inv
	return nil
}

func (s *Store) FindInvoices(_ context.Context, f core.InvoiceFilter) ([]core.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Invoice
	for _, inv := range s.invoices {
		if !f.Window.Contains(inv.IssueDate) {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		c := s.clients[inv.ClientID]
		if f.Query != "" && !containsFold(inv.Number, f.Query) && !containsFold(c.Name, f.Query) {
			continue
		}
		inv.Client = &c
		out = append(out, inv)
	}
	sortByDate(out, f.Sort, func(inv core.Invoice) (time.Time, string) { return inv.IssueDate, inv.ID })
	return limit(out, f.Limit), nil
}

// --- expenses ---

func (s *Store) InsertExpense(_ context.Context, e *core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses[e.ID] = *e
	return nil
}

func (s *Store) FindExpenses(_ context.Context, w core.YearWindow, n int) ([]core.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Expense
	for _, e := range s.expenses {
		if w.Contains(e.Date) {
			out = append(out, e)
		}
	}
	sortByDate(out, core.SortDateDesc, func(e core.Expense) (time.Time, string) { return e.Date, e.ID })
	return limit(out, n), nil
}

// --- salaries ---

func (s *Store) UpsertSalary(_ context.Context, sal *core.Salary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	emp, ok := s.employees[sal.EmployeeID]
	if !ok {
		return core.ErrNotFound
	}
	for id, existing := range s.salaries {
		if existing.EmployeeID == sal.EmployeeID && existing.Month.Equal(sal.Month) {
			sal.ID = id
			sal.CreatedAt = existing.CreatedAt
			break
		}
	}
	row := *sal
	row.Employee = nil
	s.salaries[sal.ID] = row
	sal.Employee = &emp
	return nil
}

func (s *Store) FindSalaries(_ context.Context) ([]core.Salary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Salary, 0, len(s.salaries))
	for _, sal := range s.salaries {
		if emp, ok := s.employees[sal.EmployeeID]; ok {
			sal.Employee = &emp
		}
		out = append(out, sal)
	}
	sortByDate(out, core.SortDateDesc, func(sal core.Salary) (time.Time, string) { return sal.Month, sal.EmployeeID })
	return out, nil
}

// --- reports ---

func (s *Store) SumInvoices(_ context.Context, f core.InvoiceSumFilter) (core.Totals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var t core.Totals
	for _, inv := range s.invoices {
		if !f.Window.Contains(inv.IssueDate) || inv.Status != f.Status {
			continue
		}
		if f.DueBefore != nil && (inv.DueDate == nil || !inv.DueDate.Before(*f.DueBefore)) {
			continue
		}
		t.GrossCents += inv.AmountGrossCents
		t.VatCents += inv.AmountVatCents
		t.Count++
	}
	return t, nil
}

func (s *Store) SumExpenses(_ context.Context, w core.YearWindow) (core.Totals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var t core.Totals
	for _, e := range s.expenses {
		if w.Contains(e.Date) {
			t.GrossCents += e.AmountGrossCents
			t.VatCents += e.AmountVatCents
			t.Count++
		}
	}
	return t, nil
}

func (s *Store) SumBills(_ context.Context, w core.YearWindow, exclude core.BillStatus) (core.Totals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var t core.Totals
	for _, b := range s.bills {
		if w.Contains(b.IssueDate) && b.Status != exclude {
			t.GrossCents += b.AmountGrossCents
			t.VatCents += b.AmountVatCents
			t.Count++
		}
	}
	return t, nil
}

func (s *Store) OverdueInvoices(_ context.Context, w core.YearWindow, before time.Time, n int) ([]core.OverdueInvoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var open []core.Invoice
	for _, inv := range s.invoices {
		if w.Contains(inv.IssueDate) && inv.Overdue(before) {
			open = append(open, inv)
		}
	}
	sortByDate(open, core.SortDateAsc, func(inv core.Invoice) (time.Time, string) { return *inv.DueDate, inv.ID })
	open = limit(open, n)

	out := make([]core.OverdueInvoice, 0, len(open))
	for _, inv := range open {
		out = append(out, core.OverdueInvoice{
			ID:               inv.ID,
			Number:           inv.Number,
			ClientID:         inv.ClientID,
			ClientName:       s.clients[inv.ClientID].Name,
			DueDate:          *inv.DueDate,
			AmountGrossCents: inv.AmountGrossCents,
		})
	}
	return out, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// sortByDate orders rows by date, breaking ties by id so results are stable.
func sortByDate[T any](rows []T, order core.SortOrder, key func(T) (time.Time, string)) {
	sort.Slice(rows, func(i, j int) bool {
		ti, idi := key(rows[i])
		tj, idj := key(rows[j])
		if !ti.Equal(tj) {
			if order == core.SortDateAsc {
				return ti.Before(tj)
			}
			return ti.After(tj)
		}
		return idi < idj
	})
}

func limit[T any](rows []T, n int) []T {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}
