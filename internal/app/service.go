package app

import (
	"context"

	"fiduciary-books/internal/core"
)

// ApplicationService is the single interface all UI adapters (CLI, Web) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println and no display logic of any kind.
type ApplicationService interface {
	// Health pings the datastore.
	Health(ctx context.Context) error

	// GetDashboard returns the yearly summary. An empty or invalid year means
	// the current year.
	GetDashboard(ctx context.Context, year string) (*DashboardResult, error)

	// ListBills returns bills filtered by year, free text, status and sort order.
	ListBills(ctx context.Context, q ListQuery) (*BillsResult, error)

	// CreateBill validates and records a purchase bill.
	CreateBill(ctx context.Context, req CreateBillRequest) (*core.Bill, error)

	// UpdateBillStatus sets the status of a bill. Unknown statuses resolve to OPEN;
	// a blank id is skipped.
	UpdateBillStatus(ctx context.Context, id, status string) (*MutationResult, error)

	// DeleteBill removes a bill. A blank id is skipped.
	DeleteBill(ctx context.Context, id string) (*MutationResult, error)

	// ListInvoices returns sales invoices filtered like ListBills.
	ListInvoices(ctx context.Context, q ListQuery) (*InvoicesResult, error)

	// CreateInvoice validates and records a sales invoice.
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*core.Invoice, error)

	// UpdateInvoiceStatus follows the same rules as UpdateBillStatus.
	UpdateInvoiceStatus(ctx context.Context, id, status string) (*MutationResult, error)

	// ListExpenses returns one year of expenses with totals.
	ListExpenses(ctx context.Context, year string) (*core.ExpenseListing, error)

	// CreateExpense validates and records an expense.
	CreateExpense(ctx context.Context, req CreateExpenseRequest) (*core.Expense, error)

	// ListClients returns every client ordered by name.
	ListClients(ctx context.Context) ([]core.Client, error)

	// CreateClient records a client. A blank name is skipped.
	CreateClient(ctx context.Context, name string) (*MutationResult, error)

	// ListSuppliers returns suppliers whose name contains q, ordered by name.
	ListSuppliers(ctx context.Context, q string) ([]core.Supplier, error)

	// CreateSupplier records a supplier. A blank name is skipped.
	CreateSupplier(ctx context.Context, name string) (*MutationResult, error)

	// ListEmployees returns every employee ordered by name.
	ListEmployees(ctx context.Context) ([]core.Employee, error)

	// CreateEmployee records an employee; the name is required.
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*core.Employee, error)

	// ListSalaries returns salaries, most recent month first.
	ListSalaries(ctx context.Context) ([]core.Salary, error)

	// UpsertSalary inserts or replaces the salary of an employee for a month.
	UpsertSalary(ctx context.Context, req UpsertSalaryRequest) (*core.Salary, error)
}
