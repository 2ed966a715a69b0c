package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"fiduciary-books/internal/cache"
	"fiduciary-books/internal/core"
	"fiduciary-books/internal/logging"
	"fiduciary-books/internal/metrics"
)

// Options carries the optional collaborators of the application service.
// Every field may be left zero.
type Options struct {
	Cache          *cache.Cache
	Metrics        *metrics.Metrics
	Logger         *log.Logger
	Now            func() time.Time
	DefaultVATRate string
}

type appService struct {
	store     core.Store
	bills     core.BillService
	invoices  core.InvoiceService
	expenses  core.ExpenseService
	parties   core.PartyService
	salaries  core.SalaryService
	dashboard core.DashboardService

	cache      *cache.Cache
	metrics    *metrics.Metrics
	logger     *log.Logger
	now        func() time.Time
	defaultVAT string
}

// NewAppService wires the core services over store and returns the facade.
func NewAppService(store core.Store, opts Options) ApplicationService {
	if opts.Cache == nil {
		opts.Cache = cache.Disabled()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if strings.TrimSpace(opts.DefaultVATRate) == "" {
		opts.DefaultVATRate = core.DefaultVATRate
	}

	views := opts.Cache
	return &appService{
		store:      store,
		bills:      core.NewBillService(store, views),
		invoices:   core.NewInvoiceService(store, views),
		expenses:   core.NewExpenseService(store, views),
		parties:    core.NewPartyService(store, views),
		salaries:   core.NewSalaryService(store, views),
		dashboard:  core.NewDashboardService(store, opts.Now),
		cache:      opts.Cache,
		metrics:    opts.Metrics,
		logger:     opts.Logger.WithPrefix("app"),
		now:        opts.Now,
		defaultVAT: opts.DefaultVATRate,
	}
}

func (s *appService) Health(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("datastore unreachable: %w", err)
	}
	return nil
}

func (s *appService) GetDashboard(ctx context.Context, year string) (*DashboardResult, error) {
	y := parseYear(year, s.now())
	variant := strconv.Itoa(y)

	var cached core.Dashboard
	if s.cache.GetJSON(ctx, core.ViewDashboard, variant, &cached) {
		s.metrics.CacheLookup(string(core.ViewDashboard), true)
		return &DashboardResult{Dashboard: &cached, Cached: true}, nil
	}
	s.metrics.CacheLookup(string(core.ViewDashboard), false)

	d, err := s.dashboard.Dashboard(ctx, y)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, core.ViewDashboard, variant, d)
	return &DashboardResult{Dashboard: d}, nil
}

func (s *appService) ListBills(ctx context.Context, q ListQuery) (*BillsResult, error) {
	f := core.BillFilter{
		Window: core.NewYearWindow(parseYear(q.Year, s.now())),
		Query:  strings.TrimSpace(q.Q),
		Status: billStatusFilter(q.Status),
		Sort:   core.ParseSortOrder(q.Sort),
		Limit:  core.ListingLimit,
	}
	result := &BillsResult{
		Year:   f.Window.Year,
		Query:  f.Query,
		Status: string(f.Status),
		Sort:   f.Sort,
	}
	variant := fmt.Sprintf("%d|%q|%s|%s", f.Window.Year, f.Query, f.Status, f.Sort)

	var cached core.BillListing
	if s.cache.GetJSON(ctx, core.ViewBills, variant, &cached) {
		s.metrics.CacheLookup(string(core.ViewBills), true)
		result.Listing, result.Cached = &cached, true
		return result, nil
	}
	s.metrics.CacheLookup(string(core.ViewBills), false)

	listing, err := s.bills.ListBills(ctx, f)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, core.ViewBills, variant, listing)
	result.Listing = listing
	return result, nil
}

func (s *appService) CreateBill(ctx context.Context, req CreateBillRequest) (*core.Bill, error) {
	b, err := s.bills.CreateBill(ctx, core.BillInput{
		IssueDate:  req.IssueDate,
		DueDate:    req.DueDate,
		SupplierID: req.SupplierID,
		Number:     req.Number,
		Sector:     req.Sector,
		Category:   req.Category,
		Notes:      req.Notes,
		TTC:        req.TTC,
		VAT:        s.vatOrDefault(req.VAT),
		Status:     req.Status,
	})
	s.record("bill", "create", err)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("bill created", "id", b.ID, "gross", b.AmountGrossCents, "vat", b.AmountVatCents)
	return b, nil
}

func (s *appService) UpdateBillStatus(ctx context.Context, id, status string) (*MutationResult, error) {
	st, defaulted := core.ResolveBillStatus(status)
	res, err := s.bills.UpdateBillStatus(ctx, id, st)
	s.recordMutation("bill", "status", res, err)
	if err != nil {
		return nil, err
	}
	if defaulted && res.Applied() {
		s.logger.Debug("bill status defaulted", "id", res.ID, "requested", status, "applied", st)
	}
	return &MutationResult{MutationResult: res, StatusDefaulted: defaulted && res.Applied()}, nil
}

func (s *appService) DeleteBill(ctx context.Context, id string) (*MutationResult, error) {
	res, err := s.bills.DeleteBill(ctx, id)
	s.recordMutation("bill", "delete", res, err)
	if err != nil {
		return nil, err
	}
	return &MutationResult{MutationResult: res}, nil
}

func (s *appService) ListInvoices(ctx context.Context, q ListQuery) (*InvoicesResult, error) {
	f := core.InvoiceFilter{
		Window: core.NewYearWindow(parseYear(q.Year, s.now())),
		Query:  strings.TrimSpace(q.Q),
		Status: invoiceStatusFilter(q.Status),
		Sort:   core.ParseSortOrder(q.Sort),
		Limit:  core.ListingLimit,
	}
	listing, err := s.invoices.ListInvoices(ctx, f)
	if err != nil {
		return nil, err
	}
	return &InvoicesResult{
		Year:    f.Window.Year,
		Query:   f.Query,
		Status:  string(f.Status),
		Sort:    f.Sort,
		Listing: listing,
	}, nil
}

func (s *appService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*core.Invoice, error) {
	inv, err := s.invoices.CreateInvoice(ctx, core.InvoiceInput{
		ClientID:  req.ClientID,
		Number:    req.Number,
		IssueDate: req.IssueDate,
		DueDate:   req.DueDate,
		TTC:       req.TTC,
		VAT:       s.vatOrDefault(req.VAT),
		Status:    req.Status,
	})
	s.record("invoice", "create", err)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("invoice created", "id", inv.ID, "number", inv.Number)
	return inv, nil
}

func (s *appService) UpdateInvoiceStatus(ctx context.Context, id, status string) (*MutationResult, error) {
	st, defaulted := core.ResolveInvoiceStatus(status)
	res, err := s.invoices.UpdateInvoiceStatus(ctx, id, st)
	s.recordMutation("invoice", "status", res, err)
	if err != nil {
		return nil, err
	}
	return &MutationResult{MutationResult: res, StatusDefaulted: defaulted && res.Applied()}, nil
}

func (s *appService) ListExpenses(ctx context.Context, year string) (*core.ExpenseListing, error) {
	return s.expenses.ListExpenses(ctx, parseYear(year, s.now()))
}

func (s *appService) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*core.Expense, error) {
	e, err := s.expenses.CreateExpense(ctx, core.ExpenseInput{
		Date:  req.Date,
		TTC:   req.TTC,
		VAT:   s.vatOrDefault(req.VAT),
		Notes: req.Notes,
	})
	s.record("expense", "create", err)
	return e, err
}

func (s *appService) ListClients(ctx context.Context) ([]core.Client, error) {
	return s.parties.ListClients(ctx)
}

func (s *appService) CreateClient(ctx context.Context, name string) (*MutationResult, error) {
	res, err := s.parties.CreateClient(ctx, name)
	s.recordMutation("client", "create", res, err)
	if err != nil {
		return nil, err
	}
	return &MutationResult{MutationResult: res}, nil
}

func (s *appService) ListSuppliers(ctx context.Context, q string) ([]core.Supplier, error) {
	return s.parties.ListSuppliers(ctx, q)
}

func (s *appService) CreateSupplier(ctx context.Context, name string) (*MutationResult, error) {
	res, err := s.parties.CreateSupplier(ctx, name)
	s.recordMutation("supplier", "create", res, err)
	if err != nil {
		return nil, err
	}
	return &MutationResult{MutationResult: res}, nil
}

func (s *appService) ListEmployees(ctx context.Context) ([]core.Employee, error) {
	return s.parties.ListEmployees(ctx)
}

func (s *appService) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*core.Employee, error) {
	e, err := s.parties.CreateEmployee(ctx, core.EmployeeInput{Name: req.Name, Type: req.Type})
	s.record("employee", "create", err)
	return e, err
}

func (s *appService) ListSalaries(ctx context.Context) ([]core.Salary, error) {
	return s.salaries.ListSalaries(ctx)
}

func (s *appService) UpsertSalary(ctx context.Context, req UpsertSalaryRequest) (*core.Salary, error) {
	sal, err := s.salaries.UpsertSalary(ctx, core.SalaryInput{
		EmployeeID:   req.EmployeeID,
		Year:         req.Year,
		Month:        req.Month,
		GrossCents:   req.GrossCents,
		ChargesCents: req.ChargesCents,
		NetCents:     req.NetCents,
	})
	s.record("salary", "upsert", err)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("salary upserted", "employee", sal.EmployeeID, "month", core.ISODate(sal.Month))
	return sal, nil
}

func (s *appService) vatOrDefault(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return s.defaultVAT
	}
	return raw
}

func (s *appService) record(entity, action string, err error) {
	s.recordMutation(entity, action, core.MutationResult{Outcome: core.OutcomeApplied}, err)
}

func (s *appService) recordMutation(entity, action string, res core.MutationResult, err error) {
	outcome := string(res.Outcome)
	switch {
	case core.IsValidation(err):
		outcome = "invalid"
	case err != nil:
		outcome = "error"
		s.logger.Error("mutation failed", "entity", entity, "action", action, "err", err)
	}
	s.metrics.Mutation(entity, action, outcome)
}
