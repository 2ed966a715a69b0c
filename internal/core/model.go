package core

import "time"

// Client is a customer of the office. Invoices reference clients.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Supplier is a vendor whose bills the office records.
type Supplier struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Employee is a salaried person; salaries reference employees.
type Employee struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      EmployeeType `json:"type"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Invoice is a sales invoice. Only gross and VAT are stored; net is derived.
type Invoice struct {
	ID               string        `json:"id"`
	Number           string        `json:"number"`
	ClientID         string        `json:"clientId"`
	Client           *Client       `json:"client,omitempty"`
	IssueDate        time.Time     `json:"issueDate"`
	DueDate          *time.Time    `json:"dueDate"`
	Status           InvoiceStatus `json:"status"`
	AmountGrossCents int64         `json:"amountGrossCents"`
	AmountVatCents   int64         `json:"amountVatCents"`
	CreatedAt        time.Time     `json:"createdAt"`
}

// AmountNetCents returns gross minus VAT.
func (i Invoice) AmountNetCents() int64 {
	return i.AmountGrossCents - i.AmountVatCents
}

// Overdue reports whether the invoice is still open and past its due date at now.
func (i Invoice) Overdue(now time.Time) bool {
	return i.Status == InvoiceOpen && i.DueDate != nil && i.DueDate.Before(now)
}

// Bill is a purchase invoice received from a supplier.
// AmountGrossCents == AmountNetCents + AmountVatCents holds from creation.
type Bill struct {
	ID               string     `json:"id"`
	IssueDate        time.Time  `json:"issueDate"`
	DueDate          *time.Time `json:"dueDate"`
	SupplierID       string     `json:"supplierId"`
	Supplier         *Supplier  `json:"supplier,omitempty"`
	Number           *string    `json:"number"`
	Sector           *string    `json:"sector"`
	Category         *string    `json:"category"`
	Notes            *string    `json:"notes"`
	Status           BillStatus `json:"status"`
	AmountGrossCents int64      `json:"amountGrossCents"`
	AmountNetCents   int64      `json:"amountNetCents"`
	AmountVatCents   int64      `json:"amountVatCents"`
	VatRateBp        int64      `json:"vatRateBp"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// Expense is a business expense paid directly (not through a supplier bill).
type Expense struct {
	ID               string    `json:"id"`
	Date             time.Time `json:"date"`
	Notes            *string   `json:"notes"`
	AmountGrossCents int64     `json:"amountGrossCents"`
	AmountVatCents   int64     `json:"amountVatCents"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Salary is one month of payroll for an employee. Month is always the first
// day of the month at 00:00 UTC; (EmployeeID, Month) is unique.
type Salary struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	Employee     *Employee `json:"employee,omitempty"`
	Month        time.Time `json:"month"`
	GrossCents   int64     `json:"grossCents"`
	ChargesCents int64     `json:"chargesCents"`
	NetCents     int64     `json:"netCents"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Totals is the result of an aggregate over a set of monetary rows.
type Totals struct {
	GrossCents int64 `json:"grossCents"`
	VatCents   int64 `json:"vatCents"`
	Count      int64 `json:"count"`
}

// OverdueInvoice is the projection shown in the dashboard's overdue list.
type OverdueInvoice struct {
	ID               string    `json:"id"`
	Number           string    `json:"number"`
	ClientID         string    `json:"clientId"`
	ClientName       string    `json:"clientName"`
	DueDate          time.Time `json:"dueDate"`
	AmountGrossCents int64     `json:"amountGrossCents"`
}

// Dashboard is the yearly fiduciary summary.
type Dashboard struct {
	Year                 int              `json:"year"`
	Open                 Totals           `json:"open"`
	Overdue              Totals           `json:"overdue"`
	Expenses             Totals           `json:"expenses"`
	Purchases            Totals           `json:"purchases"`
	VATCollectedCents    int64            `json:"vatCollectedCents"`
	VATPaidExpensesCents int64            `json:"vatPaidExpensesCents"`
	VATPaidBillsCents    int64            `json:"vatPaidBillsCents"`
	VATPaidCents         int64            `json:"vatPaidCents"`
	VATBalanceCents      int64            `json:"vatBalanceCents"`
	OverdueInvoices      []OverdueInvoice `json:"overdueInvoices"`
	GeneratedAt          time.Time        `json:"generatedAt"`
}

// BillListing is a filtered page of bills with column totals.
type BillListing struct {
	Bills           []Bill `json:"bills"`
	TotalGrossCents int64  `json:"totalGrossCents"`
	TotalVatCents   int64  `json:"totalVatCents"`
	Count           int    `json:"count"`
}

// InvoiceListing is a filtered page of invoices with column totals.
type InvoiceListing struct {
	Invoices        []Invoice `json:"invoices"`
	TotalGrossCents int64     `json:"totalGrossCents"`
	TotalVatCents   int64     `json:"totalVatCents"`
	Count           int       `json:"count"`
}

// ExpenseListing is one year of expenses with totals.
type ExpenseListing struct {
	Year            int       `json:"year"`
	Expenses        []Expense `json:"expenses"`
	TotalGrossCents int64     `json:"totalGrossCents"`
	TotalVatCents   int64     `json:"totalVatCents"`
	Count           int       `json:"count"`
}
