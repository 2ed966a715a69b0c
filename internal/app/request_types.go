package app

// ListQuery holds raw listing parameters as received from a query string or
// CLI flags. Parsing rules live in parseYear, parseSort and the status resolvers.
type ListQuery struct {
	Year   string `schema:"year"`
	Q      string `schema:"q"`
	Status string `schema:"status"`
	Sort   string `schema:"sort"`
}

// CreateBillRequest is the input for recording a purchase bill.
// Amounts are kept as entered ("1'080,00"); the core parses them.
type CreateBillRequest struct {
	IssueDate  string `schema:"issueDate" json:"issueDate"`
	DueDate    string `schema:"dueDate" json:"dueDate"`
	SupplierID string `schema:"supplierId" json:"supplierId"`
	Number     string `schema:"number" json:"number"`
	Sector     string `schema:"sector" json:"sector"`
	Category   string `schema:"category" json:"category"`
	Notes      string `schema:"notes" json:"notes"`
	TTC        string `schema:"ttc" json:"ttc"`
	VAT        string `schema:"vat" json:"vat"`
	Status     string `schema:"status" json:"status"`
}

// CreateInvoiceRequest is the input for recording a sales invoice.
type CreateInvoiceRequest struct {
	ClientID  string `schema:"clientId" json:"clientId"`
	Number    string `schema:"number" json:"number"`
	IssueDate string `schema:"issueDate" json:"issueDate"`
	DueDate   string `schema:"dueDate" json:"dueDate"`
	TTC       string `schema:"ttc" json:"ttc"`
	VAT       string `schema:"vat" json:"vat"`
	Status    string `schema:"status" json:"status"`
}

// CreateExpenseRequest is the input for recording an expense.
type CreateExpenseRequest struct {
	Date  string `schema:"date" json:"date"`
	TTC   string `schema:"ttc" json:"ttc"`
	VAT   string `schema:"vat" json:"vat"`
	Notes string `schema:"notes" json:"notes"`
}

// CreateEmployeeRequest is the input for creating an employee.
type CreateEmployeeRequest struct {
	Name string `schema:"name" json:"name"`
	Type string `schema:"type" json:"type"`
}

// UpsertSalaryRequest is the input for the monthly salary upsert.
type UpsertSalaryRequest struct {
	EmployeeID   string
	Year         int
	Month        int
	GrossCents   int64
	ChargesCents int64
	NetCents     int64
}
