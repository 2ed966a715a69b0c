package core

import "strings"

// BillStatus is the lifecycle state of a purchase bill.
type BillStatus string

const (
	BillOpen      BillStatus = "OPEN"
	BillPaid      BillStatus = "PAID"
	BillCancelled BillStatus = "CANCELLED"
)

// BillStatuses lists every valid bill status in display order.
var BillStatuses = []BillStatus{BillOpen, BillPaid, BillCancelled}

// Valid reports whether s is a member of the bill status enum.
func (s BillStatus) Valid() bool {
	switch s {
	case BillOpen, BillPaid, BillCancelled:
		return true
	}
	return false
}

// ResolveBillStatus trims raw and maps it onto the enum. Empty or unknown
// input resolves to BillOpen with defaulted set to true.
func ResolveBillStatus(raw string) (status BillStatus, defaulted bool) {
	s := BillStatus(strings.TrimSpace(raw))
	if !s.Valid() {
		return BillOpen, true
	}
	return s, false
}

// ParseBillStatus is ResolveBillStatus without the fallback flag.
func ParseBillStatus(raw string) BillStatus {
	s, _ := ResolveBillStatus(raw)
	return s
}

// InvoiceStatus is the lifecycle state of a sales invoice.
type InvoiceStatus string

const (
	InvoiceOpen      InvoiceStatus = "OPEN"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// InvoiceStatuses lists every valid invoice status in display order.
var InvoiceStatuses = []InvoiceStatus{InvoiceOpen, InvoicePaid, InvoiceCancelled}

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceOpen, InvoicePaid, InvoiceCancelled:
		return true
	}
	return false
}

// ResolveInvoiceStatus follows the same permissive rules as ResolveBillStatus.
func ResolveInvoiceStatus(raw string) (status InvoiceStatus, defaulted bool) {
	s := InvoiceStatus(strings.TrimSpace(raw))
	if !s.Valid() {
		return InvoiceOpen, true
	}
	return s, false
}

func ParseInvoiceStatus(raw string) InvoiceStatus {
	s, _ := ResolveInvoiceStatus(raw)
	return s
}

// EmployeeType distinguishes executives (CADRE) from regular staff (EMPLOYE).
type EmployeeType string

const (
	EmployeeRegular   EmployeeType = "EMPLOYE"
	EmployeeExecutive EmployeeType = "CADRE"
)

// ParseEmployeeType returns EmployeeExecutive only for the exact value "CADRE".
func ParseEmployeeType(raw string) EmployeeType {
	if raw == string(EmployeeExecutive) {
		return EmployeeExecutive
	}
	return EmployeeRegular
}
