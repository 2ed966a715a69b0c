package core_test

import (
	"testing"

	"fiduciary-books/internal/core"
)

func TestResolveBillStatus(t *testing.T) {
	tests := []struct {
		in        string
		want      core.BillStatus
		defaulted bool
	}{
		{"PAID", core.BillPaid, false},
		{" CANCELLED ", core.BillCancelled, false},
		{"OPEN", core.BillOpen, false},
		{"", core.BillOpen, true},
		{"paid", core.BillOpen, true},
		{"CANCELED", core.BillOpen, true},
	}
	for _, tt := range tests {
		got, defaulted := core.ResolveBillStatus(tt.in)
		if got != tt.want || defaulted != tt.defaulted {
			t.Errorf("ResolveBillStatus(%q) = (%s, %v), want (%s, %v)", tt.in, got, defaulted, tt.want, tt.defaulted)
		}
	}
}

func TestResolveInvoiceStatus(t *testing.T) {
	if s, d := core.ResolveInvoiceStatus("PAID"); s != core.InvoicePaid || d {
		t.Errorf("got (%s, %v)", s, d)
	}
	if s, d := core.ResolveInvoiceStatus("bogus"); s != core.InvoiceOpen || !d {
		t.Errorf("got (%s, %v)", s, d)
	}
}

func TestParseEmployeeType(t *testing.T) {
	if got := core.ParseEmployeeType("CADRE"); got != core.EmployeeExecutive {
		t.Errorf("CADRE -> %s", got)
	}
	for _, in := range []string{"", "cadre", " CADRE", "EMPLOYE", "MANAGER"} {
		if got := core.ParseEmployeeType(in); got != core.EmployeeRegular {
			t.Errorf("ParseEmployeeType(%q) = %s, want EMPLOYE", in, got)
		}
	}
}
