package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BillInput holds the raw form fields of a new purchase bill.
type BillInput struct {
	IssueDate  string
	DueDate    string
	SupplierID string
	Number     string
	Sector     string
	Category   string
	Notes      string
	TTC        string // gross amount, e.g. "1'080.00"
	VAT        string // rate in percent; empty means DefaultVATRate
	Status     string // empty or unknown means OPEN
}

// BillService manages purchase bills.
type BillService interface {
	// CreateBill validates the form, splits the gross amount into net and VAT
	// and stores the bill.
	CreateBill(ctx context.Context, input BillInput) (*Bill, error)

	// UpdateBillStatus changes only the status. A blank id is skipped.
	UpdateBillStatus(ctx context.Context, id string, status BillStatus) (MutationResult, error)

	// DeleteBill removes a bill. A blank id is skipped.
	DeleteBill(ctx context.Context, id string) (MutationResult, error)

	// ListBills returns bills matching f with TTC and VAT totals.
	ListBills(ctx context.Context, f BillFilter) (*BillListing, error)
}

type billService struct {
	store BillStore
	views ViewRefresher
}

// NewBillService constructs a BillService over the given store. views may be nil.
func NewBillService(store BillStore, views ViewRefresher) BillService {
	return &billService{store: store, views: orNoop(views)}
}

func (s *billService) CreateBill(ctx context.Context, input BillInput) (*Bill, error) {
	if strings.TrimSpace(input.IssueDate) == "" {
		return nil, invalid("issueDate", "Date manquante")
	}
	supplierID := strings.TrimSpace(input.SupplierID)
	if supplierID == "" {
		return nil, invalid("supplierId", "Fournisseur manquant")
	}
	issueDate, err := ParseDate(input.IssueDate)
	if err != nil {
		return nil, invalid("issueDate", "Date invalide")
	}
	dueDate, err := parseOptionalDate(input.DueDate)
	if err != nil {
		return nil, invalid("dueDate", "Échéance invalide")
	}

	gross, vatRateBp, err := parseAmountAndRate(input.TTC, input.VAT)
	if err != nil {
		return nil, err
	}
	net, vat := SplitGross(gross, vatRateBp)

	b := &Bill{
		ID:               uuid.NewString(),
		IssueDate:        issueDate,
		DueDate:          dueDate,
		SupplierID:       supplierID,
		Number:           optionalText(input.Number),
		Sector:           optionalText(input.Sector),
		Category:         optionalText(input.Category),
		Notes:            optionalText(input.Notes),
		Status:           ParseBillStatus(input.Status),
		AmountGrossCents: gross,
		AmountNetCents:   net,
		AmountVatCents:   vat,
		VatRateBp:        vatRateBp,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.store.InsertBill(ctx, b); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, invalid("supplierId", "Fournisseur introuvable")
		}
		return nil, fmt.Errorf("create bill: %w", err)
	}

	s.views.Refresh(ctx, ViewBills, ViewDashboard)
	return b, nil
}

// parseAmountAndRate applies the TTC and VAT rules shared by bills, invoices
// and expenses.
func parseAmountAndRate(ttc, vatPercent string) (grossCents, vatRateBp int64, err error) {
	if strings.TrimSpace(ttc) == "" {
		return 0, 0, invalid("ttc", "Montant TTC invalide")
	}
	grossCents, err = ParseCents(ttc)
	if err != nil || grossCents < 0 {
		return 0, 0, invalid("ttc", "Montant TTC invalide")
	}

	if strings.TrimSpace(vatPercent) == "" {
		vatPercent = DefaultVATRate
	}
	vatRateBp, err = ParseBasisPoints(vatPercent)
	if err != nil || vatRateBp < 0 {
		return 0, 0, invalid("vat", "Taux TVA invalide")
	}
	return grossCents, vatRateBp, nil
}

func (s *billService) UpdateBillStatus(ctx context.Context, id string, status BillStatus) (MutationResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return skipped(), nil
	}
	if !status.Valid() {
		return MutationResult{}, invalid("status", "Statut invalide")
	}
	if err := s.store.SetBillStatus(ctx, id, status); err != nil {
		return MutationResult{}, fmt.Errorf("update bill %s status: %w", id, err)
	}
	s.views.Refresh(ctx, ViewBills, ViewDashboard)
	return applied(id), nil
}

func (s *billService) DeleteBill(ctx context.Context, id string) (MutationResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return skipped(), nil
	}
	if err := s.store.RemoveBill(ctx, id); err != nil {
		return MutationResult{}, fmt.Errorf("delete bill %s: %w", id, err)
	}
	s.views.Refresh(ctx, ViewBills, ViewDashboard)
	return applied(id), nil
}

func (s *billService) ListBills(ctx context.Context, f BillFilter) (*BillListing, error) {
	f.Limit = clampLimit(f.Limit)
	f.Query = strings.TrimSpace(f.Query)
	bills, err := s.store.FindBills(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}

	listing := &BillListing{Bills: bills, Count: len(bills)}
	for _, b := range bills {
		listing.TotalGrossCents += b.AmountGrossCents
		listing.TotalVatCents += b.AmountVatCents
	}
	return listing, nil
}
