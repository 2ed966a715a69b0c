package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InvoiceInput holds the raw form fields of a new sales invoice.
type InvoiceInput struct {
	ClientID  string
	Number    string
	IssueDate string
	DueDate   string
	TTC       string
	VAT       string
	Status    string
}

// InvoiceService manages sales invoices.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, input InvoiceInput) (*Invoice, error)
	// UpdateInvoiceStatus changes only the status. A blank id is skipped.
	UpdateInvoiceStatus(ctx context.Context, id string, status InvoiceStatus) (MutationResult, error)
	ListInvoices(ctx context.Context, f InvoiceFilter) (*InvoiceListing, error)
}

type invoiceService struct {
	store InvoiceStore
	views ViewRefresher
}

// NewInvoiceService constructs an InvoiceService over the given store.
func NewInvoiceService(store InvoiceStore, views ViewRefresher) InvoiceService {
	return &invoiceService{store: store, views: orNoop(views)}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, input InvoiceInput) (*Invoice, error) {
	if strings.TrimSpace(input.IssueDate) == "" {
		return nil, invalid("issueDate", "Date manquante")
	}
	clientID := strings.TrimSpace(input.ClientID)
	if clientID == "" {
		return nil, invalid("clientId", "Client manquant")
	}
	number := strings.TrimSpace(input.Number)
	if number == "" {
		return nil, invalid("number", "Numéro manquant")
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
	_, vat := SplitGross(gross, vatRateBp)

	inv := &Invoice{
		ID:               uuid.NewString(),
		Number:           number,
		ClientID:         clientID,
		IssueDate:        issueDate,
		DueDate:          dueDate,
		Status:           ParseInvoiceStatus(input.Status),
		AmountGrossCents: gross,
		AmountVatCents:   vat,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.store.InsertInvoice(ctx, inv); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, invalid("clientId", "Client introuvable")
		}
		return nil, fmt.Errorf("create invoice %q: %w", number, err)
	}

	s.views.Refresh(ctx, ViewInvoices, ViewDashboard)
	return inv, nil
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, id string, status InvoiceStatus) (MutationResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return skipped(), nil
	}
	if !status.Valid() {
		return MutationResult{}, invalid("status", "Statut invalide")
	}
	if err := s.store.SetInvoiceStatus(ctx, id, status); err != nil {
		return MutationResult{}, fmt.Errorf("update invoice %s status: %w", id, err)
	}
	s.views.Refresh(ctx, ViewInvoices, ViewDashboard)
	return applied(id), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, f InvoiceFilter) (*InvoiceListing, error) {
	f.Limit = clampLimit(f.Limit)
	f.Query = strings.TrimSpace(f.Query)
	invoices, err := s.store.FindInvoices(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	listing := &InvoiceListing{Invoices: invoices, Count: len(invoices)}
	for _, inv := range invoices {
		listing.TotalGrossCents += inv.AmountGrossCents
		listing.TotalVatCents += inv.AmountVatCents
	}
	return listing, nil
}
