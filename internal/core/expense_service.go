package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExpenseInput holds the raw form fields of a new expense.
type ExpenseInput struct {
	Date  string
	TTC   string
	VAT   string
	Notes string
}

// ExpenseService records direct business expenses.
type ExpenseService interface {
	CreateExpense(ctx context.Context, input ExpenseInput) (*Expense, error)
	ListExpenses(ctx context.Context, year int) (*ExpenseListing, error)
}

type expenseService struct {
	store ExpenseStore
	views ViewRefresher
}

func NewExpenseService(store ExpenseStore, views ViewRefresher) ExpenseService {
	return &expenseService{store: store, views: orNoop(views)}
}

func (s *expenseService) CreateExpense(ctx context.Context, input ExpenseInput) (*Expense, error) {
	if strings.TrimSpace(input.Date) == "" {
		return nil, invalid("date", "Date manquante")
	}
	date, err := ParseDate(input.Date)
	if err != nil {
		return nil, invalid("date", "Date invalide")
	}
	gross, vatRateBp, err := parseAmountAndRate(input.TTC, input.VAT)
	if err != nil {
		return nil, err
	}
	_, vat := SplitGross(gross, vatRateBp)

	e := &Expense{
		ID:               uuid.NewString(),
		Date:             date,
		Notes:            optionalText(input.Notes),
		AmountGrossCents: gross,
		AmountVatCents:   vat,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.store.InsertExpense(ctx, e); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	s.views.Refresh(ctx, ViewExpenses, ViewDashboard)
	return e, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, year int) (*ExpenseListing, error) {
	expenses, err := s.store.FindExpenses(ctx, NewYearWindow(year), ListingLimit)
	if err != nil {
		return nil, fmt.Errorf("list expenses %d: %w", year, err)
	}
	listing := &ExpenseListing{Year: year, Expenses: expenses, Count: len(expenses)}
	for _, e := range expenses {
		listing.TotalGrossCents += e.AmountGrossCents
		listing.TotalVatCents += e.AmountVatCents
	}
	return listing, nil
}
