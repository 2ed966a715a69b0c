package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SalaryInput is the payload of the salary upsert.
type SalaryInput struct {
	EmployeeID   string
	Year         int
	Month        int
	GrossCents   int64
	ChargesCents int64
	NetCents     int64
}

// SalaryService records monthly payroll.
type SalaryService interface {
	// UpsertSalary validates the input and inserts or replaces the salary of
	// the employee for that month. Validation happens before any write.
	UpsertSalary(ctx context.Context, input SalaryInput) (*Salary, error)

	// ListSalaries returns every salary, most recent month first.
	ListSalaries(ctx context.Context) ([]Salary, error)
}

type salaryService struct {
	store SalaryStore
	views ViewRefresher
}

func NewSalaryService(store SalaryStore, views ViewRefresher) SalaryService {
	return &salaryService{store: store, views: orNoop(views)}
}

// MonthStart returns the first day of the month at 00:00 UTC.
func MonthStart(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

func (s *salaryService) UpsertSalary(ctx context.Context, input SalaryInput) (*Salary, error) {
	employeeID := strings.TrimSpace(input.EmployeeID)
	if employeeID == "" {
		return nil, invalid("employeeId", "employeeId manquant")
	}
	if input.Year < 2000 {
		return nil, invalid("year", "Année invalide")
	}
	if input.Month < 1 || input.Month > 12 {
		return nil, invalid("month", "Mois invalide")
	}
	if input.GrossCents < 0 || input.ChargesCents < 0 || input.NetCents < 0 {
		return nil, invalid("amount", "Montant invalide")
	}

	now := time.Now().UTC()
	sal := &Salary{
		ID:           uuid.NewString(),
		EmployeeID:   employeeID,
		Month:        MonthStart(input.Year, input.Month),
		GrossCents:   input.GrossCents,
		ChargesCents: input.ChargesCents,
		NetCents:     input.NetCents,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.UpsertSalary(ctx, sal); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, invalid("employeeId", "Employé introuvable")
		}
		return nil, fmt.Errorf("upsert salary %s %s: %w", employeeID, sal.Month.Format("2006-01"), err)
	}
	s.views.Refresh(ctx, ViewSalaries)
	return sal, nil
}

func (s *salaryService) ListSalaries(ctx context.Context) ([]Salary, error) {
	salaries, err := s.store.FindSalaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list salaries: %w", err)
	}
	return salaries, nil
}
