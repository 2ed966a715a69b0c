package db

import (
	"context"
	"fmt"

	"fiduciary-books/internal/core"
)

// UpsertSalary relies on UNIQUE (employee_id, month). On conflict the amounts
// and updated_at are replaced; id and created_at keep their original values.
func (s *Store) UpsertSalary(ctx context.Context, sal *core.Salary) error {
	var (
		emp core.Employee
		typ string
	)
	err := s.pool.QueryRow(ctx, `
		WITH upserted AS (
			INSERT INTO salaries (id, employee_id, month, gross_cents, charges_cents, net_cents, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (employee_id, month) DO UPDATE
			SET gross_cents = EXCLUDED.gross_cents,
			    charges_cents = EXCLUDED.charges_cents,
			    net_cents = EXCLUDED.net_cents,
			    updated_at = EXCLUDED.updated_at
			RETURNING id, employee_id, created_at
		)
		SELECT u.id, u.created_at, e.id, e.name, e.type, e.created_at
		FROM upserted u
		JOIN employees e ON e.id = u.employee_id`,
		sal.ID, sal.EmployeeID, sal.Month, sal.GrossCents, sal.ChargesCents, sal.NetCents, sal.CreatedAt, sal.UpdatedAt,
	).Scan(&sal.ID, &sal.CreatedAt, &emp.ID, &emp.Name, &typ, &emp.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert salary: %w", mapErr(err))
	}
	sal.CreatedAt = sal.CreatedAt.UTC()
	emp.Type = core.ParseEmployeeType(typ)
	emp.CreatedAt = emp.CreatedAt.UTC()
	sal.Employee = &emp
	return nil
}

func (s *Store) FindSalaries(ctx context.Context) ([]core.Salary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT s.id, s.employee_id, s.month, s.gross_cents, s.charges_cents, s.net_cents,
		       s.created_at, s.updated_at, e.name, e.type, e.created_at
		FROM salaries s
		JOIN employees e ON e.id = s.employee_id
		ORDER BY s.month DESC, e.name, s.id`)
	if err != nil {
		return nil, fmt.Errorf("query salaries: %w", err)
	}
	defer rows.Close()

	var salaries []core.Salary
	for rows.Next() {
		var (
			sal core.Salary
			emp core.Employee
			typ string
		)
		if err := rows.Scan(
			&sal.ID, &sal.EmployeeID, &sal.Month, &sal.GrossCents, &sal.ChargesCents, &sal.NetCents,
			&sal.CreatedAt, &sal.UpdatedAt, &emp.Name, &typ, &emp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan salary: %w", err)
		}
		sal.Month = sal.Month.UTC()
		sal.CreatedAt = sal.CreatedAt.UTC()
		sal.UpdatedAt = sal.UpdatedAt.UTC()
		emp.ID = sal.EmployeeID
		emp.Type = core.ParseEmployeeType(typ)
		emp.CreatedAt = emp.CreatedAt.UTC()
		sal.Employee = &emp
		salaries = append(salaries, sal)
	}
	return salaries, rows.Err()
}
