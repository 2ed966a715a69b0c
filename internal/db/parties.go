package db

import (
	"context"
	"fmt"

	"fiduciary-books/internal/core"
)

func (s *Store) InsertClient(ctx context.Context, c *core.Client) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO clients (id, name, created_at) VALUES ($1, $2, $3)`,
		c.ID, c.Name, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", mapErr(err))
	}
	return nil
}

func (s *Store) FindClients(ctx context.Context) ([]core.Client, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, created_at FROM clients ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	var clients []core.Client
	for rows.Next() {
		var c core.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (s *Store) InsertSupplier(ctx context.Context, sup *core.Supplier) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO suppliers (id, name, created_at) VALUES ($1, $2, $3)`,
		sup.ID, sup.Name, sup.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", mapErr(err))
	}
	return nil
}

func (s *Store) FindSuppliers(ctx context.Context, nameContains string) ([]core.Supplier, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, created_at
		FROM suppliers
		WHERE $1 = '' OR name ILIKE $2
		ORDER BY name, id`,
		nameContains, likePattern(nameContains),
	)
	if err != nil {
		return nil, fmt.Errorf("query suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []core.Supplier
	for rows.Next() {
		var sup core.Supplier
		if err := rows.Scan(&sup.ID, &sup.Name, &sup.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		sup.CreatedAt = sup.CreatedAt.UTC()
		suppliers = append(suppliers, sup)
	}
	return suppliers, rows.Err()
}

func (s *Store) InsertEmployee(ctx context.Context, e *core.Employee) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO employees (id, name, type, created_at) VALUES ($1, $2, $3, $4)`,
		e.ID, e.Name, string(e.Type), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert employee: %w", mapErr(err))
	}
	return nil
}

func (s *Store) FindEmployees(ctx context.Context) ([]core.Employee, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, type, created_at FROM employees ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	var employees []core.Employee
	for rows.Next() {
		var (
			e   core.Employee
			typ string
		)
		if err := rows.Scan(&e.ID, &e.Name, &typ, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		e.Type = core.ParseEmployeeType(typ)
		e.CreatedAt = e.CreatedAt.UTC()
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
