package db

import (
	"context"
	"fmt"

	"fiduciary-books/internal/core"
)

func (s *Store) InsertInvoice(ctx context.Context, inv *core.Invoice) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO invoices (id, number, client_id, issue_date, due_date, status,
		                      amount_gross_cents, amount_vat_cents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		inv.ID, inv.Number, inv.ClientID, inv.IssueDate, inv.DueDate, string(inv.Status),
		inv.AmountGrossCents, inv.AmountVatCents, inv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice %q: %w", inv.Number, mapErr(err))
	}
	return nil
}

func (s *Store) SetInvoiceStatus(ctx context.Context, id string, status core.InvoiceStatus) error {
	return expectOne(s.pool.Exec(ctx, `UPDATE invoices SET status = $2 WHERE id = $1`, id, string(status)))
}

func (s *Store) FindInvoices(ctx context.Context, f core.InvoiceFilter) ([]core.Invoice, error) {
	query := `
		SELECT i.id, i.number, i.client_id, i.issue_date, i.due_date, i.status,
		       i.amount_gross_cents, i.amount_vat_cents, i.created_at,
		       c.name, c.created_at
		FROM invoices i
		JOIN clients c ON c.id = i.client_id
		WHERE i.issue_date >= $1 AND i.issue_date < $2
		  AND ($3 = '' OR i.number ILIKE $4 OR c.name ILIKE $4)
		  AND ($5 = '' OR i.status = $5)
		ORDER BY i.issue_date ` + orderDirection(f.Sort) + `, i.id
		LIMIT $6`

	rows, err := s.pool.Query(ctx, query,
		f.Window.From, f.Window.To, f.Query, likePattern(f.Query), string(f.Status), f.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []core.Invoice
	for rows.Next() {
		var (
			inv    core.Invoice
			c      core.Client
			status string
		)
		if err := rows.Scan(
			&inv.ID, &inv.Number, &inv.ClientID, &inv.IssueDate, &inv.DueDate, &status,
			&inv.AmountGrossCents, &inv.AmountVatCents, &inv.CreatedAt,
			&c.Name, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		inv.Status = core.ParseInvoiceStatus(status)
		inv.IssueDate = inv.IssueDate.UTC()
		inv.DueDate = utcPtr(inv.DueDate)
		inv.CreatedAt = inv.CreatedAt.UTC()
		c.ID = inv.ClientID
		c.CreatedAt = c.CreatedAt.UTC()
		inv.Client = &c
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}
