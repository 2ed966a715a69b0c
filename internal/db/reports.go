package db

import (
	"context"
	"fmt"
	"time"

	"fiduciary-books/internal/core"
)

// Sums use COALESCE so an empty set yields zero instead of NULL.

func (s *Store) SumInvoices(ctx context.Context, f core.InvoiceSumFilter) (core.Totals, error) {
	var t core.Totals
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_gross_cents), 0)::bigint,
		       COALESCE(SUM(amount_vat_cents), 0)::bigint,
		       COUNT(*)
		FROM invoices
		WHERE issue_date >= $1 AND issue_date < $2
		  AND status = $3
		  AND ($4::timestamptz IS NULL OR due_date < $4::timestamptz)`,
		f.Window.From, f.Window.To, string(f.Status), f.DueBefore,
	).Scan(&t.GrossCents, &t.VatCents, &t.Count)
	if err != nil {
		return core.Totals{}, fmt.Errorf("sum invoices: %w", err)
	}
	return t, nil
}

func (s *Store) SumExpenses(ctx context.Context, w core.YearWindow) (core.Totals, error) {
	var t core.Totals
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_gross_cents), 0)::bigint,
		       COALESCE(SUM(amount_vat_cents), 0)::bigint,
		       COUNT(*)
		FROM expenses
		WHERE date >= $1 AND date < $2`,
		w.From, w.To,
	).Scan(&t.GrossCents, &t.VatCents, &t.Count)
	if err != nil {
		return core.Totals{}, fmt.Errorf("sum expenses: %w", err)
	}
	return t, nil
}

func (s *Store) SumBills(ctx context.Context, w core.YearWindow, exclude core.BillStatus) (core.Totals, error) {
	var t core.Totals
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_gross_cents), 0)::bigint,
		       COALESCE(SUM(amount_vat_cents), 0)::bigint,
		       COUNT(*)
		FROM bills
		WHERE issue_date >= $1 AND issue_date < $2
		  AND status <> $3`,
		w.From, w.To, string(exclude),
	).Scan(&t.GrossCents, &t.VatCents, &t.Count)
	if err != nil {
		return core.Totals{}, fmt.Errorf("sum bills: %w", err)
	}
	return t, nil
}

func (s *Store) OverdueInvoices(ctx context.Context, w core.YearWindow, before time.Time, limit int) ([]core.OverdueInvoice, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT i.id, i.number, i.client_id, c.name, i.due_date, i.amount_gross_cents
		FROM invoices i
		JOIN clients c ON c.id = i.client_id
		WHERE i.issue_date >= $1 AND i.issue_date < $2
		  AND i.status = 'OPEN'
		  AND i.due_date < $3
		ORDER BY i.due_date ASC, i.id
		LIMIT $4`,
		w.From, w.To, before, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query overdue invoices: %w", err)
	}
	defer rows.Close()

	out := []core.OverdueInvoice{}
	for rows.Next() {
		var o core.OverdueInvoice
		if err := rows.Scan(&o.ID, &o.Number, &o.ClientID, &o.ClientName, &o.DueDate, &o.AmountGrossCents); err != nil {
			return nil, fmt.Errorf("scan overdue invoice: %w", err)
		}
		o.DueDate = o.DueDate.UTC()
		out = append(out, o)
	}
	return out, rows.Err()
}
