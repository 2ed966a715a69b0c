package db

import (
	"context"
	"fmt"

	"fiduciary-books/internal/core"
)

func (s *Store) InsertBill(ctx context.Context, b *core.Bill) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO bills (id, issue_date, due_date, supplier_id, number, sector, category, notes,
		                   status, amount_gross_cents, amount_net_cents, amount_vat_cents, vat_rate_bp, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		b.ID, b.IssueDate, b.DueDate, b.SupplierID, b.Number, b.Sector, b.Category, b.Notes,
		string(b.Status), b.AmountGrossCents, b.AmountNetCents, b.AmountVatCents, b.VatRateBp, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bill: %w", mapErr(err))
	}
	return nil
}

func (s *Store) SetBillStatus(ctx context.Context, id string, status core.BillStatus) error {
	return expectOne(s.pool.Exec(ctx, `UPDATE bills SET status = $2 WHERE id = $1`, id, string(status)))
}

func (s *Store) RemoveBill(ctx context.Context, id string) error {
	return expectOne(s.pool.Exec(ctx, `DELETE FROM bills WHERE id = $1`, id))
}

func (s *Store) FindBills(ctx context.Context, f core.BillFilter) ([]core.Bill, error) {
	query := `
		SELECT b.id, b.issue_date, b.due_date, b.supplier_id, b.number, b.sector, b.category, b.notes,
		       b.status, b.amount_gross_cents, b.amount_net_cents, b.amount_vat_cents, b.vat_rate_bp, b.created_at,
		       s.name, s.created_at
		FROM bills b
		JOIN suppliers s ON s.id = b.supplier_id
		WHERE b.issue_date >= $1 AND b.issue_date < $2
		  AND ($3 = '' OR b.notes ILIKE $4 OR s.name ILIKE $4)
		  AND ($5 = '' OR b.status = $5)
		ORDER BY b.issue_date ` + orderDirection(f.Sort) + `, b.id
		LIMIT $6`

	rows, err := s.pool.Query(ctx, query,
		f.Window.From, f.Window.To, f.Query, likePattern(f.Query), string(f.Status), f.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query bills: %w", err)
	}
	defer rows.Close()

	var bills []core.Bill
	for rows.Next() {
		var (
			b      core.Bill
			sup    core.Supplier
			status string
		)
		if err := rows.Scan(
			&b.ID, &b.IssueDate, &b.DueDate, &b.SupplierID, &b.Number, &b.Sector, &b.Category, &b.Notes,
			&status, &b.AmountGrossCents, &b.AmountNetCents, &b.AmountVatCents, &b.VatRateBp, &b.CreatedAt,
			&sup.Name, &sup.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		b.Status = core.ParseBillStatus(status)
		b.IssueDate = b.IssueDate.UTC()
		b.DueDate = utcPtr(b.DueDate)
		b.CreatedAt = b.CreatedAt.UTC()
		sup.ID = b.SupplierID
		sup.CreatedAt = sup.CreatedAt.UTC()
		b.Supplier = &sup
		bills = append(bills, b)
	}
	return bills, rows.Err()
}
