package db

import (
	"context"
	"fmt"

	"fiduciary-books/internal/core"
)

func (s *Store) InsertExpense(ctx context.Context, e *core.Expense) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO expenses (id, date, notes, amount_gross_cents, amount_vat_cents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Date, e.Notes, e.AmountGrossCents, e.AmountVatCents, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", mapErr(err))
	}
	return nil
}

func (s *Store) FindExpenses(ctx context.Context, w core.YearWindow, limit int) ([]core.Expense, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, date, notes, amount_gross_cents, amount_vat_cents, created_at
		FROM expenses
		WHERE date >= $1 AND date < $2
		ORDER BY date DESC, id
		LIMIT $3`,
		w.From, w.To, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.Notes, &e.AmountGrossCents, &e.AmountVatCents, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Date = e.Date.UTC()
		e.CreatedAt = e.CreatedAt.UTC()
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
