package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"fiduciary-books/internal/core"
)

func TestLikePattern(t *testing.T) {
	tests := map[string]string{
		"":        "%%",
		"acme":    "%acme%",
		"100%":    `%100\%%`,
		"a_b":     `%a\_b%`,
		`back\sl`: `%back\\sl%`,
	}
	for in, want := range tests {
		if got := likePattern(in); got != want {
			t.Errorf("likePattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMapErr(t *testing.T) {
	if !errors.Is(mapErr(pgx.ErrNoRows), core.ErrNotFound) {
		t.Error("ErrNoRows should map to ErrNotFound")
	}
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "bills_supplier_id_fkey"}
	if !errors.Is(mapErr(fmt.Errorf("exec: %w", fk)), core.ErrNotFound) {
		t.Error("foreign key violation should map to ErrNotFound")
	}
	other := &pgconn.PgError{Code: "23505"}
	if errors.Is(mapErr(other), core.ErrNotFound) {
		t.Error("unique violation must not map to ErrNotFound")
	}
	if mapErr(nil) != nil {
		t.Error("nil should stay nil")
	}
}

func TestOrderDirection(t *testing.T) {
	if orderDirection(core.SortDateAsc) != "ASC" || orderDirection(core.SortDateDesc) != "DESC" || orderDirection("") != "DESC" {
		t.Error("unexpected order direction")
	}
}
