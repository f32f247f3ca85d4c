// Package testutil provides an in-memory store and fixtures for tests.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"opticrm/internal/config"
	intdb "opticrm/internal/db"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// NewStore opens an isolated in-memory SQLite store with the CRM schema.
func NewStore(t testing.TB) *sql.DB {
	t.Helper()
	ctx := context.Background()
	conn, err := config.OpenDB(ctx, config.Env{DBDriver: string(intdb.SQLite), DBDSN: ":memory:"})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := intdb.EnsureSchema(ctx, conn, intdb.SQLite); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return conn
}

func Logger(t testing.TB) *zap.Logger {
	return zaptest.NewLogger(t)
}

// SeedCustomers inserts n customers into the organization and returns their ids.
func SeedCustomers(t testing.TB, conn *sql.DB, orgID int64, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := 1; i <= n; i++ {
		res, err := conn.Exec(
			`INSERT INTO customers (organization_id, first_name, last_name, email, status) VALUES (?, ?, ?, ?, ?)`,
			orgID, fmt.Sprintf("Kunde%02d", i), fmt.Sprintf("Nachname%02d", i),
			fmt.Sprintf("kunde%02d-org%d@example.de", i, orgID), "aktiv")
		if err != nil {
			t.Fatalf("seed customer %d: %v", i, err)
		}
		id, _ := res.LastInsertId()
		ids = append(ids, id)
	}
	return ids
}

// SeedProduct inserts one active frame and returns its id.
func SeedProduct(t testing.TB, conn *sql.DB, orgID int64, sku, name, price string) int64 {
	t.Helper()
	res, err := conn.Exec(
		`INSERT INTO products (organization_id, product_type, sku, name, current_price) VALUES (?, 'frame', ?, ?, ?)`,
		orgID, sku, name, price)
	if err != nil {
		t.Fatalf("seed product %s: %v", sku, err)
	}
	id, _ := res.LastInsertId()
	return id
}

// Count returns SELECT COUNT(*) for a table with an optional where clause.
func Count(t testing.TB, conn *sql.DB, table, where string, args ...any) int {
	t.Helper()
	q := "SELECT COUNT(*) FROM " + table
	if where != "" {
		q += " WHERE " + where
	}
	var n int
	if err := conn.QueryRow(q, args...).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
