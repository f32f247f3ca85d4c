package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	_, err = conn.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)
	require.NoError(t, EnsureSchema(context.Background(), conn, SQLite))
	return conn
}

func TestClassifyMySQLErrors(t *testing.T) {
	dup := fmt.Errorf("insert product: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	fk := &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}
	other := &mysql.MySQLError{Number: 1146, Message: "Table doesn't exist"}

	assert.True(t, IsDuplicate(dup))
	assert.False(t, IsForeignKey(dup))
	assert.True(t, IsForeignKey(fk))
	assert.False(t, IsDuplicate(fk))
	assert.False(t, IsDuplicate(other))
	assert.False(t, IsForeignKey(other))
	assert.False(t, IsDuplicate(errors.New("Duplicate entry 'x' for key 'sku'")))
	assert.False(t, IsDuplicate(nil))
}

func TestClassifySQLiteErrors(t *testing.T) {
	conn := openSQLite(t)
	ctx := context.Background()

	insert := `INSERT INTO products (organization_id, product_type, sku, name, current_price) VALUES (1, 'frame', 'AB123', 'Classic', '99.00')`
	_, err := conn.ExecContext(ctx, insert)
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx, insert)
	require.Error(t, err)
	assert.True(t, IsDuplicate(err))
	assert.False(t, IsForeignKey(err))

	_, err = conn.ExecContext(ctx, `INSERT INTO invoices (organization_id, customer_id, invoice_date, subtotal, vat_amount, total) VALUES (1, 999, '2024-01-01', 0, 0, 0)`)
	require.Error(t, err)
	assert.True(t, IsForeignKey(err))
	assert.False(t, IsDuplicate(err))
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	conn := openSQLite(t)
	require.NoError(t, EnsureSchema(context.Background(), conn, SQLite))
	assert.Error(t, EnsureSchema(context.Background(), conn, Dialect("oracle")))
}

func TestWithTxRollsBack(t *testing.T) {
	conn := openSQLite(t)
	ctx := context.Background()

	err := WithTx(ctx, conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO customers (first_name, last_name) VALUES ('Anna', 'Schmidt')`); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.EqualError(t, err, "abort")

	var n int
	require.NoError(t, conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n))
	assert.Equal(t, 0, n)

	require.NoError(t, WithTx(ctx, conn, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO customers (first_name, last_name) VALUES ('Anna', 'Schmidt')`)
		return err
	}))
	require.NoError(t, conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n))
	assert.Equal(t, 1, n)
}
