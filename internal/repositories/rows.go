package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intdb "opticrm/internal/db"
)

func insertRow(ctx context.Context, conn intdb.DBTX, table string, ch intdb.Changes) (int64, error) {
	q, args := ch.InsertSQL(table)
	res, err := conn.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert %s: last insert id: %w", table, err)
	}
	return id, nil
}

// updateRow applies ch to the rows matched by where. Tables with an
// updated_at column get it refreshed by the store clock.
func updateRow(ctx context.Context, conn intdb.DBTX, table string, ch intdb.Changes, touch bool, where string, whereArgs ...any) error {
	set, args := ch.SetSQL()
	if touch {
		set += ", updated_at = CURRENT_TIMESTAMP"
	}
	args = append(args, whereArgs...)
	_, err := conn.ExecContext(ctx, "UPDATE "+table+" SET "+set+" WHERE "+where, args...)
	return err
}

func rowExists(ctx context.Context, conn intdb.DBTX, q string, args ...any) (bool, error) {
	var one int
	err := conn.QueryRowContext(ctx, q, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
