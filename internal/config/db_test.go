package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteEnablesForeignKeys(t *testing.T) {
	conn, err := OpenDB(context.Background(), Env{DBDriver: "sqlite", DBDSN: ":memory:"})
	require.NoError(t, err)
	defer conn.Close()

	var on int
	require.NoError(t, conn.QueryRow("PRAGMA foreign_keys").Scan(&on))
	assert.Equal(t, 1, on)
}

func TestOpenDBRejectsBadMySQLDSN(t *testing.T) {
	_, err := OpenDB(context.Background(), Env{DBDriver: "mysql", DBDSN: "not a dsn"})
	assert.Error(t, err)
}
