package sqldb

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/wordboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestQuoteTableName tests the QuoteTableName function for all backends.
func TestQuoteTableName(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		want    string
	}{
		{"SQLite backend", schema.SQLiteBackend, `"scores"`},
		{"MySQL backend", schema.MySQLBackend, "`scores`"},
		{"PostgreSQL backend", schema.PostgreSQLBackend, `"scores"`},
		{"None backend defaults to SQLite style", schema.NoneBackend, `"scores"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteTableName("scores", tt.backend))
		})
	}
}

func TestRebind(t *testing.T) {
	query := "SELECT a FROM t WHERE b = ? AND c = ?"
	assert.Equal(t, query, Rebind(schema.SQLiteBackend, query))
	assert.Equal(t, query, Rebind(schema.MySQLBackend, query))
	assert.Equal(t, "SELECT a FROM t WHERE b = $1 AND c = $2", Rebind(schema.PostgreSQLBackend, query))
}

func TestDriverName(t *testing.T) {
	name, err := DriverName(schema.SQLiteBackend)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", name)

	name, err = DriverName(schema.PostgreSQLBackend)
	require.NoError(t, err)
	assert.Equal(t, "pgx", name)

	_, err = DriverName(schema.NoneBackend)
	assert.Error(t, err)
}

func TestTimeRoundTrip(t *testing.T) {
	ts := time.Date(2025, 1, 8, 9, 30, 0, 123456789, time.UTC)

	formatted := FormatTime(ts, schema.SQLiteBackend)
	assert.IsType(t, "", formatted)

	parsed, err := ParseTime(formatted)
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))

	parsed, err = ParseTime([]byte(formatted.(string)))
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))

	assert.Equal(t, ts, FormatTime(ts, schema.MySQLBackend))

	_, err = ParseTime(42)
	assert.Error(t, err)
}

func TestOpenAndDropSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(schema.SQLiteBackend, "", path)
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE t (x INTEGER)")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = os.Stat(path)
	require.NoError(t, err, "database file should exist")

	require.NoError(t, DropTables(schema.SQLiteBackend, path, "", "t"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Missing file is not an error
	assert.NoError(t, DropTables(schema.SQLiteBackend, path, ""))
	assert.NoError(t, DropTables(schema.NoneBackend, "", ""))
}

func TestParseTimeMySQLText(t *testing.T) {
	parsed, err := ParseTime([]byte("2025-01-08 09:30:00.250000"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 8, 9, 30, 0, 250000000, time.UTC), parsed)

	_, err = ParseTime("yesterday")
	assert.Error(t, err)
}
