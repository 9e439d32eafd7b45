// Package sqldb opens database/sql handles for the supported backends and
// holds the small dialect differences between them.
package sqldb

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/wordboard/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// DriverName returns the database/sql driver registered for a backend.
func DriverName(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", nil
	case schema.PostgreSQLBackend:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported backend: %s. Must be sqlite, mysql or postgresql", backend)
	}
}

// Open connects to the backend and verifies the connection.
// For SQLite an empty connStr falls back to defaultPath.
func Open(backend schema.DatabaseBackend, connStr, defaultPath string) (*sql.DB, error) {
	driverName, err := DriverName(backend)
	if err != nil {
		return nil, err
	}

	dsn := connStr
	if backend == schema.SQLiteBackend && dsn == "" {
		dsn = defaultPath
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w. %s", backend, err, connHint(backend))
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connHint(backend))
	}
	return db, nil
}

func connHint(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "Check connection format: user:password@tcp(host:port)/dbname"
	case schema.PostgreSQLBackend:
		return "Check connection format: host=localhost port=5432 user=postgres dbname=mydb"
	default:
		return "Ensure the directory is writable"
	}
}

// QuoteTableName returns the properly quoted table name for the given backend.
func QuoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// Rebind rewrites ? placeholders into $n for PostgreSQL.
// Queries must not contain literal question marks.
func Rebind(backend schema.DatabaseBackend, query string) string {
	if backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatTime converts a time.Time to the appropriate format for the backend.
func FormatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t
	}
}

// timeLayouts are the textual forms a time column may come back in.
// MySQL returns DATETIME as text unless the DSN sets parseTime=true.
var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999", "2006-01-02 15:04:05"}

// ParseTime converts a scanned time column back into a time.Time.
func ParseTime(v any) (time.Time, error) {
	var text string
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		text = t
	case []byte:
		text = string(t)
	default:
		return time.Time{}, fmt.Errorf("unexpected time value of type %T", v)
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time value %q", text)
}

// DropTables connects to a SQL database and drops the tables if they exist.
// For SQLite it removes the database file instead.
func DropTables(backend schema.DatabaseBackend, connStr, defaultPath string, tables ...string) error {
	switch backend {
	case schema.NoneBackend:
		return nil
	case schema.SQLiteBackend:
		path := connStr
		if path == "" {
			path = defaultPath
		}
		if path == "" {
			return fmt.Errorf("database path cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", path, err)
		}
		return nil
	}

	db, err := Open(backend, connStr, defaultPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	for _, table := range tables {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", QuoteTableName(table, backend))
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
