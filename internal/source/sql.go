package source

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/internal/sqldb"
	"github.com/huangsam/wordboard/schema"
)

// SQLSource reads score records from a table with the columns
// name, guesses, dnf, submitted_at and puzzle_number.
type SQLSource struct {
	backend schema.DatabaseBackend
	connStr string
	table   string
}

var _ contract.SnapshotSource = &SQLSource{} // Compile-time check

// NewSQLSource returns a source reading table over the given backend.
func NewSQLSource(backend schema.DatabaseBackend, connStr, table string) (*SQLSource, error) {
	if backend == schema.NoneBackend {
		return nil, fmt.Errorf("the none backend cannot be used as a snapshot source")
	}
	if _, err := sqldb.DriverName(backend); err != nil {
		return nil, err
	}
	if table == "" {
		table = contract.DefaultSourceTable
	}
	if err := contract.ValidateTableName(table); err != nil {
		return nil, err
	}
	return &SQLSource{backend: backend, connStr: connStr, table: table}, nil
}

// Describe implements the SnapshotSource interface.
func (s *SQLSource) Describe() string {
	return fmt.Sprintf("%s:%s", s.backend, s.table)
}

// withDB opens a connection for the duration of fn.
func (s *SQLSource) withDB(fn func(db *sql.DB) error) error {
	db, err := sqldb.Open(s.backend, s.connStr, "")
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return fn(db)
}

// Fingerprint implements the SnapshotSource interface from cheap table aggregates:
// row count, latest submission, guess total, filled guess count and DNF count.
// Appends, deletes and in-place edits of guesses or dnf change it. An edit that
// keeps every aggregate equal, such as swapping two players' guesses, does not.
func (s *SQLSource) Fingerprint(ctx context.Context) (string, error) {
	var fingerprint string
	err := s.withDB(func(db *sql.DB) error {
		query := fmt.Sprintf("SELECT COUNT(*), MAX(submitted_at), COALESCE(SUM(guesses), 0), COUNT(guesses), "+
			"COALESCE(SUM(CASE WHEN dnf THEN 1 ELSE 0 END), 0) FROM %s", sqldb.QuoteTableName(s.table, s.backend))
		var count, filled int64
		var latest, total, dnfs any
		if err := db.QueryRowContext(ctx, query).Scan(&count, &latest, &total, &filled, &dnfs); err != nil {
			return fmt.Errorf("failed to fingerprint table %s: %w", s.table, err)
		}
		fingerprint = fmt.Sprintf("%d|%s|%s|%d|%s", count, cellString(latest), cellString(total), filled, cellString(dnfs))
		return nil
	})
	return fingerprint, err
}

// Load implements the SnapshotSource interface with a single bulk read.
func (s *SQLSource) Load(ctx context.Context) ([]schema.ScoreRecord, error) {
	var records []schema.ScoreRecord
	err := s.withDB(func(db *sql.DB) error {
		query := fmt.Sprintf("SELECT name, guesses, dnf, submitted_at, puzzle_number FROM %s",
			sqldb.QuoteTableName(s.table, s.backend))
		rows, err := db.QueryContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to query table %s: %w", s.table, err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var name string
			var guesses, submitted, puzzle any
			var dnf sql.NullBool
			if err := rows.Scan(&name, &guesses, &dnf, &submitted, &puzzle); err != nil {
				return fmt.Errorf("failed to scan score row: %w", err)
			}
			records = append(records, schema.ScoreRecord{
				Name:         name,
				Guesses:      parseGuesses(cellString(guesses)),
				DNF:          dnf.Valid && dnf.Bool,
				SubmittedAt:  cellString(submitted),
				PuzzleNumber: cellString(puzzle),
			})
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating score rows: %w", err)
		}
		return nil
	})
	return records, err
}

// EnsureTable creates the score table if it does not exist.
func (s *SQLSource) EnsureTable(ctx context.Context) error {
	return s.withDB(func(db *sql.DB) error {
		if _, err := db.ExecContext(ctx, getCreateScoresQuery(s.table, s.backend)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", s.table, err)
		}
		return nil
	})
}

// Insert appends records to the score table in one transaction.
func (s *SQLSource) Insert(ctx context.Context, records []schema.ScoreRecord) error {
	return s.withDB(func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		query := sqldb.Rebind(s.backend, fmt.Sprintf(
			"INSERT INTO %s (name, guesses, dnf, submitted_at, puzzle_number) VALUES (?, ?, ?, ?, ?)",
			sqldb.QuoteTableName(s.table, s.backend)))
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, r := range records {
			var guesses sql.NullFloat64
			if r.Guesses != nil {
				guesses = sql.NullFloat64{Float64: *r.Guesses, Valid: true}
			}
			submitted := sql.NullString{String: r.SubmittedAt, Valid: r.SubmittedAt != ""}
			puzzle := sql.NullString{String: r.PuzzleNumber, Valid: r.PuzzleNumber != ""}
			if _, err := stmt.ExecContext(ctx, r.Name, guesses, r.DNF, submitted, puzzle); err != nil {
				return fmt.Errorf("failed to insert record for %s: %w", r.Name, err)
			}
		}
		return tx.Commit()
	})
}

// getCreateScoresQuery returns the CREATE TABLE query for the score table.
func getCreateScoresQuery(table string, backend schema.DatabaseBackend) string {
	quoted := sqldb.QuoteTableName(table, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(100) NOT NULL,
				guesses DOUBLE,
				dnf BOOLEAN NOT NULL DEFAULT FALSE,
				submitted_at VARCHAR(64),
				puzzle_number VARCHAR(32)
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				guesses DOUBLE PRECISION,
				dnf BOOLEAN NOT NULL DEFAULT FALSE,
				submitted_at TEXT,
				puzzle_number TEXT
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				guesses REAL,
				dnf INTEGER NOT NULL DEFAULT 0,
				submitted_at TEXT,
				puzzle_number TEXT
			);
		`, quoted)
	}
}

// cellString renders a scanned column value as text. NULL becomes "".
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
