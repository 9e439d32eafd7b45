package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/internal/sqldb"
	"github.com/huangsam/wordboard/schema"
)

// Table names for run history.
const (
	runsTable      = "wordboard_runs"
	standingsTable = "wordboard_standings"
)

// HistoryTables lists the history tables in creation order.
var HistoryTables = []string{runsTable, standingsTable}

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := sqldb.Open(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	// Create the table schemas
	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the run history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{standingsTable, getCreateStandingsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for wordboard_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := sqldb.QuoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_uid CHAR(36) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_players INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				run_uid TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_players INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_uid TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_players INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateStandingsQuery returns the CREATE TABLE query for wordboard_standings.
func getCreateStandingsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := sqldb.QuoteTableName(standingsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				view_name VARCHAR(16) NOT NULL,
				player_rank INT NOT NULL,
				player VARCHAR(100) NOT NULL,
				metric DOUBLE NOT NULL,
				attempts INT NOT NULL,
				as_of CHAR(10) NOT NULL,
				PRIMARY KEY (run_id, view_name, player)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				view_name TEXT NOT NULL,
				player_rank INT NOT NULL,
				player TEXT NOT NULL,
				metric DOUBLE PRECISION NOT NULL,
				attempts INT NOT NULL,
				as_of TEXT NOT NULL,
				PRIMARY KEY (run_id, view_name, player)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				view_name TEXT NOT NULL,
				player_rank INTEGER NOT NULL,
				player TEXT NOT NULL,
				metric REAL NOT NULL,
				attempts INTEGER NOT NULL,
				as_of TEXT NOT NULL,
				PRIMARY KEY (run_id, view_name, player)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := sqldb.QuoteTableName(runsTable, hs.backend)
	runUID := uuid.NewString()

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_uid, start_time, config_params) VALUES ($1, $2, $3) RETURNING run_id`, quotedTableName)
		err = hs.db.QueryRow(query, runUID, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_uid, start_time, config_params) VALUES (?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = hs.db.Exec(query, runUID, sqldb.FormatTime(startTime, hs.backend), string(configJSON))
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// EndRun updates the run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalPlayers int) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	quotedTableName := sqldb.QuoteTableName(runsTable, hs.backend)

	// First, get the start_time to calculate duration
	var rawStart any
	query := sqldb.Rebind(hs.backend, fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, quotedTableName))
	if err := hs.db.QueryRow(query, runID).Scan(&rawStart); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	startTime, err := sqldb.ParseTime(rawStart)
	if err != nil {
		return fmt.Errorf("failed to parse start_time: %w", err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	updateQuery := sqldb.Rebind(hs.backend, fmt.Sprintf(
		`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_players = ? WHERE run_id = ?`, quotedTableName))
	if _, err := hs.db.Exec(updateQuery, sqldb.FormatTime(endTime, hs.backend), durationMs, totalPlayers, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// RecordStandings stores the ranked entries of one view for a run in one transaction.
func (hs *HistoryStoreImpl) RecordStandings(runID int64, view schema.ViewKind, asOf schema.Date, entries []schema.BoardEntry) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil || len(entries) == 0 {
		return nil
	}

	tx, err := hs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := sqldb.Rebind(hs.backend, fmt.Sprintf(`
		INSERT INTO %s (run_id, view_name, player_rank, player, metric, attempts, as_of)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sqldb.QuoteTableName(standingsTable, hs.backend)))
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare standings insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	date := asOf.String()
	for _, e := range entries {
		if _, err := stmt.Exec(runID, string(view), e.Rank, e.Name, e.Metric, e.Attempts, date); err != nil {
			return fmt.Errorf("failed to insert standing for %s: %w", e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit standings: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	quotedRuns := sqldb.QuoteTableName(runsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		var lastStart, oldestStart any
		lastRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quotedRuns)
		if err := hs.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, &lastStart); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		lastRunTime, err := sqldb.ParseTime(lastStart)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunTime = lastRunTime

		// Get oldest run time
		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quotedRuns)
		if err := hs.db.QueryRow(oldestRunQuery).Scan(&oldestStart); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		oldestRunTime, err := sqldb.ParseTime(oldestStart)
		if err != nil {
			return status, fmt.Errorf("failed to parse oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime
	}

	// Get table sizes
	for _, table := range HistoryTables {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", sqldb.QuoteTableName(table, hs.backend))
		var count int64
		if err := hs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalStandings = int(status.TableSizes[standingsTable])

	return status, nil
}

// GetAllRuns retrieves all runs from the store, oldest first.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, run_uid, start_time, end_time, run_duration_ms, total_players, config_params
		FROM %s ORDER BY run_id`, sqldb.QuoteTableName(runsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		var rawStart, rawEnd any
		var duration sql.NullInt32
		var params sql.NullString
		if err := rows.Scan(&record.RunID, &record.RunUID, &rawStart, &rawEnd, &duration, &record.TotalPlayers, &params); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		record.StartTime, err = sqldb.ParseTime(rawStart)
		if err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if rawEnd != nil {
			endTime, err := sqldb.ParseTime(rawEnd)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end_time: %w", err)
			}
			record.EndTime = &endTime
		}
		if duration.Valid {
			d := duration.Int32
			record.RunDurationMs = &d
		}
		if params.Valid {
			p := params.String
			record.ConfigParams = &p
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllStandings retrieves all standing rows from the store.
func (hs *HistoryStoreImpl) GetAllStandings() ([]schema.StandingRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, view_name, player_rank, player, metric, attempts, as_of
		FROM %s ORDER BY run_id, view_name, player_rank, player`, sqldb.QuoteTableName(standingsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.StandingRecord
	for rows.Next() {
		var record schema.StandingRecord
		if err := rows.Scan(&record.RunID, &record.View, &record.Rank, &record.Player,
			&record.Metric, &record.Attempts, &record.AsOf); err != nil {
			return nil, fmt.Errorf("failed to scan standing: %w", err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating standings: %w", err)
	}
	return results, nil
}
