//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestWordboardWithMySQL tests the wordboard CLI with a MySQL backend.
func TestWordboardWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "wordboard",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/wordboard?parseTime=true", host, port.Port())
	runBackendScenario(t, "mysql", connStr)
}

// TestWordboardWithPostgres tests the wordboard CLI with a PostgreSQL backend.
func TestWordboardWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runBackendScenario(t, "postgresql", connStr)
}

// runBackendScenario drives the score table, snapshot cache and run history
// through one database backend.
func runBackendScenario(t *testing.T, backend, connStr string) {
	// Set environment variables
	envs := map[string]string{
		"WORDBOARD_SOURCE_BACKEND":     backend,
		"WORDBOARD_SOURCE_DB_CONNECT":  connStr,
		"WORDBOARD_CACHE_BACKEND":      backend,
		"WORDBOARD_CACHE_DB_CONNECT":   connStr,
		"WORDBOARD_HISTORY_BACKEND":    backend,
		"WORDBOARD_HISTORY_DB_CONNECT": connStr,
	}
	for k, v := range envs {
		t.Setenv(k, v)
	}

	// Start from empty stores
	_, err := runWordboard(t, "cache", "clear")
	require.NoError(t, err)
	_, err = runWordboard(t, "history", "clear")
	require.NoError(t, err)

	// Create the history schema through migrations
	out, err := runWordboard(t, "history", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully migrated")

	// Load the snapshot into the score table
	out, err = runWordboard(t, "import", fixturePath)
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("Imported %d records", fixtureRecords))

	// Rank from the table twice: a cold run then a cached one
	for range 2 {
		out, err = runWordboard(t, "boards", "--source", "db", "--as-of", "2025-01-08", "--timezone", "Europe/London")
		require.NoError(t, err)
		assert.Contains(t, out, "Leaderboards computed in")
	}

	out, err = runWordboard(t, "timeseries", "--source", "db", "--output", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "global_average")

	// Cache holds the one snapshot loaded from the table
	out, err = runWordboard(t, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Entries: 1")

	// History recorded both leaderboard runs
	out, err = runWordboard(t, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Runs: 2")

	// Export the history to Parquet
	prefix := filepath.Join(t.TempDir(), "history")
	out, err = runWordboard(t, "history", "export", "--output-file", prefix)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 runs")
	for _, suffix := range []string{".runs.parquet", ".standings.parquet"} {
		info, statErr := os.Stat(prefix + suffix)
		require.NoError(t, statErr)
		assert.Positive(t, info.Size())
	}

	// Roll the schema back and forward again
	out, err = runWordboard(t, "history", "migrate", "--target-version", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "rolled back")
	_, err = runWordboard(t, "history", "migrate")
	require.NoError(t, err)
}
