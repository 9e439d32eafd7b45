package iocache

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/wordboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteHistoryStore(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	store, err := NewHistoryStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*HistoryStoreImpl)
}

func sampleEntries() []schema.BoardEntry {
	return []schema.BoardEntry{
		{Rank: 1, Name: "Ada", Metric: 3.25, Attempts: 8},
		{Rank: 2, Name: "Bea", Metric: 3.5, Attempts: 6},
		{Rank: 2, Name: "Cy", Metric: 3.5, Attempts: 4},
	}
}

func TestHistoryStore_NoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), map[string]any{"view": "all"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)
	assert.NoError(t, store.EndRun(1, time.Now(), 3))
	assert.NoError(t, store.RecordStandings(1, schema.DailyView, schema.NewDate(2025, 1, 8), sampleEntries()))

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestHistoryStore_RunLifecycle(t *testing.T) {
	store := newSQLiteHistoryStore(t)

	start := time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun(start, map[string]any{"view": "all", "limit": 10})
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	asOf := schema.NewDate(2025, 1, 8)
	require.NoError(t, store.RecordStandings(runID, schema.AllTimeView, asOf, sampleEntries()))
	require.NoError(t, store.RecordStandings(runID, schema.DailyView, asOf, nil))
	require.NoError(t, store.EndRun(runID, start.Add(1500*time.Millisecond), 3))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Len(t, run.RunUID, 36)
	assert.True(t, start.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(1500), *run.RunDurationMs)
	assert.Equal(t, int32(3), run.TotalPlayers)
	require.NotNil(t, run.ConfigParams)

	var params map[string]any
	require.NoError(t, json.Unmarshal([]byte(*run.ConfigParams), &params))
	assert.Equal(t, "all", params["view"])

	standings, err := store.GetAllStandings()
	require.NoError(t, err)
	require.Len(t, standings, 3)
	assert.Equal(t, "alltime", standings[0].View)
	assert.Equal(t, "Ada", standings[0].Player)
	assert.Equal(t, int32(1), standings[0].Rank)
	assert.Equal(t, "2025-01-08", standings[0].AsOf)
	assert.Equal(t, int32(2), standings[2].Rank)
	assert.Equal(t, "Cy", standings[2].Player)
}

func TestHistoryStore_EndRunUnknown(t *testing.T) {
	store := newSQLiteHistoryStore(t)
	assert.Error(t, store.EndRun(42, time.Now(), 1))
}

func TestHistoryStore_DuplicateStandingRollsBack(t *testing.T) {
	store := newSQLiteHistoryStore(t)
	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)

	entries := append(sampleEntries(), schema.BoardEntry{Rank: 4, Name: "Ada"})
	assert.Error(t, store.RecordStandings(runID, schema.WeeklyView, schema.NewDate(2025, 1, 6), entries))

	standings, err := store.GetAllStandings()
	require.NoError(t, err)
	assert.Empty(t, standings)
}

func TestHistoryStore_Status(t *testing.T) {
	store := newSQLiteHistoryStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes[runsTable])

	first := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	_, err = store.BeginRun(first, nil)
	require.NoError(t, err)
	lastID, err := store.BeginRun(first.Add(time.Hour), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordStandings(lastID, schema.DailyView, schema.NewDate(2025, 1, 1), sampleEntries()))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, lastID, status.LastRunID)
	assert.True(t, first.Add(time.Hour).Equal(status.LastRunTime))
	assert.True(t, first.Equal(status.OldestRunTime))
	assert.Equal(t, 3, status.TotalStandings)
	assert.Equal(t, int64(2), status.TableSizes[runsTable])
}

func TestCreateHistoryQueries(t *testing.T) {
	assert.Contains(t, getCreateRunsQuery(schema.MySQLBackend), "AUTO_INCREMENT")
	assert.Contains(t, getCreateRunsQuery(schema.PostgreSQLBackend), "BIGSERIAL")
	assert.Contains(t, getCreateRunsQuery(schema.SQLiteBackend), "AUTOINCREMENT")
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		query := getCreateStandingsQuery(backend)
		assert.Contains(t, query, "player_rank")
		assert.Contains(t, query, "view_name")
	}
}
