package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/internal/iocache"
	"github.com/huangsam/wordboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testAsOf is Wednesday 2025-01-08 at noon; London is on GMT in January.
var testAsOf = time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)

func testConfig(t *testing.T) *contract.Config {
	t.Helper()
	loc, err := time.LoadLocation(schema.DefaultTimezone)
	require.NoError(t, err)
	return &contract.Config{
		Timezone:       schema.DefaultTimezone,
		Location:       loc,
		AsOf:           testAsOf,
		ResultLimit:    10,
		Precision:      2,
		Output:         schema.JSONOut,
		View:           schema.AllViews,
		Mode:           schema.BayesianSeries,
		CacheBackend:   schema.SQLiteBackend,
		CacheTTL:       5 * time.Minute,
		HistoryBackend: schema.SQLiteBackend,
		Params:         schema.DefaultRatingParams(),
	}
}

func testRecords() []schema.ScoreRecord {
	return []schema.ScoreRecord{
		{Name: "Ada", Guesses: schema.GuessesOf(3), SubmittedAt: "2025-01-08T09:00:00Z"},
		{Name: "Bob", Guesses: schema.GuessesOf(5), SubmittedAt: "2025-01-08T10:00:00Z"},
		{Name: "Cy", DNF: true, SubmittedAt: "2025-01-07T10:00:00Z"},
		{Name: "Ada", Guesses: schema.GuessesOf(4), SubmittedAt: "2025-01-06T10:00:00Z"},
		{Name: "Bob", Guesses: schema.GuessesOf(2), SubmittedAt: "2025-01-09T10:00:00Z"}, // future
		{Name: "Bad", SubmittedAt: "not a date"},
	}
}

func newSource(records []schema.ScoreRecord) *contract.MockSnapshotSource {
	src := &contract.MockSnapshotSource{}
	src.On("Describe").Return("file:scores.json")
	src.On("Fingerprint", mock.Anything).Return("abc123", nil)
	src.On("Load", mock.Anything).Return(records, nil)
	return src
}

func names(entries []schema.BoardEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestBuildLeaderboards(t *testing.T) {
	cfg := testConfig(t)
	src := newSource(testRecords())

	boards, fromCache, err := BuildLeaderboards(context.Background(), cfg, src, nil)
	require.NoError(t, err)

	assert.False(t, fromCache)
	assert.Equal(t, schema.NewDate(2025, time.January, 8), boards.AsOf)
	assert.Equal(t, 5, boards.ValidRecords)
	assert.Equal(t, 1, boards.ExcludedRecords)
	assert.Equal(t, 1, boards.FutureRecords)
	assert.Equal(t, []string{"Ada", "Bob"}, names(boards.Daily))
	assert.Equal(t, []string{"Cy"}, names(boards.WoodenSpoon))
	assert.Len(t, boards.MostActive, 3)
	// Bob's record from tomorrow still counts toward his activity.
	assert.Equal(t, []string{"Ada", "Bob", "Cy"}, names(boards.MostActive))
	assert.Equal(t, 2, boards.MostActive[1].Attempts)
}

func TestBuildLeaderboardsExplicitAsOfReplays(t *testing.T) {
	cfg := testConfig(t)
	cfg.AsOfSet = true
	src := newSource(testRecords())

	boards, _, err := BuildLeaderboards(context.Background(), cfg, src, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, boards.ValidRecords)
	assert.Equal(t, 1, boards.FutureRecords)
	assert.Equal(t, []string{"Ada", "Bob", "Cy"}, names(boards.MostActive))
	assert.Equal(t, 1, boards.MostActive[1].Attempts)
}

func TestBuildLeaderboardsLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.ResultLimit = 1
	src := newSource(testRecords())

	boards, _, err := BuildLeaderboards(context.Background(), cfg, src, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Ada"}, names(boards.Daily))
	assert.Len(t, boards.MostActive, 1)
	assert.Len(t, boards.Weekly, 1)
}

func TestBuildLeaderboardsLoadError(t *testing.T) {
	cfg := testConfig(t)
	src := &contract.MockSnapshotSource{}
	src.On("Load", mock.Anything).Return(nil, errors.New("boom"))

	_, _, err := BuildLeaderboards(context.Background(), cfg, src, nil)
	assert.EqualError(t, err, "boom")
}

func TestBuildLeaderboardsRecordsHistory(t *testing.T) {
	cfg := testConfig(t)
	cfg.View = schema.DailyView
	src := newSource(testRecords())

	history := &iocache.MockHistoryStore{}
	history.On("BeginRun", mock.Anything, mock.MatchedBy(func(params map[string]any) bool {
		return params["source"] == "file:scores.json" && params["view"] == "daily" && params["as_of"] == "2025-01-08"
	})).Return(int64(7), nil)
	history.On("RecordStandings", int64(7), schema.DailyView, schema.NewDate(2025, time.January, 8),
		mock.MatchedBy(func(entries []schema.BoardEntry) bool { return len(entries) == 2 })).Return(nil)
	history.On("EndRun", int64(7), mock.Anything, 3).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetSnapshotStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history)

	_, _, err := BuildLeaderboards(context.Background(), cfg, src, mgr)
	require.NoError(t, err)

	history.AssertExpectations(t)
	history.AssertNumberOfCalls(t, "RecordStandings", 1)
}

func TestBuildLeaderboardsHistoryFailuresDoNotFail(t *testing.T) {
	cfg := testConfig(t)
	src := newSource(testRecords())

	history := &iocache.MockHistoryStore{}
	history.On("BeginRun", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetSnapshotStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history)

	boards, _, err := BuildLeaderboards(context.Background(), cfg, src, mgr)
	require.NoError(t, err)
	assert.NotEmpty(t, boards.Daily)
	history.AssertNotCalled(t, "RecordStandings", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBuildLeaderboardsSkipHistory(t *testing.T) {
	cfg := testConfig(t)
	src := newSource(testRecords())

	history := &iocache.MockHistoryStore{}
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetSnapshotStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history)

	_, _, err := BuildLeaderboards(WithSkipHistory(context.Background()), cfg, src, mgr)
	require.NoError(t, err)
	history.AssertNotCalled(t, "BeginRun", mock.Anything, mock.Anything)
}

func TestBuildTimeseries(t *testing.T) {
	cfg := testConfig(t)
	src := newSource(testRecords())

	t.Run("implicit as-of keeps every day", func(t *testing.T) {
		result, _, err := BuildTimeseries(context.Background(), cfg, src, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, result.FutureRecords)
		assert.Equal(t, 1, result.ExcludedRecords)
		require.NotEmpty(t, result.Points)
		assert.Equal(t, schema.NewDate(2025, time.January, 9), result.Points[len(result.Points)-1].Date)
	})

	t.Run("explicit as-of cuts the axis", func(t *testing.T) {
		explicit := cfg.Clone()
		explicit.AsOfSet = true
		result, _, err := BuildTimeseries(context.Background(), explicit, src, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, result.FutureRecords)
		require.NotEmpty(t, result.Points)
		assert.Equal(t, schema.NewDate(2025, time.January, 8), result.Points[len(result.Points)-1].Date)
	})

	t.Run("players filter", func(t *testing.T) {
		filtered := cfg.Clone()
		filtered.Players = []string{"Ada"}
		result, _, err := BuildTimeseries(context.Background(), filtered, src, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Ada"}, result.Players)
		for _, p := range result.Points {
			_, hasBob := p.Values["Bob"]
			assert.False(t, hasBob)
		}
	})
}

func TestRunBoardsJSON(t *testing.T) {
	cfg := testConfig(t)
	cfg.View = schema.DailyView
	src := newSource(testRecords())

	var out, hdr bytes.Buffer
	require.NoError(t, runBoards(context.Background(), &out, &hdr, cfg, src, nil))

	var doc struct {
		AsOf  string `json:"as_of"`
		Views []struct {
			View    string `json:"view"`
			Entries []struct {
				Name string `json:"name"`
				Rank int    `json:"rank"`
			} `json:"entries"`
		} `json:"views"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "2025-01-08", doc.AsOf)
	require.Len(t, doc.Views, 1)
	assert.Equal(t, "daily", doc.Views[0].View)
	require.Len(t, doc.Views[0].Entries, 2)
	assert.Equal(t, "Ada", doc.Views[0].Entries[0].Name)
	assert.Equal(t, 1, doc.Views[0].Entries[0].Rank)

	assert.Contains(t, hdr.String(), "Source: file:scores.json (View: daily)")
	assert.Contains(t, hdr.String(), "Europe/London")
}

func TestRunBoardsSuppressHeader(t *testing.T) {
	cfg := testConfig(t)
	src := newSource(testRecords())

	var out, hdr bytes.Buffer
	require.NoError(t, runBoards(WithSuppressHeader(context.Background()), &out, &hdr, cfg, src, nil))
	assert.Empty(t, hdr.String())
	assert.NotEmpty(t, out.String())
}

func TestRunTimeseriesCSV(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output = schema.CSVOut
	src := newSource(testRecords())

	var out, hdr bytes.Buffer
	require.NoError(t, runTimeseries(context.Background(), &out, &hdr, cfg, src, nil))

	assert.Contains(t, out.String(), "date,Ada,Bob,Cy,global_average")
	assert.Contains(t, hdr.String(), "Through: latest record")
	assert.Contains(t, hdr.String(), "players: all")
}

func TestRunTimeseriesLoadError(t *testing.T) {
	cfg := testConfig(t)
	src := &contract.MockSnapshotSource{}
	src.On("Load", mock.Anything).Return(nil, errors.New("boom"))

	var out, hdr bytes.Buffer
	err := runTimeseries(context.Background(), &out, &hdr, cfg, src, nil)
	assert.EqualError(t, err, "boom")
	assert.Empty(t, out.String())
}

func TestGetLeaderboardsNoSource(t *testing.T) {
	cfg := testConfig(t)
	_, _, err := GetLeaderboards(context.Background(), cfg, nil)
	assert.Error(t, err)

	_, _, err = GetTimeseries(context.Background(), cfg, nil)
	assert.Error(t, err)
}
