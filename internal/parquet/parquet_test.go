package parquet

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/wordboard/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRuns() []schema.RunRecord {
	now := time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)
	end := now.Add(1500 * time.Millisecond)
	duration := int32(1500)
	params := `{"view":"all","timezone":"Europe/London"}`

	return []schema.RunRecord{
		{
			RunID:         1,
			RunUID:        "0b5e4a0c-7c57-4b7e-9b0c-3f4f8f2d6a11",
			StartTime:     now,
			EndTime:       &end,
			RunDurationMs: &duration,
			TotalPlayers:  3,
			ConfigParams:  &params,
		},
		{
			RunID:        2,
			RunUID:       "3a4d7e55-14f9-4c63-8f0e-69d8c1bb2f40",
			StartTime:    now.Add(time.Hour),
			TotalPlayers: 0,
		},
	}
}

func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func TestParquetSchemaTags(t *testing.T) {
	runSchema := parquet.SchemaOf(new(Run))
	for _, col := range []string{"run_id", "run_uid", "start_time", "end_time", "run_duration_ms", "total_players", "config_params"} {
		_, ok := runSchema.Lookup(col)
		assert.True(t, ok, "Run should have column %s", col)
	}

	standingSchema := parquet.SchemaOf(new(Standing))
	for _, col := range []string{"run_id", "view", "rank", "player", "metric", "attempts", "as_of"} {
		_, ok := standingSchema.Lookup(col)
		assert.True(t, ok, "Standing should have column %s", col)
	}

	scoreSchema := parquet.SchemaOf(new(ScoreRow))
	guesses, ok := scoreSchema.Lookup("guesses")
	require.True(t, ok)
	assert.True(t, guesses.Node.Optional(), "guesses should be nullable")
}

func TestWriteRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	data := ConvertRunRecords(sampleRuns())

	require.NoError(t, WriteRunsParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	readData := readAll[Run](t, outputPath)
	require.Len(t, readData, len(data))

	for i := range data {
		assert.Equal(t, data[i].RunID, readData[i].RunID)
		assert.Equal(t, data[i].RunUID, readData[i].RunUID)
		assert.Equal(t, data[i].TotalPlayers, readData[i].TotalPlayers)

		if data[i].EndTime == nil {
			assert.Nil(t, readData[i].EndTime, "EndTime should be nil")
		} else {
			require.NotNil(t, readData[i].EndTime)
			assert.WithinDuration(t, *data[i].EndTime, *readData[i].EndTime, time.Microsecond)
		}

		if data[i].ConfigParams == nil {
			assert.Nil(t, readData[i].ConfigParams, "ConfigParams should be nil")
		} else {
			require.NotNil(t, readData[i].ConfigParams)
			assert.Equal(t, *data[i].ConfigParams, *readData[i].ConfigParams)
		}
	}
}

func TestWriteStandingsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "standings.parquet")
	records := []schema.StandingRecord{
		{RunID: 1, View: "daily", Rank: 1, Player: "Ann", Metric: 3, Attempts: 1, AsOf: "2025-01-08"},
		{RunID: 1, View: "alltime", Rank: 2, Player: "Bob", Metric: 5.125, Attempts: 6, AsOf: "2025-01-08"},
	}

	require.NoError(t, WriteStandingsParquet(ConvertStandingRecords(records), outputPath))

	readData := readAll[Standing](t, outputPath)
	require.Len(t, readData, 2)
	assert.Equal(t, "alltime", readData[1].View)
	assert.Equal(t, "Bob", readData[1].Player)
	assert.InDelta(t, 5.125, readData[1].Metric, 1e-9)
	assert.Equal(t, int32(6), readData[1].Attempts)
}

func TestWriteRunsParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty_runs.parquet")

	require.NoError(t, WriteRunsParquet([]Run{}, outputPath), "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteStandingsParquet_InvalidPath(t *testing.T) {
	err := WriteStandingsParquet([]Standing{{RunID: 1}}, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}

func TestScoresRoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "scores.parquet")
	records := []schema.ScoreRecord{
		{Name: "Ann", Guesses: schema.GuessesOf(3), SubmittedAt: "2025-01-08T09:00:00Z", PuzzleNumber: "1302"},
		{Name: "Bob", DNF: true, SubmittedAt: "2025-01-08T10:00:00Z"},
		{Name: "Cat", Guesses: schema.GuessesOf(4.7), SubmittedAt: "2025-01-07T23:30:00Z"},
	}

	require.NoError(t, WriteScoresParquet(records, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	got, err := ReadScores(file)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Ann", got[0].Name)
	require.NotNil(t, got[0].Guesses)
	assert.InDelta(t, 3.0, *got[0].Guesses, 1e-9)
	assert.Equal(t, "1302", got[0].PuzzleNumber)

	assert.Nil(t, got[1].Guesses, "missing guesses should stay nil")
	assert.True(t, got[1].DNF)

	require.NotNil(t, got[2].Guesses)
	assert.InDelta(t, 4.7, *got[2].Guesses, 1e-9)
}

func TestReadScores_NotParquet(t *testing.T) {
	_, err := ReadScores(bytes.NewReader([]byte("name,guesses\nAnn,3\n")))
	assert.Error(t, err)
}

func TestConvertEntries(t *testing.T) {
	asOf := schema.NewDate(2025, time.January, 8)
	entries := schema.EnrichEntries(schema.AllTimeView, []schema.BoardEntry{
		{Rank: 1, Name: "Ann", Metric: 3.25, Attempts: 4, RawAverage: 3.5, BayesAverage: 3.9, DaysSincePlay: 2},
	})

	rows := ConvertEntries(asOf, entries)
	require.Len(t, rows, 1)
	assert.Equal(t, "2025-01-08", rows[0].AsOf)
	assert.Equal(t, "alltime", rows[0].View)
	assert.Equal(t, "Elite", rows[0].Label)
	assert.Equal(t, int32(2), rows[0].DaysSincePlay)
	assert.InDelta(t, 3.9, rows[0].BayesAverage, 1e-9)
}

func TestConvertSeries(t *testing.T) {
	d1 := schema.NewDate(2025, time.January, 6)
	d2 := d1.AddDays(1)
	result := schema.TimeseriesResult{
		Mode:    schema.BayesianSeries,
		Players: []string{"Ann", "Bob"},
		Points: []schema.SeriesPoint{
			{Date: d1, Values: map[string]float64{"Ann": 3.1}, GlobalAverage: 3.5, HasGlobal: true},
			{Date: d2, Values: map[string]float64{"Ann": 3.2, "Bob": 4.4}, GlobalAverage: 3.8, HasGlobal: true},
		},
	}

	rows := ConvertSeries(result)
	require.Len(t, rows, 5)
	assert.Equal(t, SeriesRow{Date: "2025-01-06", Player: "Ann", Mode: "bayesian", Value: 3.1}, rows[0])
	assert.Equal(t, GlobalSeriesName, rows[1].Player)
	assert.Equal(t, "Bob", rows[3].Player)

	var buf bytes.Buffer
	require.NoError(t, WriteSeries(&buf, rows))
	assert.Positive(t, buf.Len())
}
