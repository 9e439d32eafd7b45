// Package parquet provides data structures and functions for exporting wordboard
// data to Parquet files and reading score snapshots from them, using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/wordboard/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single leaderboard run with metadata.
// This struct maps to the wordboard_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// RunUID is the globally unique identifier of the run
	RunUID string `parquet:"run_uid,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalPlayers is the number of distinct players seen in the snapshot
	TotalPlayers int32 `parquet:"total_players,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// Standing represents one ranked row of a leaderboard view within a run.
// This struct maps to the wordboard_standings database table.
type Standing struct {
	RunID    int64   `parquet:"run_id,snappy"`
	View     string  `parquet:"view,dict,snappy"`
	Rank     int32   `parquet:"rank,snappy"`
	Player   string  `parquet:"player,snappy"`
	Metric   float64 `parquet:"metric,snappy"`
	Attempts int32   `parquet:"attempts,snappy"`
	AsOf     string  `parquet:"as_of,snappy"`
}

// ScoreRow is the on-disk layout of a score record in a Parquet snapshot.
type ScoreRow struct {
	Name         string   `parquet:"name,snappy"`
	Guesses      *float64 `parquet:"guesses,optional,snappy"`
	DNF          bool     `parquet:"dnf,snappy"`
	SubmittedAt  string   `parquet:"submitted_at,snappy"`
	PuzzleNumber string   `parquet:"puzzle_number,snappy"`
}

// BoardRow is the long-format export of one leaderboard entry.
type BoardRow struct {
	AsOf          string  `parquet:"as_of,snappy"`
	View          string  `parquet:"view,dict,snappy"`
	Rank          int32   `parquet:"rank,snappy"`
	Player        string  `parquet:"player,snappy"`
	Metric        float64 `parquet:"metric,snappy"`
	Attempts      int32   `parquet:"attempts,snappy"`
	DNFCount      int32   `parquet:"dnf_count,snappy"`
	PlayedDays    int32   `parquet:"played_days,snappy"`
	WeeklyTotal   int32   `parquet:"weekly_total,snappy"`
	RawAverage    float64 `parquet:"raw_average,snappy"`
	BayesAverage  float64 `parquet:"bayes_average,snappy"`
	RecencyFactor float64 `parquet:"recency_factor,snappy"`
	AttemptsBonus float64 `parquet:"attempts_bonus,snappy"`
	DaysSincePlay int32   `parquet:"days_since_play,snappy"`
	Label         string  `parquet:"label,dict,snappy"`
}

// SeriesRow is the long-format export of one time-series value.
// The global average line is stored with an empty player name.
type SeriesRow struct {
	Date   string  `parquet:"date,snappy"`
	Player string  `parquet:"player,snappy"`
	Mode   string  `parquet:"mode,dict,snappy"`
	Value  float64 `parquet:"value,snappy"`
}

// GlobalSeriesName is the player value used for the global average line.
const GlobalSeriesName = ""

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteStandingsParquet writes a slice of Standing structs to a Parquet file.
func WriteStandingsParquet(data []Standing, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteScoresParquet writes score records to a Parquet file.
func WriteScoresParquet(records []schema.ScoreRecord, outputPath string) error {
	return writeFile(ConvertScoreRecords(records), outputPath)
}

// WriteBoards writes the long-format rows of leaderboard entries to w.
func WriteBoards(w io.Writer, data []BoardRow) error {
	return write(w, data)
}

// WriteSeries writes the long-format rows of a time series to w.
func WriteSeries(w io.Writer, data []SeriesRow) error {
	return write(w, data)
}

// ReadScores reads every score row from a Parquet snapshot.
// Columns are matched by name, so extra columns are ignored.
func ReadScores(r io.ReaderAt) (records []schema.ScoreRecord, err error) {
	// The reader panics on files that are not valid Parquet
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("failed to open parquet file: %v", p)
		}
	}()

	reader := parquet.NewGenericReader[ScoreRow](r)
	defer func() { _ = reader.Close() }()

	rows := make([]ScoreRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read parquet rows: %w", err)
	}
	return ConvertScoreRows(rows[:n]), nil
}

func writeFile[T any](data []T, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return write(file, data)
}

func write[T any](w io.Writer, data []T) error {
	// The schema is derived from the struct tags of T
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			RunUID:        record.RunUID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalPlayers:  record.TotalPlayers,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertStandingRecords converts schema.StandingRecord to Standing for Parquet export.
func ConvertStandingRecords(records []schema.StandingRecord) []Standing {
	result := make([]Standing, len(records))
	for i, record := range records {
		result[i] = Standing{
			RunID:    record.RunID,
			View:     record.View,
			Rank:     record.Rank,
			Player:   record.Player,
			Metric:   record.Metric,
			Attempts: record.Attempts,
			AsOf:     record.AsOf,
		}
	}
	return result
}

// ConvertScoreRecords converts score records to their Parquet layout.
func ConvertScoreRecords(records []schema.ScoreRecord) []ScoreRow {
	result := make([]ScoreRow, len(records))
	for i, record := range records {
		result[i] = ScoreRow{
			Name:         record.Name,
			Guesses:      record.Guesses,
			DNF:          record.DNF,
			SubmittedAt:  record.SubmittedAt,
			PuzzleNumber: record.PuzzleNumber,
		}
	}
	return result
}

// ConvertScoreRows converts Parquet rows back into score records.
func ConvertScoreRows(rows []ScoreRow) []schema.ScoreRecord {
	result := make([]schema.ScoreRecord, len(rows))
	for i, row := range rows {
		result[i] = schema.ScoreRecord{
			Name:         row.Name,
			Guesses:      row.Guesses,
			DNF:          row.DNF,
			SubmittedAt:  row.SubmittedAt,
			PuzzleNumber: row.PuzzleNumber,
		}
	}
	return result
}

// ConvertEntries flattens enriched leaderboard entries into long-format rows.
func ConvertEntries(asOf schema.Date, entries []schema.EnrichedEntry) []BoardRow {
	result := make([]BoardRow, len(entries))
	for i, e := range entries {
		result[i] = BoardRow{
			AsOf:          asOf.String(),
			View:          string(e.View),
			Rank:          int32(e.Rank),
			Player:        e.Name,
			Metric:        e.Metric,
			Attempts:      int32(e.Attempts),
			DNFCount:      int32(e.DNFCount),
			PlayedDays:    int32(e.PlayedDays),
			WeeklyTotal:   int32(e.WeeklyTotal),
			RawAverage:    e.RawAverage,
			BayesAverage:  e.BayesAverage,
			RecencyFactor: e.RecencyFactor,
			AttemptsBonus: e.AttemptsBonus,
			DaysSincePlay: int32(e.DaysSincePlay),
			Label:         e.Label,
		}
	}
	return result
}

// ConvertSeries flattens a time series into long-format rows, one per
// (date, player) value plus one per global average point.
func ConvertSeries(result schema.TimeseriesResult) []SeriesRow {
	rows := make([]SeriesRow, 0, len(result.Points)*(len(result.Players)+1))
	mode := string(result.Mode)
	for _, p := range result.Points {
		date := p.Date.String()
		for _, name := range result.Players {
			v, ok := p.Values[name]
			if !ok {
				continue
			}
			rows = append(rows, SeriesRow{Date: date, Player: name, Mode: mode, Value: v})
		}
		if p.HasGlobal {
			rows = append(rows, SeriesRow{Date: date, Player: GlobalSeriesName, Mode: mode, Value: p.GlobalAverage})
		}
	}
	return rows
}
