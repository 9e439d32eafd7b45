package schema

import "time"

// RunRecord represents a row from the wordboard_runs table.
type RunRecord struct {
	RunID         int64
	RunUID        string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalPlayers  int32
	ConfigParams  *string
}

// StandingRecord represents a row from the wordboard_standings table.
type StandingRecord struct {
	RunID    int64
	View     string
	Rank     int32
	Player   string
	Metric   float64
	Attempts int32
	AsOf     string
}
