package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/internal/parquet"
)

// ErrNoHistory is returned when there are no runs to export.
var ErrNoHistory = errors.New("no run history found to export")

// ExecuteHistoryExport exports every run and standing from store to Parquet files
// named <outputFile>.runs.parquet and <outputFile>.standings.parquet.
func ExecuteHistoryExport(out io.Writer, store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history tracking is not enabled; set --history-backend")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return ErrNoHistory
	}

	_, _ = fmt.Fprintf(out, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(out, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(out, "Total standings: %d\n", status.TotalStandings)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	standings, err := store.GetAllStandings()
	if err != nil {
		return fmt.Errorf("failed to retrieve standings: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	parquetRuns := parquet.ConvertRunRecords(runs)
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	standingsFile := outputFile + ".standings.parquet"
	parquetStandings := parquet.ConvertStandingRecords(standings)
	if err := parquet.WriteStandingsParquet(parquetStandings, standingsFile); err != nil {
		return fmt.Errorf("failed to write standings: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Exported %d standings to: %s\n", len(parquetStandings), standingsFile)

	return nil
}
