package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/internal/parquet"
	"github.com/huangsam/wordboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteTimeseriesResults outputs the timeseries results, dispatching based on the output format configured.
func WriteTimeseriesResults(w io.Writer, result schema.TimeseriesResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeTo(w, cfg.OutputFile, func(out io.Writer) error {
			return writeJSONResultsForTimeseries(out, result)
		}, "Wrote JSON timeseries results"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeTo(w, cfg.OutputFile, func(out io.Writer) error {
			return writeCSVResultsForTimeseries(out, result, fmtFloat)
		}, "Wrote CSV timeseries results"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return ErrParquetNeedsFile
		}
		if err := writeWithFile(cfg.OutputFile, func(out io.Writer) error {
			return parquet.WriteSeries(out, parquet.ConvertSeries(result))
		}, "Wrote Parquet timeseries results"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := writeTo(w, cfg.OutputFile, func(out io.Writer) error {
			return writeTimeseriesTable(out, result, cfg, fmtFloat, duration)
		}, "Wrote timeseries table"); err != nil {
			return fmt.Errorf("error writing timeseries table output: %w", err)
		}
	}
	return nil
}

// writeTimeseriesTable prints the series as a date x player pivot with the global average last.
func writeTimeseriesTable(w io.Writer, result schema.TimeseriesResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	title := heading("📈", fmt.Sprintf("Player ratings over time (%s)", result.Mode), cfg.UseEmojis)
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if len(result.Points) == 0 {
		if _, err := fmt.Fprintln(w, "No valid records to plot."); err != nil {
			return err
		}
		return nil
	}

	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"Date"}
	headers = append(headers, schema.AbbreviatePlayers(result.Players)...)
	headers = append(headers, "Global")
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	data := make([][]string, 0, len(result.Points))
	for _, p := range result.Points {
		row := pivotRow(p, result.Players, fmtFloat)
		row[0] = p.Date.String()
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Plotted %d players over %d days (gaps connected: %t). Excluded records: %d, future: %d\n",
		len(result.Players), len(result.Points), result.ConnectGaps, result.ExcludedRecords, result.FutureRecords); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Timeseries computed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// pivotRow lays out one day as [date, player values..., global], leaving missing cells blank.
// The date cell is left for the caller to fill.
func pivotRow(p schema.SeriesPoint, players []string, fmtFloat func(float64) string) []string {
	row := make([]string, 0, len(players)+2)
	row = append(row, "")
	for _, name := range players {
		if v, ok := p.Values[name]; ok {
			row = append(row, fmtFloat(v))
		} else {
			row = append(row, "")
		}
	}
	if p.HasGlobal {
		row = append(row, fmtFloat(p.GlobalAverage))
	} else {
		row = append(row, "")
	}
	return row
}
