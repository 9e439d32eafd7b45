package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/internal/parquet"
	"github.com/huangsam/wordboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteBoardResults outputs the leaderboards, dispatching based on the output format configured.
// Only the views selected by cfg.View are written.
func WriteBoardResults(w io.Writer, boards schema.Leaderboards, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	views := schema.Views(cfg.View)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeTo(w, cfg.OutputFile, func(out io.Writer) error {
			return writeJSONResultsForBoards(out, boards, views)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeTo(w, cfg.OutputFile, func(out io.Writer) error {
			return writeCSVResultsForBoards(out, boards, views, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return ErrParquetNeedsFile
		}
		rows := make([]parquet.BoardRow, 0)
		for _, view := range views {
			rows = append(rows, parquet.ConvertEntries(boards.AsOf, schema.EnrichEntries(view, boards.View(view)))...)
		}
		if err := writeWithFile(cfg.OutputFile, func(out io.Writer) error {
			return parquet.WriteBoards(out, rows)
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable tables
		if err := writeTo(w, cfg.OutputFile, func(out io.Writer) error {
			return writeBoardTables(out, boards, views, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// viewEmoji is the heading decoration of each view.
var viewEmoji = map[schema.ViewKind]string{
	schema.DailyView:       "📅",
	schema.WeeklyView:      "🗓️ ",
	schema.AllTimeView:     "🏆",
	schema.RawAverageView:  "🧮",
	schema.MostActiveView:  "🔥",
	schema.WoodenSpoonView: "🥄",
}

// metricHeader names the metric column of a view.
func metricHeader(view schema.ViewKind) string {
	switch view {
	case schema.DailyView:
		return "Avg"
	case schema.WeeklyView:
		return "Week Avg"
	case schema.AllTimeView:
		return "Rating"
	case schema.RawAverageView:
		return "Average"
	case schema.MostActiveView:
		return "Plays"
	case schema.WoodenSpoonView:
		return "DNF %"
	default:
		return "Metric"
	}
}

// formatMetric renders the metric of an entry for its view.
func formatMetric(view schema.ViewKind, e schema.BoardEntry, fmtFloat func(float64) string, intFmt string) string {
	if view == schema.MostActiveView {
		return fmt.Sprintf(intFmt, e.Attempts)
	}
	return fmtFloat(e.Metric)
}

// detailHeaders returns the extra columns shown by --detail for a view.
func detailHeaders(view schema.ViewKind) []string {
	switch view {
	case schema.DailyView:
		return []string{"First Submit"}
	case schema.WeeklyView:
		return []string{"Days", "Total"}
	case schema.AllTimeView:
		return []string{"Raw", "Bayes", "Recency", "Bonus", "Idle"}
	case schema.WoodenSpoonView:
		return []string{"DNFs", "Last Played"}
	default:
		return []string{"Last Played"}
	}
}

// detailCells returns the --detail values of an entry, matching detailHeaders.
func detailCells(view schema.ViewKind, e schema.BoardEntry, loc *time.Location, fmtFloat func(float64) string, intFmt string) []string {
	switch view {
	case schema.DailyView:
		submitted := ""
		if !e.FirstSubmittedAt.IsZero() {
			submitted = e.FirstSubmittedAt.In(loc).Format("15:04:05")
		}
		return []string{submitted}
	case schema.WeeklyView:
		return []string{fmt.Sprintf(intFmt, e.PlayedDays), fmt.Sprintf(intFmt, e.WeeklyTotal)}
	case schema.AllTimeView:
		return []string{
			fmtFloat(e.RawAverage),
			fmtFloat(e.BayesAverage),
			fmtFloat(e.RecencyFactor),
			fmtFloat(e.AttemptsBonus),
			fmt.Sprintf(intFmt, e.DaysSincePlay),
		}
	case schema.WoodenSpoonView:
		return []string{fmt.Sprintf(intFmt, e.DNFCount), formatDate(e.LastPlayed)}
	default:
		return []string{formatDate(e.LastPlayed)}
	}
}

// formatDate renders a date, leaving the zero date blank.
func formatDate(d schema.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

// viewSubtitle describes the window a view covers.
func viewSubtitle(view schema.ViewKind, boards schema.Leaderboards) string {
	switch view {
	case schema.DailyView:
		return fmt.Sprintf("Plays on %s", boards.AsOf)
	case schema.WeeklyView:
		if len(boards.WeekDays) == 0 {
			return ""
		}
		first, last := boards.WeekDays[0], boards.WeekDays[len(boards.WeekDays)-1]
		return fmt.Sprintf("Weekdays %s to %s (missed days count as %d)", first, last, schema.DNFScore)
	case schema.AllTimeView:
		return fmt.Sprintf("Minimum %d attempts, lower is better", schema.MinAllTimeAttempts)
	case schema.RawAverageView:
		return fmt.Sprintf("Minimum %d attempts, no adjustments", schema.MinRawAttempts)
	case schema.MostActiveView:
		return "Total valid attempts"
	case schema.WoodenSpoonView:
		return "Share of attempts that did not finish"
	default:
		return ""
	}
}

// writeBoardTables renders one table per selected view followed by a summary.
func writeBoardTables(w io.Writer, boards schema.Leaderboards, views []schema.ViewKind, cfg *contract.Config,
	fmtFloat func(float64) string, intFmt string, duration time.Duration,
) error {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	nameWidth := GetMaxTableNameWidth(cfg)

	for i, view := range views {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		title := heading(viewEmoji[view], schema.ViewTitle(view), cfg.UseEmojis)
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
		if sub := viewSubtitle(view, boards); sub != "" {
			if _, err := fmt.Fprintln(w, sub); err != nil {
				return err
			}
		}

		entries := boards.View(view)
		if len(entries) == 0 {
			if _, err := fmt.Fprintln(w, "No entries."); err != nil {
				return err
			}
			continue
		}
		if err := writeViewTable(w, view, entries, cfg, loc, nameWidth, fmtFloat, intFmt); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\nAs of %s (%s). Valid records: %d, excluded: %d, future: %d. Global mean: %s\n",
		boards.AsOf, boards.Timezone, boards.ValidRecords, boards.ExcludedRecords, boards.FutureRecords,
		fmtFloat(boards.GlobalMean)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Leaderboards computed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeViewTable renders the entries of a single view.
func writeViewTable(w io.Writer, view schema.ViewKind, entries []schema.BoardEntry, cfg *contract.Config, loc *time.Location,
	nameWidth int, fmtFloat func(float64) string, intFmt string,
) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	labeled := schema.GuessScaleView(view)
	headers := []string{"Rank", "Player", metricHeader(view), "Attempts"}
	if labeled {
		headers = append(headers, "Label")
	}
	if cfg.Detail {
		headers = append(headers, detailHeaders(view)...)
	}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	data := make([][]string, 0, len(entries))
	for _, e := range entries {
		row := []string{
			strconv.Itoa(e.Rank),
			contract.TruncateName(e.Name, nameWidth),
			formatMetric(view, e, fmtFloat, intFmt),
			fmt.Sprintf(intFmt, e.Attempts),
		}
		if labeled {
			row = append(row, labelFor(e.Metric, cfg.UseColors))
		}
		if cfg.Detail {
			row = append(row, detailCells(view, e, loc, fmtFloat, intFmt)...)
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
