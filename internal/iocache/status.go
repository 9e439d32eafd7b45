package iocache

import (
	"fmt"
	"io"
	"sort"

	"github.com/huangsam/wordboard/schema"
)

// PrintCacheStatus prints cache status information.
func PrintCacheStatus(out io.Writer, status schema.CacheStatus) {
	_, _ = fmt.Fprintf(out, "Cache Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(out, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(out, "Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		_, _ = fmt.Fprintf(out, "Last Entry: %s\n", status.LastEntryTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(out, "Oldest Entry: %s\n", status.OldestEntryTime.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintf(out, "Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintHistoryStatus prints run history status information.
func PrintHistoryStatus(out io.Writer, status schema.HistoryStatus) {
	_, _ = fmt.Fprintf(out, "History Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(out, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(out, "Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		_, _ = fmt.Fprintf(out, "Last Run ID: %d\n", status.LastRunID)
		_, _ = fmt.Fprintf(out, "Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(out, "Oldest Run: %s\n", status.OldestRunTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(out, "Total Standings: %d\n", status.TotalStandings)
	}

	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	_, _ = fmt.Fprintln(out, "Table Sizes:")
	for _, table := range tables {
		_, _ = fmt.Fprintf(out, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
