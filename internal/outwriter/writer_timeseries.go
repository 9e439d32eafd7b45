package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/huangsam/wordboard/schema"
)

// writeJSONResultsForTimeseries marshals the schema.TimeseriesResult to JSON and writes it.
func writeJSONResultsForTimeseries(w io.Writer, result schema.TimeseriesResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForTimeseries writes the series in wide format: one row per day,
// one column per player, and the global average last.
func writeCSVResultsForTimeseries(w io.Writer, result schema.TimeseriesResult, fmtFloat func(float64) string) error {
	header := make([]string, 0, len(result.Players)+2)
	header = append(header, "date")
	header = append(header, result.Players...)
	header = append(header, "global_average")

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range result.Points {
			row := pivotRow(p, result.Players, fmtFloat)
			row[0] = p.Date.String()
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
