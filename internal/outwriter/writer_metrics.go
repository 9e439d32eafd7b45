package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/wordboard/schema"
)

// writeJSONMetrics writes the metrics definitions in JSON format.
func writeJSONMetrics(w io.Writer, renderModel *schema.MetricsRenderModel) error {
	return writeJSON(w, renderModel)
}

// writeCSVMetrics writes the view definitions in CSV format.
func writeCSVMetrics(w io.Writer, renderModel *schema.MetricsRenderModel) error {
	header := []string{"view", "purpose", "metric", "sort", "tie_break", "minimum"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, view := range renderModel.Views {
			record := []string{
				view.Name,
				view.Purpose,
				view.Formula,
				view.Sort,
				view.TieBreak,
				view.Minimum,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
