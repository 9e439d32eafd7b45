package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/wordboard/schema"
)

// jsonView is one ranked view in JSON output.
type jsonView struct {
	View    schema.ViewKind        `json:"view"`
	Title   string                 `json:"title"`
	Entries []schema.EnrichedEntry `json:"entries"`
}

// jsonBoards is the JSON document for leaderboard output.
type jsonBoards struct {
	AsOf            schema.Date         `json:"as_of"`
	Timezone        string              `json:"timezone"`
	GlobalMean      float64             `json:"global_mean"`
	Params          schema.RatingParams `json:"params"`
	ValidRecords    int                 `json:"valid_records"`
	ExcludedRecords int                 `json:"excluded_records"`
	FutureRecords   int                 `json:"future_records"`
	WeekDays        []schema.Date       `json:"week_days"`
	Views           []jsonView          `json:"views"`
}

// writeJSONResultsForBoards writes the selected views with their run metadata.
func writeJSONResultsForBoards(w io.Writer, boards schema.Leaderboards, views []schema.ViewKind) error {
	output := jsonBoards{
		AsOf:            boards.AsOf,
		Timezone:        boards.Timezone,
		GlobalMean:      boards.GlobalMean,
		Params:          boards.Params,
		ValidRecords:    boards.ValidRecords,
		ExcludedRecords: boards.ExcludedRecords,
		FutureRecords:   boards.FutureRecords,
		WeekDays:        boards.WeekDays,
		Views:           make([]jsonView, 0, len(views)),
	}
	for _, view := range views {
		output.Views = append(output.Views, jsonView{
			View:    view,
			Title:   schema.ViewTitle(view),
			Entries: schema.EnrichEntries(view, boards.View(view)),
		})
	}
	return writeJSON(w, output)
}

// boardCSVHeader is the long-format column list shared by every view.
var boardCSVHeader = []string{
	"as_of",
	"view",
	"rank",
	"player",
	"metric",
	"attempts",
	"label",
	"played_days",
	"weekly_total",
	"raw_average",
	"bayes_average",
	"recency_factor",
	"attempts_bonus",
	"days_since_play",
	"dnf_count",
	"last_played",
}

// writeCSVResultsForBoards writes every selected view into one long CSV table.
func writeCSVResultsForBoards(w io.Writer, boards schema.Leaderboards, views []schema.ViewKind, fmtFloat func(float64) string, intFmt string) error {
	return writeCSVWithHeader(w, boardCSVHeader, func(cw *csv.Writer) error {
		asOf := boards.AsOf.String()
		for _, view := range views {
			for _, e := range schema.EnrichEntries(view, boards.View(view)) {
				rec := []string{
					asOf,
					string(view),
					strconv.Itoa(e.Rank),
					e.Name,
					fmtFloat(e.Metric),
					fmt.Sprintf(intFmt, e.Attempts),
					e.Label,
					fmt.Sprintf(intFmt, e.PlayedDays),
					fmt.Sprintf(intFmt, e.WeeklyTotal),
					fmtFloat(e.RawAverage),
					fmtFloat(e.BayesAverage),
					fmtFloat(e.RecencyFactor),
					fmtFloat(e.AttemptsBonus),
					fmt.Sprintf(intFmt, e.DaysSincePlay),
					fmt.Sprintf(intFmt, e.DNFCount),
					formatDate(e.LastPlayed),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
