package outwriter

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/schema"
)

// WriteMetricsDefinitions displays how every leaderboard view is scored, using the active rating parameters.
// This is a static display that does not read any snapshot.
func WriteMetricsDefinitions(w io.Writer, cfg *contract.Config) error {
	renderModel := buildMetricsRenderModel(cfg.Params, cfg.Timezone)

	switch cfg.Output {
	case schema.JSONOut:
		return writeTo(w, cfg.OutputFile, func(out io.Writer) error {
			return writeJSONMetrics(out, renderModel)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeTo(w, cfg.OutputFile, func(out io.Writer) error {
			return writeCSVMetrics(out, renderModel)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errors.New("parquet output is not supported for metrics")
	default:
		return writeTo(w, cfg.OutputFile, func(out io.Writer) error {
			return writeMetricsText(out, renderModel, cfg)
		}, "Wrote text")
	}
}

// writeMetricsText displays metrics in human-readable text format.
func writeMetricsText(w io.Writer, renderModel *schema.MetricsRenderModel, cfg *contract.Config) error {
	title := heading("🧩", renderModel.Title, cfg.UseEmojis)
	if _, err := fmt.Fprintf(w, "%s\n\n%s\nDays are counted in %s.\n\n", title, renderModel.Description, renderModel.Timezone); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, heading("📐", "Rating formula", cfg.UseEmojis)); err != nil {
		return err
	}
	for _, line := range renderModel.Rating {
		if _, err := fmt.Fprintf(w, "   %s\n", line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	for _, view := range renderModel.Views {
		name := heading(viewEmoji[schema.ViewKind(view.Name)], schema.ViewTitle(schema.ViewKind(view.Name)), cfg.UseEmojis)
		if _, err := fmt.Fprintf(w, "%s: %s\n", name, view.Purpose); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Metric: %s\n", view.Formula); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Order: %s, ties by %s\n", view.Sort, view.TieBreak); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Eligible: %s\n\n", view.Minimum); err != nil {
			return err
		}
	}
	return nil
}

// buildMetricsRenderModel constructs the complete render model with all processed data.
func buildMetricsRenderModel(params schema.RatingParams, timezone string) *schema.MetricsRenderModel {
	if timezone == "" {
		timezone = schema.DefaultTimezone
	}
	return &schema.MetricsRenderModel{
		Title:       "Wordboard Scoring",
		Description: fmt.Sprintf("Every attempt is normalized to 1..%d guesses; a DNF counts as %d.", schema.DNFScore, schema.DNFScore),
		Timezone:    timezone,
		Params:      params,
		Rating: []string{
			fmt.Sprintf("bayes    = (total + %.2f * mean) / (attempts + %.2f)", params.Alpha, params.Alpha),
			fmt.Sprintf("recency  = 1 + days_since_play / %.2f", params.RecencyScaleDays),
			fmt.Sprintf("bonus    = %.2f * ln(attempts + 1)", params.AttemptsBonusScale),
			"adjusted = bayes * recency - bonus",
			fmt.Sprintf("mean     = average of all valid attempts (%.2f when there are none)", params.NeutralPrior),
		},
		Views: []schema.MetricsView{
			{
				Name:     string(schema.DailyView),
				Purpose:  "Best players of the as-of day",
				Formula:  "average guesses of the day's attempts",
				Sort:     "ascending",
				TieBreak: "earliest submission, then name",
				Minimum:  "one attempt on the as-of day",
			},
			{
				Name:     string(schema.WeeklyView),
				Purpose:  "Consistency over the latest five weekdays",
				Formula:  fmt.Sprintf("sum of best score per weekday, missing days count %d, divided by %d", schema.DNFScore, schema.WeeklyDays),
				Sort:     "ascending",
				TieBreak: "name",
				Minimum:  "one weekday attempt in the window",
			},
			{
				Name:     string(schema.AllTimeView),
				Purpose:  "Overall standing with shrinkage, inactivity decay and a volume bonus",
				Formula:  "adjusted rating",
				Sort:     "ascending",
				TieBreak: "name",
				Minimum:  fmt.Sprintf("%d attempts", schema.MinAllTimeAttempts),
			},
			{
				Name:     string(schema.RawAverageView),
				Purpose:  "Plain average with no adjustments",
				Formula:  "total guesses / attempts",
				Sort:     "ascending",
				TieBreak: "name",
				Minimum:  fmt.Sprintf("%d attempts", schema.MinRawAttempts),
			},
			{
				Name:     string(schema.MostActiveView),
				Purpose:  "Who plays the most",
				Formula:  "valid attempts",
				Sort:     "descending",
				TieBreak: "name",
				Minimum:  "one attempt",
			},
			{
				Name:     string(schema.WoodenSpoonView),
				Purpose:  "Who fails to finish the most",
				Formula:  "DNF attempts / attempts * 100",
				Sort:     "descending",
				TieBreak: "DNF count, then name",
				Minimum:  "one DNF",
			},
		},
	}
}
