// Package outwriter has output and writer logic.
package outwriter

import (
	"io"
	"time"

	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct {
	w io.Writer
}

// NewOutWriter creates a new output writer that renders to w unless an output file is configured.
func NewOutWriter(w io.Writer) *OutWriter {
	return &OutWriter{w: w}
}

// WriteBoards prints leaderboards using the configured output format.
func (ow *OutWriter) WriteBoards(boards schema.Leaderboards, cfg *contract.Config, duration time.Duration) error {
	return WriteBoardResults(ow.w, boards, cfg, duration)
}

// WriteTimeseries prints a reconstructed time series using the configured output format.
func (ow *OutWriter) WriteTimeseries(result schema.TimeseriesResult, cfg *contract.Config, duration time.Duration) error {
	return WriteTimeseriesResults(ow.w, result, cfg, duration)
}

// WriteMetrics prints the rating and view definitions using the configured output format.
func (ow *OutWriter) WriteMetrics(cfg *contract.Config) error {
	return WriteMetricsDefinitions(ow.w, cfg)
}
