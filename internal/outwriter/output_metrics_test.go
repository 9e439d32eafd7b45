package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricsConfig(output schema.OutputMode) *contract.Config {
	return &contract.Config{
		Output:   output,
		Timezone: "America/New_York",
		Params:   schema.DefaultRatingParams(),
	}
}

func TestBuildMetricsRenderModel(t *testing.T) {
	model := buildMetricsRenderModel(schema.DefaultRatingParams(), "")
	assert.Equal(t, schema.DefaultTimezone, model.Timezone)
	require.Len(t, model.Views, len(schema.OrderedViews))
	for i, view := range schema.OrderedViews {
		assert.Equal(t, string(view), model.Views[i].Name)
	}
	assert.Contains(t, model.Rating[0], "20.00")
	assert.Contains(t, model.Rating[1], "40.00")
	assert.Contains(t, model.Rating[2], "0.20")
}

func TestWriteMetricsDefinitionsText(t *testing.T) {
	cfg := metricsConfig(schema.TextOut)
	cfg.Params.Alpha = 10

	var buf bytes.Buffer
	require.NoError(t, WriteMetricsDefinitions(&buf, cfg))
	out := buf.String()
	assert.Contains(t, out, "Wordboard Scoring")
	assert.Contains(t, out, "America/New_York")
	assert.Contains(t, out, "10.00 * mean")
	assert.Contains(t, out, "Wooden spoon: Who fails to finish the most")
	assert.Contains(t, out, "ties by DNF count, then name")
}

func TestWriteMetricsDefinitionsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMetricsDefinitions(&buf, metricsConfig(schema.JSONOut)))

	var model schema.MetricsRenderModel
	require.NoError(t, json.Unmarshal(buf.Bytes(), &model))
	assert.Equal(t, schema.DefaultRatingParams(), model.Params)
	assert.Len(t, model.Views, 6)
}

func TestWriteMetricsDefinitionsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMetricsDefinitions(&buf, metricsConfig(schema.CSVOut)))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7)
	assert.Equal(t, "view", records[0][0])
	assert.Equal(t, "daily", records[1][0])
}

func TestWriteMetricsDefinitionsParquet(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteMetricsDefinitions(&buf, metricsConfig(schema.ParquetOut)))
}

func TestOutWriter(t *testing.T) {
	var buf bytes.Buffer
	ow := NewOutWriter(&buf)
	require.NoError(t, ow.WriteMetrics(metricsConfig(schema.CSVOut)))
	assert.True(t, strings.HasPrefix(buf.String(), "view,"))

	buf.Reset()
	require.NoError(t, ow.WriteBoards(sampleBoards(), &contract.Config{Output: schema.JSONOut, View: schema.DailyView}, 0))
	assert.Contains(t, buf.String(), `"view": "daily"`)

	buf.Reset()
	require.NoError(t, ow.WriteTimeseries(sampleSeries(), &contract.Config{Output: schema.CSVOut, Precision: 2}, 0))
	assert.True(t, strings.HasPrefix(buf.String(), "date,"))
}
