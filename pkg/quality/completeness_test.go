package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/lifetable/pkg/dataset"
)

func TestCompletenessFillRates(t *testing.T) {
	ds := &dataset.Dataset{Rows: []dataset.Row{
		row("TUR", 2020, "Turkey", map[dataset.Metric]float64{
			dataset.MetricOWID:      75.0,
			dataset.MetricWorldBank: 74.8,
		}),
		row("USA", 2020, "United States", map[dataset.Metric]float64{
			dataset.MetricOWID: 77.0,
		}),
	}}

	report := New(Config{}).Completeness(ds)
	assert.Equal(t, 2, report.TotalRows)

	fills := make(map[string]float64)
	for _, col := range report.Columns {
		fills[col.Column] = col.FillRate
	}
	assert.InDelta(t, 100.0, fills["iso3"], 1e-9)
	assert.InDelta(t, 100.0, fills["country_name"], 1e-9)
	assert.InDelta(t, 100.0, fills["life_exp_owid"], 1e-9)
	assert.InDelta(t, 50.0, fills["life_exp_wb"], 1e-9)
	assert.InDelta(t, 0.0, fills["hale_who"], 1e-9)

	// (100 + 50 + 0 + 0 + 0 + 0) / 6 metrics.
	assert.InDelta(t, 25.0, report.AverageMetricFill, 1e-9)
	assert.False(t, report.Pass, "25%% average fill is under the 30%% threshold")
}

func TestCompletenessPassAboveThreshold(t *testing.T) {
	ds := &dataset.Dataset{Rows: []dataset.Row{
		row("TUR", 2020, "Turkey", map[dataset.Metric]float64{
			dataset.MetricOWID:      75.0,
			dataset.MetricWorldBank: 74.8,
			dataset.MetricUNICEF:    74.9,
		}),
	}}

	report := New(Config{}).Completeness(ds)
	// Three of six metrics filled: 50% average.
	assert.InDelta(t, 50.0, report.AverageMetricFill, 1e-9)
	assert.True(t, report.Pass)
}

func TestCompletenessEmptyDataset(t *testing.T) {
	report := New(Config{}).Completeness(&dataset.Dataset{})
	require.Equal(t, 0, report.TotalRows)
	assert.InDelta(t, 0.0, report.AverageMetricFill, 1e-9)
	assert.False(t, report.Pass)
}
