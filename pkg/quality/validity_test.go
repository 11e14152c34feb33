package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/lifetable/pkg/dataset"
)

func TestValidityBounds(t *testing.T) {
	ds := &dataset.Dataset{Rows: []dataset.Row{
		row("AAA", 2020, "Lowland", map[dataset.Metric]float64{dataset.MetricOWID: 12.9}),
		row("BBB", 2020, "Highland", map[dataset.Metric]float64{dataset.MetricWorldBank: 95.5}),
		row("TUR", 2020, "Turkey", map[dataset.Metric]float64{dataset.MetricOWID: 75.0}),
	}}

	report := New(Config{}).Validity(ds)
	assert.False(t, report.Pass)
	require.Len(t, report.Violations, 2)

	// Violations carry the exact row so a human can judge the value.
	assert.Equal(t, "AAA", report.Violations[0].Key.Code)
	assert.Equal(t, dataset.MetricOWID, report.Violations[0].Metric)
	assert.InDelta(t, 12.9, report.Violations[0].Value, 1e-9)
	assert.Equal(t, "BBB", report.Violations[1].Key.Code)

	var owid MetricValidity
	for _, mv := range report.Metrics {
		if mv.Metric == dataset.MetricOWID {
			owid = mv
		}
	}
	assert.Equal(t, 1, owid.BelowBound)
	assert.Equal(t, 0, owid.AboveBound)
}

func TestValidityBoundaryValuesInclusive(t *testing.T) {
	ds := &dataset.Dataset{Rows: []dataset.Row{
		row("AAA", 2020, "Edge", map[dataset.Metric]float64{
			dataset.MetricOWID:      13.0,
			dataset.MetricWorldBank: 95.0,
		}),
	}}

	report := New(Config{}).Validity(ds)
	assert.True(t, report.Pass)
	assert.Empty(t, report.Violations)
}

func TestValidityYearWindow(t *testing.T) {
	ds := &dataset.Dataset{Rows: []dataset.Row{
		row("TUR", 1949, "Turkey", map[dataset.Metric]float64{dataset.MetricOWID: 50.0}),
		row("TUR", 2020, "Turkey", map[dataset.Metric]float64{dataset.MetricOWID: 75.0}),
		row("TUR", 2025, "Turkey", map[dataset.Metric]float64{dataset.MetricOWID: 76.0}),
	}}

	report := New(Config{}).Validity(ds)
	assert.False(t, report.Pass)
	require.Len(t, report.YearViolations, 2)
	assert.Equal(t, 1949, report.YearViolations[0].Year)
	assert.Equal(t, 2025, report.YearViolations[1].Year)
}
