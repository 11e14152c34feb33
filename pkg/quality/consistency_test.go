package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/lifetable/pkg/dataset"
)

func TestConsistencyViolation(t *testing.T) {
	ds := &dataset.Dataset{Rows: []dataset.Row{
		// HALE above total life expectancy: flagged.
		row("AAA", 2020, "Aland", map[dataset.Metric]float64{
			dataset.MetricWorldBank: 70.0,
			dataset.MetricHALE:      72.0,
		}),
		row("BBB", 2020, "Bland", map[dataset.Metric]float64{
			dataset.MetricWorldBank: 70.0,
			dataset.MetricHALE:      65.0,
		}),
		// HALE only: not an overlapping row.
		row("CCC", 2020, "Cland", map[dataset.Metric]float64{
			dataset.MetricHALE: 60.0,
		}),
	}}

	report := New(Config{}).Consistency(ds)
	assert.Equal(t, 2, report.OverlappingRows)
	assert.False(t, report.Pass)

	require.Len(t, report.Violations, 1)
	v := report.Violations[0]
	assert.Equal(t, "AAA", v.Key.Code)
	assert.InDelta(t, -2.0, v.Gap, 1e-9)

	assert.InDelta(t, 1.5, report.Gap.Mean, 1e-9)
	assert.InDelta(t, -2.0, report.Gap.Min, 1e-9)
	assert.InDelta(t, 5.0, report.Gap.Max, 1e-9)
}

func TestConsistencyPass(t *testing.T) {
	ds := &dataset.Dataset{Rows: []dataset.Row{
		row("TUR", 2020, "Turkey", map[dataset.Metric]float64{
			dataset.MetricWorldBank: 74.8,
			dataset.MetricHALE:      66.0,
		}),
	}}

	report := New(Config{}).Consistency(ds)
	assert.True(t, report.Pass)
	assert.Empty(t, report.Violations)
	assert.InDelta(t, 8.8, report.Gap.Mean, 1e-9)
}

func TestConsistencyTopGapCodes(t *testing.T) {
	ds := &dataset.Dataset{Rows: []dataset.Row{
		row("AAA", 2019, "Aland", map[dataset.Metric]float64{
			dataset.MetricWorldBank: 70.0, dataset.MetricHALE: 60.0,
		}),
		row("AAA", 2020, "Aland", map[dataset.Metric]float64{
			dataset.MetricWorldBank: 70.0, dataset.MetricHALE: 62.0,
		}),
		row("BBB", 2020, "Bland", map[dataset.Metric]float64{
			dataset.MetricWorldBank: 80.0, dataset.MetricHALE: 68.0,
		}),
	}}

	report := New(Config{}).Consistency(ds)
	require.Len(t, report.TopGapCodes, 2)
	// BBB's 12-year gap beats AAA's 9-year average.
	assert.Equal(t, "BBB", report.TopGapCodes[0].Code)
	assert.InDelta(t, 12.0, report.TopGapCodes[0].AvgGap, 1e-9)
	assert.Equal(t, "AAA", report.TopGapCodes[1].Code)
	assert.InDelta(t, 9.0, report.TopGapCodes[1].AvgGap, 1e-9)
}

func TestConsistencyNoOverlap(t *testing.T) {
	ds := &dataset.Dataset{Rows: []dataset.Row{
		row("TUR", 2020, "Turkey", map[dataset.Metric]float64{dataset.MetricOWID: 75.0}),
	}}

	report := New(Config{}).Consistency(ds)
	assert.Equal(t, 0, report.OverlappingRows)
	assert.True(t, report.Pass)
	assert.Empty(t, report.TopGapCodes)
}
