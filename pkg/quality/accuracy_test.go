package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/lifetable/pkg/dataset"
)

func pairConfig() Config {
	return Config{Pairs: []PairSpec{{A: dataset.MetricWorldBank, B: dataset.MetricOWID}}}
}

func TestAccuracyWithinTolerance(t *testing.T) {
	ds := &dataset.Dataset{Rows: []dataset.Row{
		row("TUR", 2020, "Turkey", map[dataset.Metric]float64{
			dataset.MetricWorldBank: 70.0,
			dataset.MetricOWID:      71.0,
		}),
		row("USA", 2020, "United States", map[dataset.Metric]float64{
			dataset.MetricWorldBank: 72.0,
			dataset.MetricOWID:      75.5,
		}),
		// OWID only: excluded from the comparison.
		row("FRA", 2020, "France", map[dataset.Metric]float64{
			dataset.MetricOWID: 82.0,
		}),
	}}

	report := New(pairConfig()).Accuracy(ds)
	require.Len(t, report.Pairs, 1)
	pa := report.Pairs[0]

	assert.Equal(t, 2, pa.Pairs)
	assert.InDelta(t, 2.25, pa.MeanAbsDiff, 1e-9)
	assert.InDelta(t, 3.5, pa.MaxAbsDiff, 1e-9)
	assert.InDelta(t, 1.0, pa.Correlation, 1e-9)
	assert.True(t, pa.Pass)
	assert.True(t, report.Pass)

	require.Len(t, pa.TopDiscrepancies, 2)
	// Largest difference first.
	assert.Equal(t, "USA", pa.TopDiscrepancies[0].Key.Code)
	assert.InDelta(t, 3.5, pa.TopDiscrepancies[0].AbsDiff, 1e-9)
}

func TestAccuracyExceedsTolerance(t *testing.T) {
	ds := &dataset.Dataset{Rows: []dataset.Row{
		row("TUR", 2020, "Turkey", map[dataset.Metric]float64{
			dataset.MetricWorldBank: 70.0,
			dataset.MetricOWID:      74.0,
		}),
		row("USA", 2020, "United States", map[dataset.Metric]float64{
			dataset.MetricWorldBank: 72.0,
			dataset.MetricOWID:      76.0,
		}),
	}}

	report := New(pairConfig()).Accuracy(ds)
	pa := report.Pairs[0]
	assert.InDelta(t, 4.0, pa.MeanAbsDiff, 1e-9)
	assert.False(t, pa.Pass)
	assert.False(t, report.Pass)
}

func TestAccuracyNoOverlap(t *testing.T) {
	ds := &dataset.Dataset{Rows: []dataset.Row{
		row("TUR", 2020, "Turkey", map[dataset.Metric]float64{dataset.MetricWorldBank: 70.0}),
		row("USA", 2020, "United States", map[dataset.Metric]float64{dataset.MetricOWID: 77.0}),
	}}

	report := New(pairConfig()).Accuracy(ds)
	pa := report.Pairs[0]
	assert.Equal(t, 0, pa.Pairs)
	// An empty overlap is no evidence of disagreement.
	assert.True(t, pa.Pass)
	assert.True(t, report.Pass)
}

func TestAccuracyTopDiscrepanciesCapped(t *testing.T) {
	rows := make([]dataset.Row, 0, 8)
	for i := 0; i < 8; i++ {
		rows = append(rows, row("AAA", 2000+i, "Land", map[dataset.Metric]float64{
			dataset.MetricWorldBank: 70.0,
			dataset.MetricOWID:      70.0 + float64(i)*0.1,
		}))
	}
	ds := &dataset.Dataset{Rows: rows}

	report := New(pairConfig()).Accuracy(ds)
	pa := report.Pairs[0]
	require.Len(t, pa.TopDiscrepancies, 5)
	assert.Equal(t, 2007, pa.TopDiscrepancies[0].Key.Year)
}
