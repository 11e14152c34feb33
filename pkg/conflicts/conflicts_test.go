package conflicts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/lifetable/pkg/dataset"
)

func row(code string, year int, name string, metrics map[dataset.Metric]float64) dataset.Row {
	return dataset.Row{
		Key:     dataset.Key{Code: code, Year: year},
		Name:    name,
		Metrics: metrics,
	}
}

func TestDivergence(t *testing.T) {
	r := row("TUR", 2020, "Turkey", map[dataset.Metric]float64{
		dataset.MetricOWID:      60.0,
		dataset.MetricWorldBank: 62.0,
		dataset.MetricUNICEF:    65.0,
	})

	spread, present, ok := Divergence(&r, dataset.ComparableMetrics(), 2)
	require.True(t, ok)
	assert.Equal(t, 3, present)
	assert.InDelta(t, 5.0, spread, 1e-9)
}

func TestDivergenceSingleSource(t *testing.T) {
	r := row("TUR", 2020, "Turkey", map[dataset.Metric]float64{
		dataset.MetricOWID: 75.0,
	})

	_, present, ok := Divergence(&r, dataset.ComparableMetrics(), 2)
	assert.False(t, ok, "one value cannot diverge from itself")
	assert.Equal(t, 1, present)
}

func TestDivergenceIgnoresNonComparableMetrics(t *testing.T) {
	// HALE measures a different quantity and must not inflate the spread.
	r := row("TUR", 2020, "Turkey", map[dataset.Metric]float64{
		dataset.MetricOWID:      75.0,
		dataset.MetricWorldBank: 74.5,
		dataset.MetricHALE:      66.0,
	})

	spread, present, ok := Divergence(&r, dataset.ComparableMetrics(), 2)
	require.True(t, ok)
	assert.Equal(t, 2, present)
	assert.InDelta(t, 0.5, spread, 1e-9)
}

func TestMeasure(t *testing.T) {
	ds := &dataset.Dataset{Rows: []dataset.Row{
		// Spread 0.5: within tolerance.
		row("TUR", 2020, "Turkey", map[dataset.Metric]float64{
			dataset.MetricOWID:   75.0,
			dataset.MetricKaggle: 74.5,
		}),
		// Spread 5.0: severe.
		row("USA", 2020, "United States", map[dataset.Metric]float64{
			dataset.MetricOWID:      60.0,
			dataset.MetricWorldBank: 62.0,
			dataset.MetricUNICEF:    65.0,
		}),
		// One source: not comparable.
		row("FRA", 2020, "France", map[dataset.Metric]float64{
			dataset.MetricOWID: 82.0,
		}),
	}}

	results := Measure(ds, Config{})
	assert.Equal(t, 3, results.TotalRows)
	assert.Equal(t, 2, results.ComparableRows)
	assert.Equal(t, 1, results.WithinTolerance)
	assert.Equal(t, 1, results.SevereConflicts)

	require.Len(t, results.TopConflicts, 1)
	tc := results.TopConflicts[0]
	assert.Equal(t, "USA", tc.Key.Code)
	assert.Equal(t, 3, tc.Sources)
	assert.InDelta(t, 5.0, tc.Divergence, 1e-9)
}

func TestMeasureSpreadAtToleranceNotSevere(t *testing.T) {
	ds := &dataset.Dataset{Rows: []dataset.Row{
		row("TUR", 2020, "Turkey", map[dataset.Metric]float64{
			dataset.MetricOWID:      72.5,
			dataset.MetricWorldBank: 75.0,
		}),
	}}

	results := Measure(ds, Config{})
	assert.Equal(t, 1, results.WithinTolerance)
	assert.Equal(t, 0, results.SevereConflicts)
}

func TestMeasureTopConflictsOrderedAndCapped(t *testing.T) {
	rows := make([]dataset.Row, 0, 7)
	for i := 0; i < 7; i++ {
		rows = append(rows, row("AAA", 2000+i, "Land", map[dataset.Metric]float64{
			dataset.MetricOWID:      60.0,
			dataset.MetricWorldBank: 63.0 + float64(i),
		}))
	}
	ds := &dataset.Dataset{Rows: rows}

	results := Measure(ds, Config{})
	assert.Equal(t, 7, results.SevereConflicts)
	require.Len(t, results.TopConflicts, 5)
	// Worst first.
	assert.Equal(t, 2006, results.TopConflicts[0].Key.Year)
	assert.InDelta(t, 9.0, results.TopConflicts[0].Divergence, 1e-9)
	assert.Equal(t, 2002, results.TopConflicts[4].Key.Year)
}
