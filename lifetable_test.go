package lifetable

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/lifetable/pkg/dataset"
	"github.com/agentstation/lifetable/pkg/errors"
	"github.com/agentstation/lifetable/pkg/sources"
)

// minimalRawDir carries only the reference source and one code-bearing
// source; every other source degrades to an empty contribution.
func minimalRawDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	owid := `Entity,Code,Year,Life expectancy
Turkey,TUR,2020,75.0
United States,USA,2020,77.0
`
	wb := `iso3,year,life_exp_wb
TUR,2020,74.8
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "owid_historical_life_expectancy.csv"), []byte(owid), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "worldbank_life_expectancy.csv"), []byte(wb), 0o644))
	return dir
}

func TestTransform(t *testing.T) {
	lt, err := New(WithRawDir(minimalRawDir(t)))
	require.NoError(t, err)

	result, err := lt.Transform(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, result.Dataset.Len())
	tur := result.Dataset.Rows[0]
	assert.Equal(t, "Turkey", tur.Name)
	assert.InDelta(t, 74.8, tur.Metrics[dataset.MetricWorldBank], 1e-9)

	// Missing non-reference sources are recorded, not fatal.
	assert.True(t, result.SourceStats[sources.KaggleID].Degraded)
	assert.True(t, result.SourceStats[sources.CDCID].Degraded)
}

func TestQuality(t *testing.T) {
	lt, err := New(WithRawDir(minimalRawDir(t)))
	require.NoError(t, err)

	result, report, err := lt.Quality(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotNil(t, report.Scorecard)
	assert.True(t, report.Uniqueness.Pass)
}

func TestConflicts(t *testing.T) {
	lt, err := New(
		WithRawDir(minimalRawDir(t)),
		WithConflictTolerance(0.1),
	)
	require.NoError(t, err)

	_, results, err := lt.Conflicts(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.1, results.Tolerance, 1e-9)
	// TUR 2020 carries two comparable values 0.2 years apart.
	assert.Equal(t, 1, results.ComparableRows)
	assert.Equal(t, 1, results.SevereConflicts)
}

func TestNewBadOverridesFile(t *testing.T) {
	_, err := New(WithOverridesFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(WithRawDir(""))
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = New(WithConflictTolerance(-1))
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}
