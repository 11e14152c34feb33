package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/lifetable/pkg/dataset"
	"github.com/agentstation/lifetable/pkg/errors"
	"github.com/agentstation/lifetable/pkg/normalize"
)

func TestWHOCleanGeoAndSexFilters(t *testing.T) {
	path := writeCSV(t, "who.csv", `GEO_NAME_SHORT,DIM_GEO_CODE_TYPE,DIM_SEX,DIM_TIME,AMOUNT_N
Türkiye,COUNTRY,TOTAL,2020,66.0
Türkiye,COUNTRY,MALE,2020,64.0
Europe,REGION,TOTAL,2020,68.0
United States of America,COUNTRY,TOTAL,2020,65.2
`)

	cleaned, stats, err := NewWHO(path, Config{}, normalize.Default(), testMapping()).Clean(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.RowsRead)
	assert.Equal(t, 2, stats.DroppedFiltered, "regional and per-sex slices drop")
	assert.Equal(t, 2, stats.Corrected)
	assert.Equal(t, 2, stats.FinalRows)

	assert.Equal(t, dataset.MetricHALE, cleaned.Metric)
	require.Len(t, cleaned.Records, 2)
	assert.Equal(t, "TUR", cleaned.Records[0].Key.Code)
	assert.InDelta(t, 66.0, cleaned.Records[0].Value, 1e-9)
	assert.Equal(t, "USA", cleaned.Records[1].Key.Code)
}

func TestWHOCleanNoCombinedSexAveragesSlices(t *testing.T) {
	path := writeCSV(t, "who.csv", `GEO_NAME_SHORT,DIM_SEX,DIM_TIME,AMOUNT_N
Turkey,MALE,2020,64.0
Turkey,FEMALE,2020,68.0
`)

	cleaned, stats, err := NewWHO(path, Config{}, normalize.Default(), testMapping()).Clean(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.DroppedFiltered)
	assert.Equal(t, 1, stats.Deduplicated)
	require.Len(t, cleaned.Records, 1)
	assert.InDelta(t, 66.0, cleaned.Records[0].Value, 1e-9)
}

func TestWHOCleanUnresolvedNames(t *testing.T) {
	path := writeCSV(t, "who.csv", `GEO_NAME_SHORT,DIM_TIME,AMOUNT_N
Atlantis,2020,60.0
Turkey,2020,66.0
`)

	cleaned, stats, err := NewWHO(path, Config{}, normalize.Default(), testMapping()).Clean(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Unresolved)
	assert.Equal(t, []string{"Atlantis"}, stats.UnresolvedSamples)
	require.Len(t, cleaned.Records, 1)
}

func TestWHOCleanMissingColumn(t *testing.T) {
	path := writeCSV(t, "who.csv", "GEO_NAME_SHORT,DIM_TIME\nTurkey,2020\n")

	_, _, err := NewWHO(path, Config{}, normalize.Default(), testMapping()).Clean(context.Background())
	assert.ErrorIs(t, err, errors.ErrSchema)
}
