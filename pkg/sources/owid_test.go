package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/lifetable/pkg/dataset"
	"github.com/agentstation/lifetable/pkg/errors"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOWIDClean(t *testing.T) {
	path := writeCSV(t, "owid.csv", `Entity,Code,Year,Life expectancy
Turkey,TUR,2020,75.0
Turkey,TUR,2021,75.5
World,OWID_WRL,2020,72.0
Nowhere,,2020,60.0
Old Times,OLD,1800,40.0
United States,USA,2020,
`)

	cleaner := NewOWID(path, Config{})
	cleaned, stats, err := cleaner.Clean(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, stats.RowsRead)
	assert.Equal(t, 1, stats.DroppedAggregate)
	assert.Equal(t, 1, stats.DroppedNullCode)
	assert.Equal(t, 1, stats.DroppedOutOfRange)
	assert.Equal(t, 3, stats.FinalRows)

	require.Len(t, cleaned.Records, 3)
	assert.Equal(t, dataset.MetricOWID, cleaned.Metric)

	// Sorted by (code, year); names carried for the merge's naming authority.
	assert.Equal(t, dataset.Key{Code: "TUR", Year: 2020}, cleaned.Records[0].Key)
	assert.Equal(t, "Turkey", cleaned.Records[0].Name)
	assert.True(t, cleaned.Records[0].Valid)
	assert.InDelta(t, 75.0, cleaned.Records[0].Value, 1e-9)

	// A blank metric cell keeps the key but carries no value.
	usa := cleaned.Records[2]
	assert.Equal(t, "USA", usa.Key.Code)
	assert.False(t, usa.Valid)
}

func TestOWIDCleanDuplicateKeysAveraged(t *testing.T) {
	path := writeCSV(t, "owid.csv", `Entity,Code,Year,Life expectancy
Turkey,TUR,2020,74.0
Turkey,TUR,2020,76.0
`)

	cleaned, stats, err := NewOWID(path, Config{}).Clean(context.Background())
	require.NoError(t, err)
	require.Len(t, cleaned.Records, 1)
	assert.Equal(t, 1, stats.Deduplicated)
	assert.InDelta(t, 75.0, cleaned.Records[0].Value, 1e-9)
}

func TestOWIDCleanMissingColumn(t *testing.T) {
	path := writeCSV(t, "owid.csv", "Entity,Year\nTurkey,2020\n")

	_, _, err := NewOWID(path, Config{}).Clean(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSchema)
}

func TestOWIDCleanMissingFile(t *testing.T) {
	_, _, err := NewOWID(filepath.Join(t.TempDir(), "nope.csv"), Config{}).Clean(context.Background())
	assert.ErrorIs(t, err, errors.ErrSourceUnavailable)
}

func TestOWIDReferenceRows(t *testing.T) {
	path := writeCSV(t, "owid.csv", `Entity,Code,Year,Life expectancy
Turkey,TUR,2020,75.0
World,OWID_WRL,2020,72.0
`)

	rows, err := NewOWID(path, Config{}).ReferenceRows(context.Background())
	require.NoError(t, err)
	// All rows pass through; aggregate filtering belongs to resolve.Build.
	require.Len(t, rows, 2)
	assert.Equal(t, "Turkey", rows[0].Name)
	assert.Equal(t, "TUR", rows[0].Code)
}
