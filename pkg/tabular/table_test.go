package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableHeadersTrimmed(t *testing.T) {
	table := New([]string{" Country ", "Year", "Life expectancy "})

	assert.True(t, table.HasColumn("Country"))
	assert.True(t, table.HasColumn("Life expectancy"))
	assert.False(t, table.HasColumn(" Country "))
}

func TestTableShortRowsPadded(t *testing.T) {
	table := New([]string{"a", "b", "c"})
	table.Append([]string{"1"})

	require.Equal(t, 1, table.Len())
	assert.Equal(t, "1", table.Cell(0, "a"))
	assert.Equal(t, "", table.Cell(0, "b"))
	assert.Equal(t, "", table.Cell(0, "c"))
}

func TestTableMissingAccess(t *testing.T) {
	table := New([]string{"a"})
	table.Append([]string{"1"})

	assert.Equal(t, "", table.Cell(0, "missing"))
	assert.Equal(t, "", table.Cell(5, "a"))
	assert.Equal(t, "", table.CellAt(0, 9))
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		cell  string
		value float64
		ok    bool
	}{
		{"72.5", 72.5, true},
		{" 72.5 ", 72.5, true},
		{"", 0, false},
		{"   ", 0, false},
		{"n/a", 0, false},
		{"72.5*", 0, false}, // footnote marker
		{"-3", -3, true},
	}

	for _, tt := range tests {
		v, ok := ParseFloat(tt.cell)
		assert.Equal(t, tt.ok, ok, "cell %q", tt.cell)
		if tt.ok {
			assert.Equal(t, tt.value, v, "cell %q", tt.cell)
		}
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		cell string
		year int
		ok   bool
	}{
		{"2020", 2020, true},
		{"2020.0", 2020, true}, // spreadsheet export artifact
		{"2020.5", 0, false},
		{"", 0, false},
		{"circa 1950", 0, false},
	}

	for _, tt := range tests {
		y, ok := ParseYear(tt.cell)
		assert.Equal(t, tt.ok, ok, "cell %q", tt.cell)
		if tt.ok {
			assert.Equal(t, tt.year, y, "cell %q", tt.cell)
		}
	}
}
