// Package tabular provides the raw in-memory table consumed by the per-source
// cleaners. A Table is an untyped grid of string cells addressed by column
// name; all typing (numeric coercion, nullability) happens in the cleaners.
package tabular

import (
	"strconv"
	"strings"
)

// Table is a decoded tabular source file. Cells are raw strings; the empty
// string represents a missing value.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New creates a Table with the given column names. Column names are
// whitespace-trimmed; some sources ship headers with stray padding.
func New(columns []string) *Table {
	trimmed := make([]string, len(columns))
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		c = strings.TrimSpace(c)
		trimmed[i] = c
		if _, dup := index[c]; !dup {
			index[c] = i
		}
	}
	return &Table{columns: trimmed, index: index}
}

// Append adds a row. Short rows are padded with empty cells so every row
// addresses the full column set.
func (t *Table) Append(row []string) {
	if len(row) < len(t.columns) {
		padded := make([]string, len(t.columns))
		copy(padded, row)
		row = padded
	}
	t.rows = append(t.rows, row)
}

// Columns returns the column names in file order.
func (t *Table) Columns() []string {
	return t.columns
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Cell returns the raw cell at (row, column name). Missing columns and
// out-of-range rows return the empty string.
func (t *Table) Cell(row int, column string) string {
	if row < 0 || row >= len(t.rows) {
		return ""
	}
	i, ok := t.index[column]
	if !ok || i >= len(t.rows[row]) {
		return ""
	}
	return t.rows[row][i]
}

// CellAt returns the raw cell at (row, positional column index).
func (t *Table) CellAt(row, col int) string {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= len(t.rows[row]) {
		return ""
	}
	return t.rows[row][col]
}

// ParseFloat coerces a raw cell to a float. Footnote markers, placeholders
// and blanks coerce to a null (ok=false), never an error.
func ParseFloat(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseYear coerces a raw cell to an integer year. Fractional year cells
// (as produced by spreadsheet exports) are accepted when integral.
func ParseYear(cell string) (int, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(cell); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	y := int(f)
	if float64(y) != f {
		return 0, false
	}
	return y, true
}
