package tabular

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/lifetable/pkg/errors"
)

// ReadXLSX decodes the first sheet of a workbook into a positional Table,
// skipping the given number of leading rows. Columns are named col_0, col_1,
// and so on, since positional sources carry no usable header row.
func ReadXLSX(path string, skipRows int) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapResource(errors.ErrSourceUnavailable, "file", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.WrapResource(errors.ErrSourceUnavailable, "workbook", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	if skipRows > len(rows) {
		skipRows = len(rows)
	}
	rows = rows[skipRows:]

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	columns := make([]string, width)
	for i := range columns {
		columns[i] = fmt.Sprintf("col_%d", i)
	}

	table := New(columns)
	for _, row := range rows {
		table.Append(row)
	}
	return table, nil
}
