package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/agentstation/lifetable/pkg/constants"
)

// header columns preceding the metric columns.
var keyColumns = []string{"iso3", "country_name", "year"}

// WriteCSV writes the dataset in its canonical column order. Null metric
// cells are written as empty fields.
func (d *Dataset) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	metrics := Metrics()
	header := make([]string, 0, len(keyColumns)+len(metrics))
	header = append(header, keyColumns...)
	for _, m := range metrics {
		header = append(header, m.String())
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for i := range d.Rows {
		row := &d.Rows[i]
		record[0] = row.Key.Code
		record[1] = row.Name
		record[2] = strconv.Itoa(row.Key.Year)
		for j, m := range metrics {
			if v, ok := row.Metric(m); ok {
				record[3+j] = strconv.FormatFloat(v, 'f', -1, 64)
			} else {
				record[3+j] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the dataset to a file, creating parent directories as
// needed.
func (d *Dataset) SaveCSV(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return err
	}
	defer f.Close()
	return d.WriteCSV(f)
}
