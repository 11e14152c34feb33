package sources

import (
	"context"

	"github.com/agentstation/lifetable/pkg/constants"
	"github.com/agentstation/lifetable/pkg/dataset"
	"github.com/agentstation/lifetable/pkg/tabular"
)

// CDC workbook layout: two title rows, then positional year and metric
// columns for a single known geography.
const (
	cdcSkipRows  = 2
	cdcColYear   = 0
	cdcColMetric = 1

	// cdcCode is the source's single geography. The file carries no key
	// columns at all.
	cdcCode = "USA"
)

// CDC is the fixed-geography positional source. Cells that fail numeric
// coercion (title fragments, footnote markers) drop out; a raw-year
// pre-filter guards against header rows parsed as data before the canonical
// year filter applies.
type CDC struct {
	path string
	cfg  Config
}

// NewCDC creates the CDC cleaner.
func NewCDC(path string, cfg Config) *CDC {
	return &CDC{path: path, cfg: cfg.WithDefaults()}
}

// ID implements Cleaner.
func (c *CDC) ID() ID { return CDCID }

// Metric implements Cleaner.
func (c *CDC) Metric() dataset.Metric { return dataset.MetricCDC }

// Clean implements Cleaner.
func (c *CDC) Clean(ctx context.Context) (*dataset.Cleaned, *Stats, error) {
	stats := &Stats{Source: CDCID}

	table, err := tabular.ReadXLSX(c.path, cdcSkipRows)
	if err != nil {
		return nil, stats, err
	}
	stats.RowsRead = table.Len()

	records := make([]dataset.Record, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		year, ok := tabular.ParseYear(table.CellAt(i, cdcColYear))
		if !ok {
			stats.DroppedNullValue++
			continue
		}
		value, ok := tabular.ParseFloat(table.CellAt(i, cdcColMetric))
		if !ok {
			stats.DroppedNullValue++
			continue
		}
		if year < constants.RawYearMin || year > constants.RawYearMax {
			stats.DroppedOutOfRange++
			continue
		}

		records = append(records, dataset.Record{
			Key:   dataset.Key{Code: cdcCode, Year: year},
			Value: value,
			Valid: true,
		})
	}

	records = dedupeMean(records, stats)
	records = filterYears(records, c.cfg.YearMin, c.cfg.YearMax, stats)
	stats.FinalRows = len(records)

	return &dataset.Cleaned{Metric: dataset.MetricCDC, Records: records}, stats, nil
}
