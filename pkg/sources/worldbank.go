package sources

import (
	"context"
	"strings"

	"github.com/agentstation/lifetable/pkg/dataset"
	"github.com/agentstation/lifetable/pkg/tabular"
)

// World Bank column names. The extract stage already flattened the API
// response to canonical field names.
const (
	wbColCode   = "iso3"
	wbColYear   = "year"
	wbColMetric = "life_exp_wb"
)

// WorldBank is a code-bearing metric source: no name resolution needed.
type WorldBank struct {
	path string
	cfg  Config
}

// NewWorldBank creates the World Bank cleaner.
func NewWorldBank(path string, cfg Config) *WorldBank {
	return &WorldBank{path: path, cfg: cfg.WithDefaults()}
}

// ID implements Cleaner.
func (w *WorldBank) ID() ID { return WorldBankID }

// Metric implements Cleaner.
func (w *WorldBank) Metric() dataset.Metric { return dataset.MetricWorldBank }

// Clean implements Cleaner.
func (w *WorldBank) Clean(ctx context.Context) (*dataset.Cleaned, *Stats, error) {
	stats := &Stats{Source: WorldBankID}

	table, err := tabular.ReadCSV(w.path)
	if err != nil {
		return nil, stats, err
	}
	if err := requireColumns(table, WorldBankID, wbColCode, wbColYear, wbColMetric); err != nil {
		return nil, stats, err
	}
	stats.RowsRead = table.Len()

	records := make([]dataset.Record, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		code := strings.TrimSpace(table.Cell(i, wbColCode))
		if code == "" {
			stats.DroppedNullCode++
			continue
		}
		year, ok := tabular.ParseYear(table.Cell(i, wbColYear))
		if !ok {
			stats.DroppedOutOfRange++
			continue
		}

		rec := dataset.Record{Key: dataset.Key{Code: code, Year: year}}
		rec.Value, rec.Valid = tabular.ParseFloat(table.Cell(i, wbColMetric))
		records = append(records, rec)
	}

	records = dedupeMean(records, stats)
	records = filterYears(records, w.cfg.YearMin, w.cfg.YearMax, stats)
	stats.FinalRows = len(records)

	return &dataset.Cleaned{Metric: dataset.MetricWorldBank, Records: records}, stats, nil
}
