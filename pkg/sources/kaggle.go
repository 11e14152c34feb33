package sources

import (
	"context"

	"github.com/agentstation/lifetable/pkg/dataset"
	"github.com/agentstation/lifetable/pkg/normalize"
	"github.com/agentstation/lifetable/pkg/resolve"
	"github.com/agentstation/lifetable/pkg/tabular"
)

// Kaggle column names. Headers in this file ship with stray padding, which
// the tabular reader trims.
const (
	kaggleColCountry = "Country"
	kaggleColYear    = "Year"
	kaggleColMetric  = "Life expectancy"
)

// Kaggle is a name-only metric source: every row's country name passes
// through the normalizer and the resolver to obtain its ISO3 code.
// Unresolved rows are dropped and counted, never guessed.
type Kaggle struct {
	path       string
	cfg        Config
	normalizer *normalize.Normalizer
	mapping    *resolve.Mapping
}

// NewKaggle creates the Kaggle cleaner.
func NewKaggle(path string, cfg Config, n *normalize.Normalizer, m *resolve.Mapping) *Kaggle {
	return &Kaggle{path: path, cfg: cfg.WithDefaults(), normalizer: n, mapping: m}
}

// ID implements Cleaner.
func (k *Kaggle) ID() ID { return KaggleID }

// Metric implements Cleaner.
func (k *Kaggle) Metric() dataset.Metric { return dataset.MetricKaggle }

// Clean implements Cleaner.
func (k *Kaggle) Clean(ctx context.Context) (*dataset.Cleaned, *Stats, error) {
	stats := &Stats{Source: KaggleID}

	table, err := tabular.ReadCSV(k.path)
	if err != nil {
		return nil, stats, err
	}
	if err := requireColumns(table, KaggleID, kaggleColCountry, kaggleColYear, kaggleColMetric); err != nil {
		return nil, stats, err
	}
	stats.RowsRead = table.Len()

	records := make([]dataset.Record, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		raw := table.Cell(i, kaggleColCountry)
		if k.normalizer.Known(raw) {
			stats.Corrected++
		}
		name := k.normalizer.Apply(raw)

		code, ok := k.mapping.Resolve(name)
		if !ok {
			sampleUnresolved(stats, name)
			continue
		}
		year, ok := tabular.ParseYear(table.Cell(i, kaggleColYear))
		if !ok {
			stats.DroppedOutOfRange++
			continue
		}

		rec := dataset.Record{Key: dataset.Key{Code: code, Year: year}}
		rec.Value, rec.Valid = tabular.ParseFloat(table.Cell(i, kaggleColMetric))
		records = append(records, rec)
	}

	records = dedupeMean(records, stats)
	records = filterYears(records, k.cfg.YearMin, k.cfg.YearMax, stats)
	stats.FinalRows = len(records)

	return &dataset.Cleaned{Metric: dataset.MetricKaggle, Records: records}, stats, nil
}
