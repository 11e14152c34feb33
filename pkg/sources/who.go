package sources

import (
	"context"
	"strings"

	"github.com/agentstation/lifetable/pkg/dataset"
	"github.com/agentstation/lifetable/pkg/normalize"
	"github.com/agentstation/lifetable/pkg/resolve"
	"github.com/agentstation/lifetable/pkg/tabular"
)

// WHO (GHO-shaped) column names.
const (
	whoColName    = "GEO_NAME_SHORT"
	whoColYear    = "DIM_TIME"
	whoColMetric  = "AMOUNT_N"
	whoColGeoType = "DIM_GEO_CODE_TYPE"
	whoColSex     = "DIM_SEX"

	// whoGeoCountry keeps country rows, excluding regional and income
	// groupings that share the geography dimension.
	whoGeoCountry = "COUNTRY"
)

// whoSexTotals are the combined-population indicators seen across GHO
// vintages, in preference order.
var whoSexTotals = []string{"TOTAL", "BTSX", "BOTHSEXES"}

// WHO is the dimension-filtered health metric source (HALE). It is
// name-bearing: geography names route through the normalizer and resolver.
// When no combined-sex indicator exists, the sex-disaggregated values are
// aggregated by mean rather than arbitrarily picking one slice.
type WHO struct {
	path       string
	cfg        Config
	normalizer *normalize.Normalizer
	mapping    *resolve.Mapping
}

// NewWHO creates the WHO cleaner.
func NewWHO(path string, cfg Config, n *normalize.Normalizer, m *resolve.Mapping) *WHO {
	return &WHO{path: path, cfg: cfg.WithDefaults(), normalizer: n, mapping: m}
}

// ID implements Cleaner.
func (w *WHO) ID() ID { return WHOID }

// Metric implements Cleaner.
func (w *WHO) Metric() dataset.Metric { return dataset.MetricHALE }

// Clean implements Cleaner.
func (w *WHO) Clean(ctx context.Context) (*dataset.Cleaned, *Stats, error) {
	stats := &Stats{Source: WHOID}

	table, err := tabular.ReadCSV(w.path)
	if err != nil {
		return nil, stats, err
	}
	if err := requireColumns(table, WHOID, whoColName, whoColYear, whoColMetric); err != nil {
		return nil, stats, err
	}
	stats.RowsRead = table.Len()

	hasGeoType := table.HasColumn(whoColGeoType)
	sexTotal, hasSexFilter := w.sexFilter(table)

	records := make([]dataset.Record, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		if hasGeoType && strings.TrimSpace(table.Cell(i, whoColGeoType)) != whoGeoCountry {
			stats.DroppedFiltered++
			continue
		}
		if hasSexFilter && strings.TrimSpace(table.Cell(i, whoColSex)) != sexTotal {
			stats.DroppedFiltered++
			continue
		}

		raw := table.Cell(i, whoColName)
		if w.normalizer.Known(raw) {
			stats.Corrected++
		}
		name := w.normalizer.Apply(raw)

		code, ok := w.mapping.Resolve(name)
		if !ok {
			sampleUnresolved(stats, name)
			continue
		}
		value, ok := tabular.ParseFloat(table.Cell(i, whoColMetric))
		if !ok {
			stats.DroppedNullValue++
			continue
		}
		year, ok := tabular.ParseYear(table.Cell(i, whoColYear))
		if !ok {
			stats.DroppedOutOfRange++
			continue
		}

		records = append(records, dataset.Record{
			Key:   dataset.Key{Code: code, Year: year},
			Value: value,
			Valid: true,
		})
	}

	// With no combined-sex slice, the per-sex rows collapse here into their
	// mean.
	records = dedupeMean(records, stats)
	records = filterYears(records, w.cfg.YearMin, w.cfg.YearMax, stats)
	stats.FinalRows = len(records)

	return &dataset.Cleaned{Metric: dataset.MetricHALE, Records: records}, stats, nil
}

// sexFilter picks the combined-population indicator actually present in the
// file, if any.
func (w *WHO) sexFilter(table *tabular.Table) (string, bool) {
	if !table.HasColumn(whoColSex) {
		return "", false
	}

	present := make(map[string]struct{})
	for i := 0; i < table.Len(); i++ {
		present[strings.TrimSpace(table.Cell(i, whoColSex))] = struct{}{}
	}
	for _, target := range whoSexTotals {
		if _, ok := present[target]; ok {
			return target, true
		}
	}
	return "", false
}
