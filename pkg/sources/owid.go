package sources

import (
	"context"
	"strings"

	"github.com/agentstation/lifetable/pkg/dataset"
	"github.com/agentstation/lifetable/pkg/resolve"
	"github.com/agentstation/lifetable/pkg/tabular"
)

// OWID column names.
const (
	owidColEntity = "Entity"
	owidColCode   = "Code"
	owidColYear   = "Year"
	owidColMetric = "Life expectancy"
)

// OWID is the reference source: the broadest and cleanest name/code pairing.
// It both feeds the entity resolver (ReferenceRows) and contributes its own
// metric column. Its failure is fatal to the whole run.
type OWID struct {
	path string
	cfg  Config
}

// NewOWID creates the reference-source cleaner.
func NewOWID(path string, cfg Config) *OWID {
	return &OWID{path: path, cfg: cfg.WithDefaults()}
}

// ID implements Cleaner.
func (o *OWID) ID() ID { return OWIDID }

// Metric implements Cleaner.
func (o *OWID) Metric() dataset.Metric { return dataset.MetricOWID }

// ReferenceRows reads the (name, code) pairs the resolver is built from, in
// file order. Null-code and aggregate-code filtering happens inside
// resolve.Build; this only decodes and selects columns.
func (o *OWID) ReferenceRows(ctx context.Context) ([]resolve.ReferenceRow, error) {
	table, err := tabular.ReadCSV(o.path)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(table, OWIDID, owidColEntity, owidColCode); err != nil {
		return nil, err
	}

	rows := make([]resolve.ReferenceRow, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		rows = append(rows, resolve.ReferenceRow{
			Name: table.Cell(i, owidColEntity),
			Code: table.Cell(i, owidColCode),
		})
	}
	return rows, nil
}

// Clean implements Cleaner. OWID is code-bearing and name-bearing: every
// kept record carries both the ISO3 code and the reference display name.
func (o *OWID) Clean(ctx context.Context) (*dataset.Cleaned, *Stats, error) {
	stats := &Stats{Source: OWIDID}

	table, err := tabular.ReadCSV(o.path)
	if err != nil {
		return nil, stats, err
	}
	if err := requireColumns(table, OWIDID, owidColEntity, owidColCode, owidColYear, owidColMetric); err != nil {
		return nil, stats, err
	}
	stats.RowsRead = table.Len()

	records := make([]dataset.Record, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		code := strings.TrimSpace(table.Cell(i, owidColCode))
		if code == "" {
			stats.DroppedNullCode++
			continue
		}
		if resolve.IsAggregate(code, o.cfg.AggregatePrefix) {
			stats.DroppedAggregate++
			continue
		}
		year, ok := tabular.ParseYear(table.Cell(i, owidColYear))
		if !ok {
			stats.DroppedOutOfRange++
			continue
		}

		rec := dataset.Record{
			Key:  dataset.Key{Code: code, Year: year},
			Name: strings.TrimSpace(table.Cell(i, owidColEntity)),
		}
		// A blank metric cell still contributes the key and name.
		rec.Value, rec.Valid = tabular.ParseFloat(table.Cell(i, owidColMetric))
		records = append(records, rec)
	}

	records = dedupeMean(records, stats)
	records = filterYears(records, o.cfg.YearMin, o.cfg.YearMax, stats)
	stats.FinalRows = len(records)

	return &dataset.Cleaned{Metric: dataset.MetricOWID, Records: records}, stats, nil
}
