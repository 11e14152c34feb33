package sources

import (
	"context"
	"strings"

	"github.com/agentstation/lifetable/pkg/dataset"
	"github.com/agentstation/lifetable/pkg/tabular"
)

// UNICEF (SDMX-shaped) column names.
const (
	unicefColCode   = "REF_AREA"
	unicefColYear   = "TIME_PERIOD"
	unicefColMetric = "OBS_VALUE"
	unicefColSex    = "SEX"

	// unicefSexTotal is the combined-population indicator in the SEX
	// dimension.
	unicefSexTotal = "_T"
)

// UNICEF is a dimensioned, code-bearing metric source. When the optional SEX
// dimension is present, only the combined-population slice is kept; any
// remaining duplication per (code, year) is aggregated by mean.
type UNICEF struct {
	path string
	cfg  Config
}

// NewUNICEF creates the UNICEF cleaner.
func NewUNICEF(path string, cfg Config) *UNICEF {
	return &UNICEF{path: path, cfg: cfg.WithDefaults()}
}

// ID implements Cleaner.
func (u *UNICEF) ID() ID { return UNICEFID }

// Metric implements Cleaner.
func (u *UNICEF) Metric() dataset.Metric { return dataset.MetricUNICEF }

// Clean implements Cleaner.
func (u *UNICEF) Clean(ctx context.Context) (*dataset.Cleaned, *Stats, error) {
	stats := &Stats{Source: UNICEFID}

	table, err := tabular.ReadCSV(u.path)
	if err != nil {
		return nil, stats, err
	}
	if err := requireColumns(table, UNICEFID, unicefColCode, unicefColYear, unicefColMetric); err != nil {
		return nil, stats, err
	}
	stats.RowsRead = table.Len()

	hasSex := table.HasColumn(unicefColSex)

	records := make([]dataset.Record, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		if hasSex && strings.TrimSpace(table.Cell(i, unicefColSex)) != unicefSexTotal {
			stats.DroppedFiltered++
			continue
		}

		code := strings.TrimSpace(table.Cell(i, unicefColCode))
		if code == "" {
			stats.DroppedNullCode++
			continue
		}
		value, ok := tabular.ParseFloat(table.Cell(i, unicefColMetric))
		if !ok {
			stats.DroppedNullValue++
			continue
		}
		year, ok := tabular.ParseYear(table.Cell(i, unicefColYear))
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

	records = dedupeMean(records, stats)
	records = filterYears(records, u.cfg.YearMin, u.cfg.YearMax, stats)
	stats.FinalRows = len(records)

	return &dataset.Cleaned{Metric: dataset.MetricUNICEF, Records: records}, stats, nil
}
