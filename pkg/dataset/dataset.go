// Package dataset defines the typed records flowing through the pipeline:
// the cleaned per-source tables, the merged master table, and the composite
// key that identifies every row.
package dataset

import "sort"

// Key is the composite primary key of the merged dataset: an ISO 3166-1
// alpha-3 country code and an observation year. Unique across the merged
// table.
type Key struct {
	Code string
	Year int
}

// Less orders keys ascending by (code, year), the dataset's canonical sort.
func (k Key) Less(other Key) bool {
	if k.Code != other.Code {
		return k.Code < other.Code
	}
	return k.Year < other.Year
}

// Metric identifies one source's metric column in the merged table.
type Metric string

// Metric columns, in merged-table column order.
const (
	MetricOWID      Metric = "life_exp_owid"
	MetricWorldBank Metric = "life_exp_wb"
	MetricHALE      Metric = "hale_who"
	MetricUNICEF    Metric = "life_exp_unicef"
	MetricKaggle    Metric = "life_exp_kaggle"
	MetricCDC       Metric = "life_exp_us_cdc"
)

// String returns the column name of the metric.
func (m Metric) String() string {
	return string(m)
}

// Metrics returns all metric columns in merged-table column order.
func Metrics() []Metric {
	return []Metric{
		MetricOWID,
		MetricWorldBank,
		MetricHALE,
		MetricUNICEF,
		MetricKaggle,
		MetricCDC,
	}
}

// ComparableMetrics returns the metrics that measure total life expectancy
// at birth under directly comparable methodologies. HALE measures years in
// full health and is conceptually different; the CDC series covers a single
// geography under a national methodology. Neither belongs in a cross-source
// spread.
func ComparableMetrics() []Metric {
	return []Metric{
		MetricOWID,
		MetricWorldBank,
		MetricUNICEF,
		MetricKaggle,
	}
}

// Record is one cleaned observation from a single source. Code is always
// non-empty (rows failing resolution are dropped earlier); Name is set only
// by name-bearing sources. Valid is false when the metric cell was blank or
// non-numeric: such a record still contributes its key to the merge but no
// metric value.
type Record struct {
	Key   Key
	Name  string
	Value float64
	Valid bool
}

// Cleaned is the output of one per-source cleaner: at most one record per
// key, every year inside the configured range.
type Cleaned struct {
	Metric  Metric
	Records []Record
}

// Sort orders the records ascending by key, making cleaner output
// deterministic regardless of aggregation order.
func (c *Cleaned) Sort() {
	sort.Slice(c.Records, func(i, j int) bool {
		return c.Records[i].Key.Less(c.Records[j].Key)
	})
}

// Row is one row of the merged master table. Metrics holds the present
// metric values; absence from the map is a null cell.
type Row struct {
	Key     Key
	Name    string
	Metrics map[Metric]float64
}

// Metric returns the value for a metric column and whether it is present.
func (r *Row) Metric(m Metric) (float64, bool) {
	v, ok := r.Metrics[m]
	return v, ok
}

// Dataset is the merged master table: one row per key, sorted ascending by
// (code, year). Downstream consumers must treat it as read-only.
type Dataset struct {
	Rows []Row
}

// Sort orders rows by the canonical (code, year) sort.
func (d *Dataset) Sort() {
	sort.Slice(d.Rows, func(i, j int) bool {
		return d.Rows[i].Key.Less(d.Rows[j].Key)
	})
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Codes returns the distinct country codes present, in sorted order.
func (d *Dataset) Codes() []string {
	seen := make(map[string]struct{})
	var codes []string
	for i := range d.Rows {
		code := d.Rows[i].Key.Code
		if _, ok := seen[code]; !ok {
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// Years returns the distinct observation years present, in sorted order.
func (d *Dataset) Years() []int {
	seen := make(map[int]struct{})
	var years []int
	for i := range d.Rows {
		year := d.Rows[i].Key.Year
		if _, ok := seen[year]; !ok {
			seen[year] = struct{}{}
			years = append(years, year)
		}
	}
	sort.Ints(years)
	return years
}
