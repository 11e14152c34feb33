// Package quality implements the five-dimension data-quality engine over the
// merged dataset: completeness, uniqueness, validity, accuracy, and
// consistency, plus the aggregate scorecard.
//
// Every check is pure: it reads the dataset and produces an independent
// report object, never mutating the table. Logical and statistical
// violations are findings for human judgment, not errors: no check drops a
// row or fails the run.
package quality

import (
	"github.com/agentstation/utc"

	"github.com/agentstation/lifetable/pkg/dataset"
)

// ColumnFill is the per-column completeness measurement.
type ColumnFill struct {
	Column   string  `json:"column" yaml:"column"`
	Present  int     `json:"present" yaml:"present"`
	Missing  int     `json:"missing" yaml:"missing"`
	FillRate float64 `json:"fill_rate" yaml:"fill_rate"` // percent
}

// CompletenessReport measures null rates per column and the overall metric
// fill rate.
type CompletenessReport struct {
	TotalRows         int          `json:"total_rows" yaml:"total_rows"`
	Columns           []ColumnFill `json:"columns" yaml:"columns"`
	MetricCells       int          `json:"metric_cells" yaml:"metric_cells"`
	FilledCells       int          `json:"filled_cells" yaml:"filled_cells"`
	OverallFillRate   float64      `json:"overall_fill_rate" yaml:"overall_fill_rate"`     // percent
	AverageMetricFill float64      `json:"average_metric_fill" yaml:"average_metric_fill"` // percent
	Threshold         float64      `json:"threshold" yaml:"threshold"`
	Pass              bool         `json:"pass" yaml:"pass"`
}

// UniquenessReport validates composite-key integrity and surfaces the grid
// shape of the dataset.
type UniquenessReport struct {
	TotalRows       int           `json:"total_rows" yaml:"total_rows"`
	UniqueCountries int           `json:"unique_countries" yaml:"unique_countries"`
	UniqueYears     int           `json:"unique_years" yaml:"unique_years"`
	TheoreticalGrid int           `json:"theoretical_grid" yaml:"theoretical_grid"`
	GridSparsity    float64       `json:"grid_sparsity" yaml:"grid_sparsity"` // percent of grid filled
	MaxRowsPerKey   int           `json:"max_rows_per_key" yaml:"max_rows_per_key"`
	DuplicateKeys   []dataset.Key `json:"duplicate_keys,omitempty" yaml:"duplicate_keys,omitempty"`
	DuplicateRows   int           `json:"duplicate_rows" yaml:"duplicate_rows"`
	Pass            bool          `json:"pass" yaml:"pass"`
}

// BoundViolation is one out-of-bounds metric value, reported with its exact
// row. Legitimate extreme events produce real but eyebrow-raising values, so
// violations are surfaced, never auto-dropped.
type BoundViolation struct {
	Key    dataset.Key    `json:"key" yaml:"key"`
	Name   string         `json:"name" yaml:"name"`
	Metric dataset.Metric `json:"metric" yaml:"metric"`
	Value  float64        `json:"value" yaml:"value"`
}

// MetricValidity is the per-metric range summary.
type MetricValidity struct {
	Metric     dataset.Metric `json:"metric" yaml:"metric"`
	BelowBound int            `json:"below_bound" yaml:"below_bound"`
	AboveBound int            `json:"above_bound" yaml:"above_bound"`
}

// ValidityReport verifies every metric value lies within the plausible
// biological range and every year within the configured window.
type ValidityReport struct {
	LowerBound     float64          `json:"lower_bound" yaml:"lower_bound"`
	UpperBound     float64          `json:"upper_bound" yaml:"upper_bound"`
	Metrics        []MetricValidity `json:"metrics" yaml:"metrics"`
	Violations     []BoundViolation `json:"violations,omitempty" yaml:"violations,omitempty"`
	YearViolations []dataset.Key    `json:"year_violations,omitempty" yaml:"year_violations,omitempty"`
	Pass           bool             `json:"pass" yaml:"pass"`
}

// Discrepancy is one large single-row difference between a designated source
// pair.
type Discrepancy struct {
	Key     dataset.Key `json:"key" yaml:"key"`
	Name    string      `json:"name" yaml:"name"`
	ValueA  float64     `json:"value_a" yaml:"value_a"`
	ValueB  float64     `json:"value_b" yaml:"value_b"`
	AbsDiff float64     `json:"abs_diff" yaml:"abs_diff"`
}

// PairAccuracy cross-validates one designated pair of sources measuring the
// same underlying quantity, restricted to rows where both are present.
type PairAccuracy struct {
	MetricA          dataset.Metric `json:"metric_a" yaml:"metric_a"`
	MetricB          dataset.Metric `json:"metric_b" yaml:"metric_b"`
	Pairs            int            `json:"pairs" yaml:"pairs"`
	MeanAbsDiff      float64        `json:"mean_abs_diff" yaml:"mean_abs_diff"`
	MaxAbsDiff       float64        `json:"max_abs_diff" yaml:"max_abs_diff"`
	Correlation      float64        `json:"correlation" yaml:"correlation"`
	TopDiscrepancies []Discrepancy  `json:"top_discrepancies,omitempty" yaml:"top_discrepancies,omitempty"`
	Pass             bool           `json:"pass" yaml:"pass"`
}

// AccuracyReport holds the cross-source comparisons.
type AccuracyReport struct {
	Tolerance float64        `json:"tolerance" yaml:"tolerance"`
	Pairs     []PairAccuracy `json:"pairs" yaml:"pairs"`
	Pass      bool           `json:"pass" yaml:"pass"`
}

// GapViolation is one row where the health-state metric exceeds total life
// expectancy. Gap is negative by definition; a small magnitude is expected
// methodological noise.
type GapViolation struct {
	Key   dataset.Key `json:"key" yaml:"key"`
	Name  string      `json:"name" yaml:"name"`
	Total float64     `json:"total" yaml:"total"`
	HALE  float64     `json:"hale" yaml:"hale"`
	Gap   float64     `json:"gap" yaml:"gap"`
}

// GapStats summarizes the health gap (total LE − HALE) across overlapping
// rows.
type GapStats struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

// CodeGap is the average health gap for one country code.
type CodeGap struct {
	Code   string  `json:"code" yaml:"code"`
	AvgGap float64 `json:"avg_gap" yaml:"avg_gap"`
}

// ConsistencyReport validates the domain constraint that healthy life
// expectancy never exceeds total life expectancy for the same (code, year).
type ConsistencyReport struct {
	OverlappingRows int            `json:"overlapping_rows" yaml:"overlapping_rows"`
	Violations      []GapViolation `json:"violations,omitempty" yaml:"violations,omitempty"`
	Gap             GapStats       `json:"gap" yaml:"gap"`
	TopGapCodes     []CodeGap      `json:"top_gap_codes,omitempty" yaml:"top_gap_codes,omitempty"`
	Pass            bool           `json:"pass" yaml:"pass"`
}

// Verdict is one dimension's entry on the scorecard.
type Verdict struct {
	Dimension string `json:"dimension" yaml:"dimension"`
	Pass      bool   `json:"pass" yaml:"pass"`
	Detail    string `json:"detail" yaml:"detail"`
}

// Scorecard combines the five dimension verdicts into a pass count and a
// letter grade. A summary view, not additional logic.
type Scorecard struct {
	Verdicts    []Verdict `json:"verdicts" yaml:"verdicts"`
	Passed      int       `json:"passed" yaml:"passed"`
	Total       int       `json:"total" yaml:"total"`
	Score       float64   `json:"score" yaml:"score"` // percent
	Grade       string    `json:"grade" yaml:"grade"`
	GeneratedAt utc.Time  `json:"generated_at" yaml:"generated_at"`
}

// Report bundles all five dimension reports and the scorecard.
type Report struct {
	Completeness *CompletenessReport `json:"completeness" yaml:"completeness"`
	Uniqueness   *UniquenessReport   `json:"uniqueness" yaml:"uniqueness"`
	Validity     *ValidityReport     `json:"validity" yaml:"validity"`
	Accuracy     *AccuracyReport     `json:"accuracy" yaml:"accuracy"`
	Consistency  *ConsistencyReport  `json:"consistency" yaml:"consistency"`
	Scorecard    *Scorecard          `json:"scorecard" yaml:"scorecard"`
}
