// Package conflicts quantifies methodology-aware disagreement between
// sources. For each row it computes the max−min spread of the directly
// comparable total life-expectancy metrics that are present, evaluating only
// rows with enough sources to disagree. Unlike the pairwise accuracy check,
// this n-of-k comparison handles sources that do not report every row.
//
// High divergence is a finding, never an error: no row is dropped and no run
// fails because of it.
package conflicts

import (
	"sort"

	"github.com/agentstation/lifetable/pkg/constants"
	"github.com/agentstation/lifetable/pkg/dataset"
)

// Config carries the divergence engine's parameters. Zero values fall back
// to the standard constants.
type Config struct {
	// Tolerance is the spread, in years, above which a row is a severe
	// conflict.
	Tolerance float64

	// MinSources is the minimum number of present comparable values before
	// a row is evaluated. A single value cannot diverge from itself.
	MinSources int

	// Metrics is the directly comparable metric set.
	Metrics []dataset.Metric

	// TopConflicts caps the surfaced worst rows.
	TopConflicts int
}

// withDefaults fills zero values with the standard parameters.
func (c Config) withDefaults() Config {
	if c.Tolerance == 0 {
		c.Tolerance = constants.DivergenceTolerance
	}
	if c.MinSources == 0 {
		c.MinSources = constants.MinComparableSources
	}
	if c.Metrics == nil {
		c.Metrics = dataset.ComparableMetrics()
	}
	if c.TopConflicts == 0 {
		c.TopConflicts = constants.TopDiscrepancies
	}
	return c
}

// RowConflict is one row's divergence measurement.
type RowConflict struct {
	Key        dataset.Key `json:"key" yaml:"key"`
	Name       string      `json:"name" yaml:"name"`
	Sources    int         `json:"sources" yaml:"sources"`
	Divergence float64     `json:"divergence" yaml:"divergence"`
}

// Results is the divergence engine's structured output.
type Results struct {
	Tolerance       float64       `json:"tolerance" yaml:"tolerance"`
	TotalRows       int           `json:"total_rows" yaml:"total_rows"`
	ComparableRows  int           `json:"comparable_rows" yaml:"comparable_rows"`
	WithinTolerance int           `json:"within_tolerance" yaml:"within_tolerance"`
	SevereConflicts int           `json:"severe_conflicts" yaml:"severe_conflicts"`
	TopConflicts    []RowConflict `json:"top_conflicts,omitempty" yaml:"top_conflicts,omitempty"`
}

// Divergence computes a single row's max−min spread over the comparable
// metrics, returning the number of present values alongside. ok is false
// when fewer than minSources values are present.
func Divergence(row *dataset.Row, metrics []dataset.Metric, minSources int) (spread float64, present int, ok bool) {
	var min, max float64
	for _, m := range metrics {
		v, has := row.Metric(m)
		if !has {
			continue
		}
		if present == 0 {
			min, max = v, v
		} else {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		present++
	}
	if present < minSources {
		return 0, present, false
	}
	return max - min, present, true
}

// Measure evaluates the whole dataset against the config, surfacing the
// worst conflicts in descending divergence order.
func Measure(ds *dataset.Dataset, cfg Config) *Results {
	cfg = cfg.withDefaults()

	results := &Results{
		Tolerance: cfg.Tolerance,
		TotalRows: ds.Len(),
	}

	var severe []RowConflict
	for i := range ds.Rows {
		row := &ds.Rows[i]
		spread, present, ok := Divergence(row, cfg.Metrics, cfg.MinSources)
		if !ok {
			continue
		}
		results.ComparableRows++
		if spread <= cfg.Tolerance {
			results.WithinTolerance++
			continue
		}
		results.SevereConflicts++
		severe = append(severe, RowConflict{
			Key:        row.Key,
			Name:       row.Name,
			Sources:    present,
			Divergence: spread,
		})
	}

	sort.Slice(severe, func(i, j int) bool {
		if severe[i].Divergence != severe[j].Divergence {
			return severe[i].Divergence > severe[j].Divergence
		}
		return severe[i].Key.Less(severe[j].Key)
	})
	if len(severe) > cfg.TopConflicts {
		severe = severe[:cfg.TopConflicts]
	}
	results.TopConflicts = severe

	return results
}
