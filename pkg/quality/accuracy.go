package quality

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/agentstation/lifetable/pkg/dataset"
)

// Accuracy cross-validates each designated source pair over the rows where
// both are present: mean and max absolute difference, Pearson correlation,
// and the largest single-row discrepancies for inspection. A pair passes
// when its mean absolute difference is below tolerance.
func (e *Engine) Accuracy(ds *dataset.Dataset) *AccuracyReport {
	report := &AccuracyReport{
		Tolerance: e.cfg.AccuracyTolerance,
		Pass:      true,
	}

	for _, pair := range e.cfg.Pairs {
		pa := e.comparePair(ds, pair)
		if pa.Pairs > 0 && !pa.Pass {
			report.Pass = false
		}
		report.Pairs = append(report.Pairs, pa)
	}

	return report
}

func (e *Engine) comparePair(ds *dataset.Dataset, pair PairSpec) PairAccuracy {
	pa := PairAccuracy{MetricA: pair.A, MetricB: pair.B, Pass: true}

	var xs, ys []float64
	var discrepancies []Discrepancy

	for i := range ds.Rows {
		row := &ds.Rows[i]
		a, okA := row.Metric(pair.A)
		b, okB := row.Metric(pair.B)
		if !okA || !okB {
			continue
		}

		xs = append(xs, a)
		ys = append(ys, b)
		diff := math.Abs(a - b)
		if diff > pa.MaxAbsDiff {
			pa.MaxAbsDiff = diff
		}
		discrepancies = append(discrepancies, Discrepancy{
			Key:     row.Key,
			Name:    row.Name,
			ValueA:  a,
			ValueB:  b,
			AbsDiff: diff,
		})
	}

	pa.Pairs = len(xs)
	if pa.Pairs == 0 {
		return pa
	}

	sum := 0.0
	for i := range xs {
		sum += math.Abs(xs[i] - ys[i])
	}
	pa.MeanAbsDiff = sum / float64(pa.Pairs)
	if pa.Pairs > 1 {
		pa.Correlation = stat.Correlation(xs, ys, nil)
	}
	pa.Pass = pa.MeanAbsDiff < e.cfg.AccuracyTolerance

	sort.Slice(discrepancies, func(i, j int) bool {
		if discrepancies[i].AbsDiff != discrepancies[j].AbsDiff {
			return discrepancies[i].AbsDiff > discrepancies[j].AbsDiff
		}
		return discrepancies[i].Key.Less(discrepancies[j].Key)
	})
	if len(discrepancies) > e.cfg.TopDiscrepancies {
		discrepancies = discrepancies[:e.cfg.TopDiscrepancies]
	}
	pa.TopDiscrepancies = discrepancies

	return pa
}
