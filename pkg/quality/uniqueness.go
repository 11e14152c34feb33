package quality

import (
	"sort"

	"github.com/agentstation/lifetable/pkg/dataset"
)

// Uniqueness verifies the (code, year) composite key has no duplicates and
// that no fully identical row exists. Any duplicate is a merge defect, so
// this dimension fails hard rather than against a threshold.
func (e *Engine) Uniqueness(ds *dataset.Dataset) *UniquenessReport {
	report := &UniquenessReport{
		TotalRows:       ds.Len(),
		UniqueCountries: len(ds.Codes()),
		UniqueYears:     len(ds.Years()),
		MaxRowsPerKey:   0,
	}

	report.TheoreticalGrid = report.UniqueCountries * report.UniqueYears
	if report.TheoreticalGrid > 0 {
		report.GridSparsity = float64(report.TotalRows) / float64(report.TheoreticalGrid) * 100
	}

	counts := make(map[dataset.Key]int, ds.Len())
	for i := range ds.Rows {
		counts[ds.Rows[i].Key]++
	}
	for key, n := range counts {
		if n > report.MaxRowsPerKey {
			report.MaxRowsPerKey = n
		}
		if n > 1 {
			report.DuplicateKeys = append(report.DuplicateKeys, key)
		}
	}
	sort.Slice(report.DuplicateKeys, func(i, j int) bool {
		return report.DuplicateKeys[i].Less(report.DuplicateKeys[j])
	})

	report.DuplicateRows = fullDuplicates(ds)
	report.Pass = len(report.DuplicateKeys) == 0 && report.DuplicateRows == 0

	return report
}

// fullDuplicates counts rows identical in every field to an earlier row.
func fullDuplicates(ds *dataset.Dataset) int {
	dups := 0
	seen := make(map[dataset.Key]*dataset.Row, ds.Len())
	for i := range ds.Rows {
		row := &ds.Rows[i]
		prev, ok := seen[row.Key]
		if !ok {
			seen[row.Key] = row
			continue
		}
		if rowsEqual(prev, row) {
			dups++
		}
	}
	return dups
}

func rowsEqual(a, b *dataset.Row) bool {
	if a.Key != b.Key || a.Name != b.Name || len(a.Metrics) != len(b.Metrics) {
		return false
	}
	for m, v := range a.Metrics {
		if bv, ok := b.Metrics[m]; !ok || bv != v {
			return false
		}
	}
	return true
}
