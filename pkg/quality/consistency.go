package quality

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/agentstation/lifetable/pkg/constants"
	"github.com/agentstation/lifetable/pkg/dataset"
)

// Consistency validates the domain constraint that healthy life expectancy
// never exceeds total life expectancy for the same (code, year). Violations
// are listed individually with their magnitude; a small negative gap is
// expected methodological noise between providers, reported rather than
// treated as corruption. Health-gap statistics and the highest-gap codes are
// reported alongside.
func (e *Engine) Consistency(ds *dataset.Dataset) *ConsistencyReport {
	report := &ConsistencyReport{Pass: true}

	var gaps []float64
	codeGaps := make(map[string][]float64)

	for i := range ds.Rows {
		row := &ds.Rows[i]
		total, okT := row.Metric(e.cfg.ConsistencyTotal)
		hale, okH := row.Metric(e.cfg.ConsistencyHALE)
		if !okT || !okH {
			continue
		}

		report.OverlappingRows++
		gap := total - hale
		gaps = append(gaps, gap)
		codeGaps[row.Key.Code] = append(codeGaps[row.Key.Code], gap)

		if gap < 0 {
			report.Violations = append(report.Violations, GapViolation{
				Key:   row.Key,
				Name:  row.Name,
				Total: total,
				HALE:  hale,
				Gap:   gap,
			})
		}
	}

	if report.OverlappingRows == 0 {
		return report
	}

	report.Gap = gapStats(gaps)
	report.TopGapCodes = topGapCodes(codeGaps, constants.TopGapCodes)
	report.Pass = len(report.Violations) == 0

	return report
}

func gapStats(gaps []float64) GapStats {
	sorted := append([]float64(nil), gaps...)
	sort.Float64s(sorted)

	return GapStats{
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		StdDev: stat.StdDev(sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

// topGapCodes returns the n codes with the largest average gap, descending.
func topGapCodes(codeGaps map[string][]float64, n int) []CodeGap {
	averages := make([]CodeGap, 0, len(codeGaps))
	for code, gaps := range codeGaps {
		averages = append(averages, CodeGap{Code: code, AvgGap: stat.Mean(gaps, nil)})
	}
	sort.Slice(averages, func(i, j int) bool {
		if averages[i].AvgGap != averages[j].AvgGap {
			return averages[i].AvgGap > averages[j].AvgGap
		}
		return averages[i].Code < averages[j].Code
	})
	if len(averages) > n {
		averages = averages[:n]
	}
	return averages
}
