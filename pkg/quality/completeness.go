package quality

import "github.com/agentstation/lifetable/pkg/dataset"

// Completeness measures the non-null fraction per metric column and the
// overall metric fill rate. The pass threshold is deliberately lenient:
// sparsity is expected when six sources cover different country/year spans.
func (e *Engine) Completeness(ds *dataset.Dataset) *CompletenessReport {
	report := &CompletenessReport{
		TotalRows: ds.Len(),
		Threshold: e.cfg.CompletenessThreshold,
	}

	metrics := dataset.Metrics()

	// Key columns are non-null by construction but still reported, so a
	// regression in the merger shows up here rather than downstream.
	nameFilled := 0
	for i := range ds.Rows {
		if ds.Rows[i].Name != "" {
			nameFilled++
		}
	}
	report.Columns = append(report.Columns,
		ColumnFill{Column: "iso3", Present: ds.Len(), FillRate: rate(ds.Len(), ds.Len())},
		ColumnFill{Column: "country_name", Present: nameFilled, Missing: ds.Len() - nameFilled, FillRate: rate(nameFilled, ds.Len())},
		ColumnFill{Column: "year", Present: ds.Len(), FillRate: rate(ds.Len(), ds.Len())},
	)

	sumRates := 0.0
	for _, m := range metrics {
		present := 0
		for i := range ds.Rows {
			if _, ok := ds.Rows[i].Metric(m); ok {
				present++
			}
		}
		fill := rate(present, ds.Len())
		sumRates += fill
		report.Columns = append(report.Columns, ColumnFill{
			Column:   m.String(),
			Present:  present,
			Missing:  ds.Len() - present,
			FillRate: fill,
		})
		report.FilledCells += present
	}

	report.MetricCells = ds.Len() * len(metrics)
	report.OverallFillRate = rate(report.FilledCells, report.MetricCells)
	if len(metrics) > 0 {
		report.AverageMetricFill = sumRates / float64(len(metrics))
	}
	report.Pass = report.AverageMetricFill > e.cfg.CompletenessThreshold

	return report
}

// rate returns present/total as a percentage, 0 for an empty total.
func rate(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(present) / float64(total) * 100
}
