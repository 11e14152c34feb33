package quality

import "github.com/agentstation/lifetable/pkg/dataset"

// Validity verifies every metric value lies within the plausible biological
// range and every year within the configured window. Violations carry their
// exact rows: legitimate extreme events (famine, conflict) produce real
// out-of-bound values that a human must judge, so nothing is dropped here.
func (e *Engine) Validity(ds *dataset.Dataset) *ValidityReport {
	report := &ValidityReport{
		LowerBound: e.cfg.LifeExpMin,
		UpperBound: e.cfg.LifeExpMax,
	}

	for _, m := range dataset.Metrics() {
		mv := MetricValidity{Metric: m}
		for i := range ds.Rows {
			row := &ds.Rows[i]
			v, ok := row.Metric(m)
			if !ok {
				continue
			}
			switch {
			case v < e.cfg.LifeExpMin:
				mv.BelowBound++
			case v > e.cfg.LifeExpMax:
				mv.AboveBound++
			default:
				continue
			}
			report.Violations = append(report.Violations, BoundViolation{
				Key:    row.Key,
				Name:   row.Name,
				Metric: m,
				Value:  v,
			})
		}
		report.Metrics = append(report.Metrics, mv)
	}

	for i := range ds.Rows {
		year := ds.Rows[i].Key.Year
		if year < e.cfg.YearMin || year > e.cfg.YearMax {
			report.YearViolations = append(report.YearViolations, ds.Rows[i].Key)
		}
	}

	report.Pass = len(report.Violations) == 0 && len(report.YearViolations) == 0
	return report
}
