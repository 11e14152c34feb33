// Package output renders the pipeline's structured reports for the CLI. It
// is presentation only: every number it prints comes from a report object,
// never re-derived from the dataset.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/agentstation/lifetable/pkg/conflicts"
	"github.com/agentstation/lifetable/pkg/pipeline"
	"github.com/agentstation/lifetable/pkg/quality"
	"github.com/agentstation/lifetable/pkg/sources"
)

// RunSummary renders the per-source cleaning stats and merge counts.
func RunSummary(w io.Writer, result *pipeline.Result) error {
	fmt.Fprintf(w, "Merged %d rows across %d sources (mapping: %d names, %s)\n\n",
		result.Dataset.Len(), len(result.SourceStats), result.MappingSize, result.Duration.Round(time.Millisecond))

	table := tablewriter.NewTable(w)
	table.Header("Source", "Rows Read", "Corrected", "Unresolved", "Deduped", "Out of Range", "Final", "Status")

	for _, id := range sources.IDs() {
		st, ok := result.SourceStats[id]
		if !ok {
			continue
		}
		status := "ok"
		if st.Degraded {
			status = fmt.Sprintf("degraded: %v", st.Err)
		}
		if err := table.Append(
			st.Source.String(),
			st.RowsRead,
			st.Corrected,
			st.Unresolved,
			st.Deduplicated,
			st.DroppedOutOfRange,
			st.FinalRows,
			status,
		); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	ms := result.MergeStats
	fmt.Fprintf(w, "\nJoin: %d keys, %d dropped nameless, %d final rows\n",
		ms.KeysJoined, ms.DroppedNameless, ms.FinalRows)
	for code, n := range ms.Overridden {
		fmt.Fprintf(w, "Override %s applied to %d rows\n", code, n)
	}
	for _, code := range ms.OverrideMisses {
		fmt.Fprintf(w, "Override %s matched no rows\n", code)
	}
	return nil
}

// QualityReport renders the five-dimension report and scorecard.
func QualityReport(w io.Writer, report *quality.Report) error {
	fmt.Fprintln(w, "Completeness")
	fill := tablewriter.NewTable(w)
	fill.Header("Column", "Present", "Missing", "Fill %")
	for _, col := range report.Completeness.Columns {
		if err := fill.Append(col.Column, col.Present, col.Missing, fmt.Sprintf("%.1f", col.FillRate)); err != nil {
			return err
		}
	}
	if err := fill.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Overall metric fill: %d/%d cells (%.1f%%)\n\n",
		report.Completeness.FilledCells, report.Completeness.MetricCells, report.Completeness.OverallFillRate)

	u := report.Uniqueness
	fmt.Fprintln(w, "Uniqueness")
	fmt.Fprintf(w, "  %d rows, %d countries, %d years, grid sparsity %.1f%%\n",
		u.TotalRows, u.UniqueCountries, u.UniqueYears, u.GridSparsity)
	fmt.Fprintf(w, "  max rows per key: %d, duplicate keys: %d, duplicate rows: %d\n\n",
		u.MaxRowsPerKey, len(u.DuplicateKeys), u.DuplicateRows)

	v := report.Validity
	fmt.Fprintf(w, "Validity (%.0f ≤ value ≤ %.0f)\n", v.LowerBound, v.UpperBound)
	for _, mv := range v.Metrics {
		fmt.Fprintf(w, "  %-18s below: %d  above: %d\n", mv.Metric, mv.BelowBound, mv.AboveBound)
	}
	for _, bv := range v.Violations {
		fmt.Fprintf(w, "  out of bounds: %s %d %s = %.2f\n", bv.Key.Code, bv.Key.Year, bv.Metric, bv.Value)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Accuracy (tolerance %.1f yrs)\n", report.Accuracy.Tolerance)
	acc := tablewriter.NewTable(w)
	acc.Header("Pair", "Rows", "Mean |Δ|", "Max |Δ|", "Corr", "Pass")
	for _, pair := range report.Accuracy.Pairs {
		if err := acc.Append(
			fmt.Sprintf("%s vs %s", pair.MetricA, pair.MetricB),
			pair.Pairs,
			fmt.Sprintf("%.3f", pair.MeanAbsDiff),
			fmt.Sprintf("%.3f", pair.MaxAbsDiff),
			fmt.Sprintf("%.4f", pair.Correlation),
			pair.Pass,
		); err != nil {
			return err
		}
	}
	if err := acc.Render(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	c := report.Consistency
	fmt.Fprintln(w, "Consistency (HALE ≤ total LE)")
	fmt.Fprintf(w, "  overlapping rows: %d, violations: %d\n", c.OverlappingRows, len(c.Violations))
	if c.OverlappingRows > 0 {
		fmt.Fprintf(w, "  gap mean %.2f, median %.2f, std %.2f, range %.2f – %.2f\n",
			c.Gap.Mean, c.Gap.Median, c.Gap.StdDev, c.Gap.Min, c.Gap.Max)
	}
	for _, viol := range c.Violations {
		fmt.Fprintf(w, "  violation: %s %d HALE %.2f > LE %.2f (gap %.2f)\n",
			viol.Key.Code, viol.Key.Year, viol.HALE, viol.Total, viol.Gap)
	}
	fmt.Fprintln(w)

	return Scorecard(w, report.Scorecard)
}

// Scorecard renders the aggregate verdicts.
func Scorecard(w io.Writer, card *quality.Scorecard) error {
	table := tablewriter.NewTable(w)
	table.Header("Dimension", "Status", "Detail")
	for _, verdict := range card.Verdicts {
		status := "PASS"
		if !verdict.Pass {
			status = "FAIL"
		}
		if err := table.Append(verdict.Dimension, status, verdict.Detail); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Final score: %d/%d (%.0f%%), grade %s\n", card.Passed, card.Total, card.Score, card.Grade)
	return nil
}

// ConflictResults renders the divergence engine's output.
func ConflictResults(w io.Writer, results *conflicts.Results) error {
	fmt.Fprintf(w, "Divergence across comparable sources (tolerance %.1f yrs)\n", results.Tolerance)
	fmt.Fprintf(w, "  total rows: %d\n", results.TotalRows)
	fmt.Fprintf(w, "  comparable (≥2 sources): %d\n", results.ComparableRows)
	fmt.Fprintf(w, "  within tolerance: %d\n", results.WithinTolerance)
	fmt.Fprintf(w, "  severe conflicts: %d\n", results.SevereConflicts)

	if len(results.TopConflicts) == 0 {
		return nil
	}
	fmt.Fprintln(w, "\nTop conflicts:")
	table := tablewriter.NewTable(w)
	table.Header("Country", "Year", "Sources", "Divergence")
	for _, rc := range results.TopConflicts {
		if err := table.Append(rc.Name, rc.Key.Year, rc.Sources, fmt.Sprintf("%.2f", rc.Divergence)); err != nil {
			return err
		}
	}
	return table.Render()
}
