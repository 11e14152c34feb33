package sources

import (
	"sort"

	"github.com/agentstation/lifetable/pkg/constants"
	"github.com/agentstation/lifetable/pkg/dataset"
	"github.com/agentstation/lifetable/pkg/errors"
	"github.com/agentstation/lifetable/pkg/tabular"
)

// requireColumns verifies that every named column is present, returning a
// SchemaError for the first one missing. The pipeline must never proceed
// with a reinterpreted or misaligned column.
func requireColumns(table *tabular.Table, source ID, columns ...string) error {
	for _, col := range columns {
		if !table.HasColumn(col) {
			return errors.NewSchemaError(source.String(), col)
		}
	}
	return nil
}

// dedupeMean folds duplicate (code, year) groups into a single record whose
// value is the arithmetic mean of the group's valid values. Order-independent:
// the result is identical regardless of input ordering, and the output is
// sorted by key. The number of folded rows is recorded on stats.
func dedupeMean(records []dataset.Record, stats *Stats) []dataset.Record {
	type group struct {
		name  string
		sum   float64
		count int
	}

	groups := make(map[dataset.Key]*group, len(records))
	for _, r := range records {
		g, ok := groups[r.Key]
		if !ok {
			g = &group{name: r.Name}
			groups[r.Key] = g
		} else {
			stats.Deduplicated++
			if g.name == "" {
				g.name = r.Name
			}
		}
		if r.Valid {
			g.sum += r.Value
			g.count++
		}
	}

	out := make([]dataset.Record, 0, len(groups))
	for key, g := range groups {
		rec := dataset.Record{Key: key, Name: g.name}
		if g.count > 0 {
			rec.Value = g.sum / float64(g.count)
			rec.Valid = true
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key.Less(out[j].Key)
	})
	return out
}

// filterYears drops records outside [min, max], recording the drop count.
func filterYears(records []dataset.Record, min, max int, stats *Stats) []dataset.Record {
	out := records[:0]
	for _, r := range records {
		if r.Key.Year < min || r.Key.Year > max {
			stats.DroppedOutOfRange++
			continue
		}
		out = append(out, r)
	}
	return out
}

// sampleUnresolved records an unresolved name on stats, keeping at most
// UnresolvedSampleLimit distinct samples.
func sampleUnresolved(stats *Stats, name string) {
	stats.Unresolved++
	if len(stats.UnresolvedSamples) >= constants.UnresolvedSampleLimit {
		return
	}
	for _, s := range stats.UnresolvedSamples {
		if s == name {
			return
		}
	}
	stats.UnresolvedSamples = append(stats.UnresolvedSamples, name)
}
