// Package merge performs the typed full outer join of all cleaned source
// tables on (code, year), resolves name collisions in favor of the reference
// source, and produces the sorted master dataset.
package merge

import (
	"sort"

	"github.com/agentstation/lifetable/pkg/dataset"
	"github.com/agentstation/lifetable/pkg/errors"
)

// Stats holds the merge stage counts for the reporting layer.
type Stats struct {
	// TablesMerged is the number of cleaned tables joined.
	TablesMerged int `json:"tables_merged" yaml:"tables_merged"`

	// KeysJoined is the number of distinct (code, year) keys seen across
	// all inputs before the nameless filter.
	KeysJoined int `json:"keys_joined" yaml:"keys_joined"`

	// DroppedNameless counts joined rows removed because the reference
	// source had no display name for their code. These are codes that only
	// appeared via non-reference sources.
	DroppedNameless int `json:"dropped_nameless" yaml:"dropped_nameless"`

	// Overridden maps each applied display-name override code to the number
	// of rows it rewrote.
	Overridden map[string]int `json:"overridden,omitempty" yaml:"overridden,omitempty"`

	// OverrideMisses lists override codes absent from the merged table.
	OverrideMisses []string `json:"override_misses,omitempty" yaml:"override_misses,omitempty"`

	// FinalRows is the master table's row count.
	FinalRows int `json:"final_rows" yaml:"final_rows"`
}

// Merger joins cleaned tables into the master dataset.
type Merger struct {
	overrides map[string]string
}

// Option configures a Merger.
type Option func(*Merger)

// WithOverrides sets the code-keyed display-name overrides applied after the
// canonical name rebuild. Keying by code rather than name makes the override
// immune to spelling drift in any source.
func WithOverrides(overrides map[string]string) Option {
	return func(m *Merger) {
		m.overrides = overrides
	}
}

// New creates a Merger.
func New(opts ...Option) *Merger {
	m := &Merger{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Merge performs a full outer join of the cleaned tables in order, keyed on
// (code, year). The first table must be the reference source: its display
// names are authoritative, and joined rows whose code it does not name are
// removed. Output is sorted by (code, year) and has a unique key per row.
func (m *Merger) Merge(tables []*dataset.Cleaned) (*dataset.Dataset, *Stats, error) {
	if len(tables) == 0 {
		return nil, nil, errors.WrapResource(errors.ErrInvalidInput, "merge", "no cleaned tables")
	}

	stats := &Stats{TablesMerged: len(tables)}

	// Outer join: every key present in any input survives.
	index := make(map[dataset.Key]*dataset.Row)
	for _, table := range tables {
		for _, rec := range table.Records {
			row, ok := index[rec.Key]
			if !ok {
				row = &dataset.Row{
					Key:     rec.Key,
					Metrics: make(map[dataset.Metric]float64, len(tables)),
				}
				index[rec.Key] = row
			}
			// A second value for the same metric column is a duplicate
			// artifact of the join and is dropped, never summed.
			if rec.Valid {
				if _, exists := row.Metrics[table.Metric]; !exists {
					row.Metrics[table.Metric] = rec.Value
				}
			}
		}
	}
	stats.KeysJoined = len(index)

	// Rebuild names from the reference source's code → name mapping, first
	// occurrence per code. Codes the reference never names are not
	// countries the dataset can display and are removed.
	refNames := referenceNames(tables[0])

	ds := &dataset.Dataset{Rows: make([]dataset.Row, 0, len(index))}
	for _, row := range index {
		name, ok := refNames[row.Key.Code]
		if !ok {
			stats.DroppedNameless++
			continue
		}
		row.Name = name
		ds.Rows = append(ds.Rows, *row)
	}

	m.applyOverrides(ds, stats)
	ds.Sort()
	stats.FinalRows = ds.Len()

	return ds, stats, nil
}

// referenceNames builds the authoritative code → display-name mapping from
// the reference table, keeping the first occurrence per code.
func referenceNames(reference *dataset.Cleaned) map[string]string {
	names := make(map[string]string)
	for _, rec := range reference.Records {
		if rec.Name == "" {
			continue
		}
		if _, seen := names[rec.Key.Code]; !seen {
			names[rec.Key.Code] = rec.Name
		}
	}
	return names
}

// applyOverrides rewrites display names for configured codes and records the
// per-code row counts. Codes with no matching rows are reported, not errors.
func (m *Merger) applyOverrides(ds *dataset.Dataset, stats *Stats) {
	if len(m.overrides) == 0 {
		return
	}

	stats.Overridden = make(map[string]int)
	for i := range ds.Rows {
		if name, ok := m.overrides[ds.Rows[i].Key.Code]; ok {
			ds.Rows[i].Name = name
			stats.Overridden[ds.Rows[i].Key.Code]++
		}
	}
	for code := range m.overrides {
		if stats.Overridden[code] == 0 {
			stats.OverrideMisses = append(stats.OverrideMisses, code)
		}
	}
	sort.Strings(stats.OverrideMisses)
}
