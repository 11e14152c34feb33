// Package sources defines the per-source cleaners that turn raw tabular
// files into cleaned record tables, plus the pipeline that runs them.
//
// Each source is a variant implementing the Cleaner interface, selected by
// its ID. Cleaners share a common shape (column selection, dimensional
// filtering, name resolution for name-bearing sources, mean aggregation of
// duplicate keys, year-range filtering) with source-specific rules.
package sources

import (
	"context"

	"github.com/agentstation/lifetable/pkg/dataset"
)

// ID identifies a data source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Known source IDs, in pipeline order. The reference source is always first
// so its naming convention wins merge conflicts.
const (
	OWIDID      ID = "owid"
	WorldBankID ID = "worldbank"
	KaggleID    ID = "kaggle"
	UNICEFID    ID = "unicef"
	WHOID       ID = "who"
	CDCID       ID = "cdc"
)

// IDs returns all source IDs in pipeline order.
func IDs() []ID {
	return []ID{
		OWIDID,
		WorldBankID,
		KaggleID,
		UNICEFID,
		WHOID,
		CDCID,
	}
}

// Cleaner produces a cleaned record table for one source.
//
// Clean returns the cleaned table and the stage counts. A structural failure
// (missing file, undecodable file, missing required column) is returned as an
// error; the pipeline decides whether it is fatal (reference source) or
// degrades to an empty contribution (everything else).
type Cleaner interface {
	// ID returns the source's identifier.
	ID() ID

	// Metric returns the merged-table column this source contributes.
	Metric() dataset.Metric

	// Clean reads, filters, resolves, and aggregates the source.
	Clean(ctx context.Context) (*dataset.Cleaned, *Stats, error)
}

// Stats holds one cleaner's stage counts. These are data for the reporting
// layer and for tests, not console noise.
type Stats struct {
	Source ID `json:"source" yaml:"source"`

	// RowsRead is the number of raw rows decoded from the file.
	RowsRead int `json:"rows_read" yaml:"rows_read"`

	// Corrected counts raw names rewritten by the correction table.
	Corrected int `json:"corrected" yaml:"corrected"`

	// DroppedNullCode counts rows discarded for a missing code.
	DroppedNullCode int `json:"dropped_null_code" yaml:"dropped_null_code"`

	// DroppedAggregate counts rows discarded for an aggregate code.
	DroppedAggregate int `json:"dropped_aggregate" yaml:"dropped_aggregate"`

	// DroppedNullValue counts rows discarded for a missing or non-numeric
	// metric value where the source requires one.
	DroppedNullValue int `json:"dropped_null_value" yaml:"dropped_null_value"`

	// DroppedFiltered counts rows discarded by dimensional filters.
	DroppedFiltered int `json:"dropped_filtered" yaml:"dropped_filtered"`

	// Unresolved counts rows whose name had no mapping entry after
	// normalization. Never coerced to a guessed code.
	Unresolved int `json:"unresolved" yaml:"unresolved"`

	// UnresolvedSamples holds up to UnresolvedSampleLimit distinct
	// unresolved names for diagnostics.
	UnresolvedSamples []string `json:"unresolved_samples,omitempty" yaml:"unresolved_samples,omitempty"`

	// Deduplicated counts raw rows folded into an existing (code, year)
	// group by mean aggregation.
	Deduplicated int `json:"deduplicated" yaml:"deduplicated"`

	// DroppedOutOfRange counts rows discarded by the year-range filter.
	DroppedOutOfRange int `json:"dropped_out_of_range" yaml:"dropped_out_of_range"`

	// FinalRows is the cleaned table's row count.
	FinalRows int `json:"final_rows" yaml:"final_rows"`

	// Degraded is set when a non-reference source failed structurally and
	// contributed zero rows. Err holds the recorded failure.
	Degraded bool  `json:"degraded" yaml:"degraded"`
	Err      error `json:"-" yaml:"-"`
}
