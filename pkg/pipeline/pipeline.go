// Package pipeline orchestrates the full transform run: build the name →
// code mapping from the reference source, clean every source (optionally in
// parallel), and merge the cleaned tables into the master dataset.
//
// Stage ordering is fixed: the resolver's mapping must exist before any
// name-bearing source is cleaned, and the merger runs only after every
// cleaner completes. Within that ordering the cleaners are mutually
// independent; their only shared resource is the immutable mapping.
package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/agentstation/utc"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/lifetable/pkg/dataset"
	"github.com/agentstation/lifetable/pkg/errors"
	"github.com/agentstation/lifetable/pkg/logging"
	"github.com/agentstation/lifetable/pkg/merge"
	"github.com/agentstation/lifetable/pkg/normalize"
	"github.com/agentstation/lifetable/pkg/resolve"
	"github.com/agentstation/lifetable/pkg/sources"
)

// Default source file names inside the raw data directory.
var defaultFiles = map[sources.ID]string{
	sources.OWIDID:      "owid_historical_life_expectancy.csv",
	sources.WorldBankID: "worldbank_life_expectancy.csv",
	sources.KaggleID:    "kaggle_health_factors.csv",
	sources.UNICEFID:    "unicef_life_expectancy.csv",
	sources.WHOID:       "who_healthy_life_expectancy.csv",
	sources.CDCID:       "cdc_us_demographics.xlsx",
}

// Config carries a pipeline run's inputs.
type Config struct {
	// RawDir is the directory holding the fetched source files.
	RawDir string

	// Files overrides the default file name per source, relative to RawDir
	// unless absolute.
	Files map[sources.ID]string

	// Clean carries the shared cleaning parameters.
	Clean sources.Config

	// CorrectionsPath points at an external name-correction artifact;
	// empty uses the embedded default table.
	CorrectionsPath string

	// Overrides is the code-keyed display-name override table.
	Overrides map[string]string

	// Parallel runs the independent cleaners concurrently.
	Parallel bool
}

// Path returns the resolved path for a source's file.
func (c Config) Path(id sources.ID) string {
	name, ok := c.Files[id]
	if !ok {
		name = defaultFiles[id]
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.RawDir, name)
}

// Result is a pipeline run's complete output: the master dataset plus the
// per-stage diagnostics a reporting layer renders.
type Result struct {
	Dataset     *dataset.Dataset
	SourceStats map[sources.ID]*sources.Stats
	MergeStats  *merge.Stats
	MappingSize int
	ExecutedAt  utc.Time
	Duration    time.Duration
}

// Run executes the pipeline. Reference-source failure is fatal: without it
// no mapping can be built and no naming authority exists. Any other source's
// structural failure degrades to an empty contribution recorded on its
// stats.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	start := time.Now()
	log := logging.FromContext(ctx)

	normalizer, err := loadNormalizer(cfg)
	if err != nil {
		return nil, err
	}

	clean := cfg.Clean.WithDefaults()
	owid := sources.NewOWID(cfg.Path(sources.OWIDID), clean)

	refRows, err := owid.ReferenceRows(ctx)
	if err != nil {
		return nil, errors.NewSourceError(sources.OWIDID.String(), cfg.Path(sources.OWIDID), err)
	}
	// The reference's own names go through the correction table too: both
	// sides of a Resolve must see the same spelling, even when the reference
	// file ships a listed variant.
	for i := range refRows {
		refRows[i].Name = normalizer.Apply(refRows[i].Name)
	}
	mapping := resolve.Build(refRows, clean.AggregatePrefix)
	log.Info().Int("names", mapping.Len()).Msg("Built name mapping from reference source")

	cleaners := []sources.Cleaner{
		owid,
		sources.NewWorldBank(cfg.Path(sources.WorldBankID), clean),
		sources.NewKaggle(cfg.Path(sources.KaggleID), clean, normalizer, mapping),
		sources.NewUNICEF(cfg.Path(sources.UNICEFID), clean),
		sources.NewWHO(cfg.Path(sources.WHOID), clean, normalizer, mapping),
		sources.NewCDC(cfg.Path(sources.CDCID), clean),
	}

	cleaned, stats, err := runCleaners(ctx, cleaners, cfg.Parallel)
	if err != nil {
		return nil, err
	}

	merger := merge.New(merge.WithOverrides(cfg.Overrides))
	ds, mergeStats, err := merger.Merge(cleaned)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("keys", mergeStats.KeysJoined).
		Int("dropped_nameless", mergeStats.DroppedNameless).
		Int("rows", mergeStats.FinalRows).
		Msg("Merged cleaned sources")

	return &Result{
		Dataset:     ds,
		SourceStats: stats,
		MergeStats:  mergeStats,
		MappingSize: mapping.Len(),
		ExecutedAt:  utc.Now(),
		Duration:    time.Since(start),
	}, nil
}

func loadNormalizer(cfg Config) (*normalize.Normalizer, error) {
	if cfg.CorrectionsPath == "" {
		return normalize.Default(), nil
	}
	return normalize.Load(cfg.CorrectionsPath)
}

// runCleaners executes every cleaner, sequentially or concurrently, and
// joins before returning. Cleaned tables keep the cleaner order so the
// reference source stays first for the merge.
func runCleaners(ctx context.Context, cleaners []sources.Cleaner, parallel bool) ([]*dataset.Cleaned, map[sources.ID]*sources.Stats, error) {
	tables := make([]*dataset.Cleaned, len(cleaners))
	stats := make(map[sources.ID]*sources.Stats, len(cleaners))

	if parallel {
		var group errgroup.Group
		results := make([]*sources.Stats, len(cleaners))
		for i, cleaner := range cleaners {
			group.Go(func() error {
				table, st, err := runCleaner(ctx, cleaner)
				if err != nil {
					return err
				}
				tables[i] = table
				results[i] = st
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return nil, nil, err
		}
		for _, st := range results {
			stats[st.Source] = st
		}
		return tables, stats, nil
	}

	for i, cleaner := range cleaners {
		table, st, err := runCleaner(ctx, cleaner)
		if err != nil {
			return nil, nil, err
		}
		tables[i] = table
		stats[st.Source] = st
	}
	return tables, stats, nil
}

// runCleaner cleans one source, degrading a non-reference structural failure
// to an empty contribution with the failure recorded on its stats.
func runCleaner(ctx context.Context, cleaner sources.Cleaner) (*dataset.Cleaned, *sources.Stats, error) {
	ctx = logging.WithSource(ctx, cleaner.ID().String())
	log := logging.FromContext(ctx)

	table, st, err := cleaner.Clean(ctx)
	if err != nil {
		if cleaner.ID() == sources.OWIDID {
			return nil, nil, errors.NewSourceError(cleaner.ID().String(), "", err)
		}
		log.Warn().
			Err(err).
			Msg("Source degraded to empty contribution")
		st.Degraded = true
		st.Err = err
		return &dataset.Cleaned{Metric: cleaner.Metric()}, st, nil
	}

	log.Info().
		Int("rows_read", st.RowsRead).
		Int("unresolved", st.Unresolved).
		Int("deduplicated", st.Deduplicated).
		Int("out_of_range", st.DroppedOutOfRange).
		Int("final", st.FinalRows).
		Msg("Cleaned source")
	return table, st, nil
}
