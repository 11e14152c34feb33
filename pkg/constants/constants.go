// Package constants provides shared constants used throughout the lifetable codebase.
// This includes year ranges, plausibility bounds, tolerances, and other configuration
// values that should be consistent across the application.
package constants

// Year range constants bound the observation window for every source.
const (
	// YearMin is the earliest observation year admitted into the pipeline
	YearMin = 1950

	// YearMax is the latest observation year admitted into the pipeline
	YearMax = 2024

	// RawYearMin is the pre-filter lower bound applied to positional sources
	// before the canonical year filter, guarding against header rows parsed as data
	RawYearMin = 1900

	// RawYearMax is the pre-filter upper bound applied to positional sources
	RawYearMax = 2100
)

// Plausibility bounds for life-expectancy values, in years.
const (
	// LifeExpMin is the lower plausible bound for any life-expectancy metric
	LifeExpMin = 13.0

	// LifeExpMax is the upper plausible bound for any life-expectancy metric
	LifeExpMax = 95.0
)

// Tolerance constants calibrate the quality and conflict engines.
const (
	// AccuracyTolerance is the maximum acceptable mean absolute difference,
	// in years, between two sources measuring the same quantity
	AccuracyTolerance = 3.5

	// DivergenceTolerance is the maximum acceptable max-min spread, in years,
	// across directly comparable total life-expectancy sources
	DivergenceTolerance = 2.5

	// CompletenessThreshold is the minimum average metric fill rate, as a
	// percentage, for the completeness dimension to pass. Lenient on purpose:
	// multi-source historical data is expected to be sparse.
	CompletenessThreshold = 30.0

	// MinComparableSources is the minimum number of present values required
	// before a row's divergence is evaluated
	MinComparableSources = 2
)

// Sampling limits for report output.
const (
	// TopDiscrepancies is the number of largest single-row discrepancies
	// surfaced by the accuracy check and the divergence engine
	TopDiscrepancies = 5

	// TopGapCodes is the number of codes surfaced by average health gap
	TopGapCodes = 10

	// UnresolvedSampleLimit caps the number of unresolved names sampled
	// per source for diagnostics
	UnresolvedSampleLimit = 8
)

// AggregateCodePrefix marks synthetic region/world codes in the reference
// source. Codes with this prefix identify regional or world groupings rather
// than countries and must be excluded from entity resolution and from the
// merged output.
const AggregateCodePrefix = "OWID_"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
