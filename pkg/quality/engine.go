package quality

import (
	"fmt"

	"github.com/agentstation/utc"

	"github.com/agentstation/lifetable/pkg/constants"
	"github.com/agentstation/lifetable/pkg/dataset"
)

// PairSpec designates two sources that measure the same underlying quantity
// and should therefore agree within tolerance.
type PairSpec struct {
	A dataset.Metric
	B dataset.Metric
}

// Config carries the engine's thresholds. Zero values fall back to the
// standard constants.
type Config struct {
	LifeExpMin            float64
	LifeExpMax            float64
	YearMin               int
	YearMax               int
	AccuracyTolerance     float64
	CompletenessThreshold float64
	TopDiscrepancies      int
	Pairs                 []PairSpec

	// ConsistencyTotal and ConsistencyHALE are the column pair for the
	// domain constraint HALE ≤ total life expectancy.
	ConsistencyTotal dataset.Metric
	ConsistencyHALE  dataset.Metric
}

// DefaultConfig returns the standard engine thresholds.
func DefaultConfig() Config {
	return Config{
		LifeExpMin:            constants.LifeExpMin,
		LifeExpMax:            constants.LifeExpMax,
		YearMin:               constants.YearMin,
		YearMax:               constants.YearMax,
		AccuracyTolerance:     constants.AccuracyTolerance,
		CompletenessThreshold: constants.CompletenessThreshold,
		TopDiscrepancies:      constants.TopDiscrepancies,
		Pairs: []PairSpec{
			{A: dataset.MetricWorldBank, B: dataset.MetricOWID},
			{A: dataset.MetricWorldBank, B: dataset.MetricUNICEF},
			{A: dataset.MetricWorldBank, B: dataset.MetricKaggle},
		},
		ConsistencyTotal: dataset.MetricWorldBank,
		ConsistencyHALE:  dataset.MetricHALE,
	}
}

// withDefaults fills zero values from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.LifeExpMin == 0 {
		c.LifeExpMin = def.LifeExpMin
	}
	if c.LifeExpMax == 0 {
		c.LifeExpMax = def.LifeExpMax
	}
	if c.YearMin == 0 {
		c.YearMin = def.YearMin
	}
	if c.YearMax == 0 {
		c.YearMax = def.YearMax
	}
	if c.AccuracyTolerance == 0 {
		c.AccuracyTolerance = def.AccuracyTolerance
	}
	if c.CompletenessThreshold == 0 {
		c.CompletenessThreshold = def.CompletenessThreshold
	}
	if c.TopDiscrepancies == 0 {
		c.TopDiscrepancies = def.TopDiscrepancies
	}
	if c.Pairs == nil {
		c.Pairs = def.Pairs
	}
	if c.ConsistencyTotal == "" {
		c.ConsistencyTotal = def.ConsistencyTotal
	}
	if c.ConsistencyHALE == "" {
		c.ConsistencyHALE = def.ConsistencyHALE
	}
	return c
}

// Engine runs the five data-quality dimensions over a merged dataset.
type Engine struct {
	cfg Config
}

// New creates an Engine with the given config; zero-valued fields use the
// standard thresholds.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

// Run executes all five checks and assembles the scorecard.
func (e *Engine) Run(ds *dataset.Dataset) *Report {
	report := &Report{
		Completeness: e.Completeness(ds),
		Uniqueness:   e.Uniqueness(ds),
		Validity:     e.Validity(ds),
		Accuracy:     e.Accuracy(ds),
		Consistency:  e.Consistency(ds),
	}
	report.Scorecard = e.Score(report)
	return report
}

// Score combines the five dimension verdicts into the aggregate scorecard.
func (e *Engine) Score(report *Report) *Scorecard {
	card := &Scorecard{
		Verdicts: []Verdict{
			{
				Dimension: "Completeness",
				Pass:      report.Completeness.Pass,
				Detail:    fmt.Sprintf("%.1f%% avg metric fill", report.Completeness.AverageMetricFill),
			},
			{
				Dimension: "Uniqueness",
				Pass:      report.Uniqueness.Pass,
				Detail:    "Composite key integrity",
			},
			{
				Dimension: "Validity",
				Pass:      report.Validity.Pass,
				Detail:    "Range & type checks",
			},
			{
				Dimension: "Accuracy",
				Pass:      report.Accuracy.Pass,
				Detail:    fmt.Sprintf("Cross-source < %.1fyr mean Δ", e.cfg.AccuracyTolerance),
			},
			{
				Dimension: "Consistency",
				Pass:      report.Consistency.Pass,
				Detail:    "HALE ≤ total life expectancy",
			},
		},
		GeneratedAt: utc.Now(),
	}

	card.Total = len(card.Verdicts)
	for _, v := range card.Verdicts {
		if v.Pass {
			card.Passed++
		}
	}
	card.Score = float64(card.Passed) / float64(card.Total) * 100
	card.Grade = grade(card.Score)
	return card
}

// grade maps a score percentage to a letter grade.
func grade(score float64) string {
	switch {
	case score == 100:
		return "A"
	case score >= 80:
		return "B"
	case score >= 60:
		return "C"
	default:
		return "D"
	}
}
