// Package lifetable integrates life-expectancy observations from six
// independently published sources into one canonical dataset keyed by
// (ISO3 country code, year), and quantifies where the sources disagree.
//
// The high-level entry point is New, configured with functional options:
//
//	lt, err := lifetable.New(lifetable.WithRawDir("data/raw"))
//	if err != nil {
//		return err
//	}
//	result, err := lt.Transform(ctx)
//
// The underlying stages are exposed as packages under pkg/ for callers that
// need finer control.
package lifetable

import (
	"context"

	"github.com/agentstation/lifetable/pkg/conflicts"
	"github.com/agentstation/lifetable/pkg/logging"
	"github.com/agentstation/lifetable/pkg/pipeline"
	"github.com/agentstation/lifetable/pkg/quality"
)

// Lifetable runs the integration pipeline and its analyses over one raw data
// directory.
type Lifetable interface {
	// Transform cleans every source and merges them into the master dataset.
	Transform(ctx context.Context) (*pipeline.Result, error)

	// Quality runs Transform and evaluates the merged dataset across the
	// five data-quality dimensions.
	Quality(ctx context.Context) (*pipeline.Result, *quality.Report, error)

	// Conflicts runs Transform and measures cross-source divergence.
	Conflicts(ctx context.Context) (*pipeline.Result, *conflicts.Results, error)
}

// lifetable is the internal implementation of the Lifetable interface.
type lifetable struct {
	config *config
}

// New creates a Lifetable instance with the given options.
func New(opts ...Option) (Lifetable, error) {
	c := defaultConfig()
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return &lifetable{config: c}, nil
}

// Transform implements Lifetable.
func (l *lifetable) Transform(ctx context.Context) (*pipeline.Result, error) {
	return pipeline.Run(logging.WithOperation(ctx, "transform"), l.config.pipeline)
}

// Quality implements Lifetable.
func (l *lifetable) Quality(ctx context.Context) (*pipeline.Result, *quality.Report, error) {
	result, err := l.Transform(ctx)
	if err != nil {
		return nil, nil, err
	}
	report := quality.New(l.config.quality).Run(result.Dataset)
	return result, report, nil
}

// Conflicts implements Lifetable.
func (l *lifetable) Conflicts(ctx context.Context) (*pipeline.Result, *conflicts.Results, error) {
	result, err := l.Transform(ctx)
	if err != nil {
		return nil, nil, err
	}
	return result, conflicts.Measure(result.Dataset, l.config.conflicts), nil
}
