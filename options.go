package lifetable

import (
	"github.com/agentstation/lifetable/pkg/conflicts"
	"github.com/agentstation/lifetable/pkg/errors"
	"github.com/agentstation/lifetable/pkg/merge"
	"github.com/agentstation/lifetable/pkg/pipeline"
	"github.com/agentstation/lifetable/pkg/quality"
	"github.com/agentstation/lifetable/pkg/sources"
)

// config holds the assembled stage configurations.
type config struct {
	pipeline  pipeline.Config
	quality   quality.Config
	conflicts conflicts.Config
}

func defaultConfig() *config {
	return &config{
		pipeline: pipeline.Config{RawDir: "data/raw"},
	}
}

// Option is a function that configures a Lifetable instance.
type Option func(*config) error

// WithRawDir configures the directory holding the fetched source files.
func WithRawDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("raw-dir", dir, "must not be empty")
		}
		c.pipeline.RawDir = dir
		return nil
	}
}

// WithSourceFile overrides the file name for one source, relative to the raw
// directory unless absolute.
func WithSourceFile(id sources.ID, path string) Option {
	return func(c *config) error {
		if c.pipeline.Files == nil {
			c.pipeline.Files = make(map[sources.ID]string)
		}
		c.pipeline.Files[id] = path
		return nil
	}
}

// WithCorrections points the normalizer at an external name-correction
// artifact instead of the embedded default table.
func WithCorrections(path string) Option {
	return func(c *config) error {
		c.pipeline.CorrectionsPath = path
		return nil
	}
}

// WithOverrides sets the code-keyed display-name override table.
func WithOverrides(overrides map[string]string) Option {
	return func(c *config) error {
		c.pipeline.Overrides = overrides
		return nil
	}
}

// WithOverridesFile loads the display-name override table from a YAML
// artifact.
func WithOverridesFile(path string) Option {
	return func(c *config) error {
		overrides, err := merge.LoadOverrides(path)
		if err != nil {
			return err
		}
		c.pipeline.Overrides = overrides
		return nil
	}
}

// WithParallel configures whether the independent source cleaners run
// concurrently.
func WithParallel(enabled bool) Option {
	return func(c *config) error {
		c.pipeline.Parallel = enabled
		return nil
	}
}

// WithCleanConfig sets the shared cleaning parameters (year window,
// aggregate prefix).
func WithCleanConfig(clean sources.Config) Option {
	return func(c *config) error {
		c.pipeline.Clean = clean
		return nil
	}
}

// WithQualityConfig sets the quality engine's thresholds; zero-valued fields
// keep the standard ones.
func WithQualityConfig(cfg quality.Config) Option {
	return func(c *config) error {
		c.quality = cfg
		return nil
	}
}

// WithConflictTolerance sets the divergence tolerance in years; zero keeps
// the standard tolerance.
func WithConflictTolerance(tolerance float64) Option {
	return func(c *config) error {
		if tolerance < 0 {
			return errors.NewValidationError("tolerance", tolerance, "must not be negative")
		}
		c.conflicts.Tolerance = tolerance
		return nil
	}
}
