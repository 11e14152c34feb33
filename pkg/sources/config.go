package sources

import "github.com/agentstation/lifetable/pkg/constants"

// Config carries the cleaning parameters shared by every source.
type Config struct {
	// YearMin and YearMax bound the admitted observation years.
	YearMin int
	YearMax int

	// AggregatePrefix marks synthetic region/world codes in the reference
	// source.
	AggregatePrefix string
}

// DefaultConfig returns the standard cleaning parameters.
func DefaultConfig() Config {
	return Config{
		YearMin:         constants.YearMin,
		YearMax:         constants.YearMax,
		AggregatePrefix: constants.AggregateCodePrefix,
	}
}

// WithDefaults fills zero values from DefaultConfig, so a partially
// populated Config behaves sensibly.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.YearMin == 0 {
		c.YearMin = def.YearMin
	}
	if c.YearMax == 0 {
		c.YearMax = def.YearMax
	}
	if c.AggregatePrefix == "" {
		c.AggregatePrefix = def.AggregatePrefix
	}
	return c
}
