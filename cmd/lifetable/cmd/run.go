package cmd

import (
	"github.com/spf13/viper"

	"github.com/agentstation/lifetable"
)

// options assembles the Lifetable options from flags, env, and config file
// via viper.
func options() []lifetable.Option {
	opts := []lifetable.Option{
		lifetable.WithRawDir(viper.GetString("raw-dir")),
		lifetable.WithParallel(viper.GetBool("parallel")),
	}
	if path := viper.GetString("corrections"); path != "" {
		opts = append(opts, lifetable.WithCorrections(path))
	}
	if path := viper.GetString("overrides"); path != "" {
		opts = append(opts, lifetable.WithOverridesFile(path))
	}
	return opts
}
