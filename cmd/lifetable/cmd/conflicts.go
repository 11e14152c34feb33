package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/lifetable"
	"github.com/agentstation/lifetable/internal/cmd/output"
)

// conflictsCmd runs the methodology-aware divergence engine.
var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "Measure methodology-aware divergence between sources",
	Long: `Conflicts computes, for every merged row with at least two directly
comparable total life-expectancy values, the max−min spread across the
present sources, and flags rows whose spread exceeds the tolerance.`,
	RunE: runConflicts,
}

func init() {
	conflictsCmd.Flags().Float64("tolerance", 0, "divergence tolerance in years (default 2.5)")
	if err := viper.BindPFlag("tolerance", conflictsCmd.Flags().Lookup("tolerance")); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(conflictsCmd)
}

func runConflicts(cmd *cobra.Command, args []string) error {
	opts := append(options(), lifetable.WithConflictTolerance(viper.GetFloat64("tolerance")))
	lt, err := lifetable.New(opts...)
	if err != nil {
		return err
	}

	_, results, err := lt.Conflicts(cmd.Context())
	if err != nil {
		return err
	}
	return output.ConflictResults(cmd.OutOrStdout(), results)
}
