package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/lifetable"
	"github.com/agentstation/lifetable/internal/cmd/output"
	"github.com/agentstation/lifetable/pkg/logging"
)

// transformCmd runs the full normalization → resolution → merge pipeline and
// persists the master dataset.
var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Clean and merge every source into the master dataset",
	Long: `Transform builds the canonical name → code mapping from the reference
source, cleans every source against it, performs the full outer join on
(code, year), and writes the sorted master dataset as CSV.`,
	RunE: runTransform,
}

func init() {
	transformCmd.Flags().StringP("out", "o", "data/processed/master_life_expectancy.csv", "output path for the master dataset")
	if err := viper.BindPFlag("out", transformCmd.Flags().Lookup("out")); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(transformCmd)
}

func runTransform(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	lt, err := lifetable.New(options()...)
	if err != nil {
		return err
	}

	result, err := lt.Transform(ctx)
	if err != nil {
		return err
	}

	if err := output.RunSummary(cmd.OutOrStdout(), result); err != nil {
		return err
	}

	out := viper.GetString("out")
	if err := result.Dataset.SaveCSV(out); err != nil {
		return err
	}
	log.Info().Str("path", out).Int("rows", result.Dataset.Len()).Msg("Saved master dataset")
	return nil
}
