package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/lifetable"
	"github.com/agentstation/lifetable/internal/cmd/output"
)

// qualityCmd runs the pipeline and the five-dimension quality engine over
// its output.
var qualityCmd = &cobra.Command{
	Use:   "quality",
	Short: "Run the five-dimension data-quality report",
	Long: `Quality runs the transform pipeline and evaluates the merged dataset
across completeness, uniqueness, validity, accuracy, and consistency,
finishing with an aggregate scorecard. Findings are reported, never
treated as failures.`,
	RunE: runQuality,
}

func init() {
	rootCmd.AddCommand(qualityCmd)
}

func runQuality(cmd *cobra.Command, args []string) error {
	lt, err := lifetable.New(options()...)
	if err != nil {
		return err
	}

	_, report, err := lt.Quality(cmd.Context())
	if err != nil {
		return err
	}
	return output.QualityReport(cmd.OutOrStdout(), report)
}
