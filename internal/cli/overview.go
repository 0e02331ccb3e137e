package cli

import (
	"github.com/pitchlens/pitchlens/internal/pipeline"
	"github.com/spf13/cobra"
)

// overviewCmd represents the overview command
var overviewCmd = &cobra.Command{
	Use:   "overview [data-dir]",
	Short: "Print descriptive statistics for the dataset",
	Long: `Overview loads the dataset and prints descriptive statistics:
per-table row counts, investor and company rankings, deal and company
distributions, and name overlaps between tables.

Example:
  pitchlens overview ./pitchbook_data`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSection(cmd, args, pipeline.Sections{Overview: true})
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
	addDataFlags(overviewCmd)
}
