package cli

import (
	"github.com/pitchlens/pitchlens/internal/pipeline"
	"github.com/spf13/cobra"
)

// networkCmd represents the network command
var networkCmd = &cobra.Command{
	Use:   "network [data-dir]",
	Short: "Analyze the investment network structure",
	Long: `Network analyzes the company-investor graph: unique entity
counts, average relationships per company and per investor, bipartite
density, status and holding breakdowns, and investments by year.

The top-N ranking tables (top_investors.csv, top_companies.csv) are
written to the output directory.

Example:
  pitchlens network ./pitchbook_data`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// The top-N ranking exports come from the company-investor
		// rankings, which the overview section computes.
		return runSection(cmd, args, pipeline.Sections{Network: true, Overview: true})
	},
}

func init() {
	rootCmd.AddCommand(networkCmd)
	addDataFlags(networkCmd)
}
