package cli

import (
	"github.com/pitchlens/pitchlens/internal/pipeline"
	"github.com/spf13/cobra"
)

// internationalCmd represents the international command
var internationalCmd = &cobra.Command{
	Use:   "international [data-dir]",
	Short: "Analyze international and null-country exposure",
	Long: `International measures exposure outside the domestic reference
country for investors, service providers, limited partners and people.
Records with no country value are counted as international and also
tracked separately, never dropped.

The compliance export (international_entities_compliance.csv) and the
null-country summary are written to the output directory.

Example:
  pitchlens international ./pitchbook_data
  pitchlens international ./pitchbook_data --domestic Germany`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSection(cmd, args, pipeline.Sections{International: true})
	},
}

func init() {
	rootCmd.AddCommand(internationalCmd)
	addDataFlags(internationalCmd)
}
