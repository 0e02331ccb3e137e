package cli

import (
	"context"
	"fmt"

	"github.com/pitchlens/pitchlens/internal/pipeline"
	"github.com/spf13/cobra"
)

// chartsCmd represents the charts command
var chartsCmd = &cobra.Command{
	Use:   "charts [data-dir]",
	Short: "Render the PNG charts",
	Long: `Charts renders the PNG bar charts under <out>/plots: investor
and company rankings, financing status, employee and location
distributions, and the per-company international counts. Charts with no
non-zero data are skipped.

Example:
  pitchlens charts ./pitchbook_data --out ./analysis_output`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCharts,
}

func init() {
	rootCmd.AddCommand(chartsCmd)
	addDataFlags(chartsCmd)
}

func runCharts(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Charts draw from the overview rankings, the positions analysis,
	// the international sets and the summary table.
	p := pipeline.NewPipeline(cfg)
	run, err := p.Run(ctx, pipeline.Sections{
		Overview:      true,
		International: true,
		Positions:     true,
		Summary:       true,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := p.ExportCharts(run); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}

	fmt.Printf("✓ Charts written to %s/plots\n", p.OutputDir())
	return nil
}
