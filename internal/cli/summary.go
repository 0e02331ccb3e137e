package cli

import (
	"context"
	"fmt"

	"github.com/pitchlens/pitchlens/internal/pipeline"
	"github.com/spf13/cobra"
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary [data-dir]",
	Short: "Write the per-company summary table",
	Long: `Summary builds the per-company summary table: people, board
seats, affiliations, international counts per relation type, deals and
patents. The table is written to the output directory as
company_summary_table.csv, plus summary.xlsx with --xlsx.

Example:
  pitchlens summary ./pitchbook_data --out ./analysis_output
  pitchlens summary ./pitchbook_data --xlsx`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	addDataFlags(summaryCmd)
	summaryCmd.Flags().BoolVar(&withXLSX, "xlsx", false, "also write summary.xlsx")
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// The summary table needs the international sets for its per-company
	// international counts.
	p := pipeline.NewPipeline(cfg)
	run, err := p.Run(ctx, pipeline.Sections{International: true, Summary: true})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := p.Export(run); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("✓ Summary table for %d companies written to %s\n", len(run.Report.Summary), p.OutputDir())
	return nil
}
