package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pitchlens/pitchlens/internal/model"
	"github.com/pitchlens/pitchlens/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outDir       string
	timeout      time.Duration
	maxFileBytes int64
	loadWorkers  int
	topN         int
	chartTopN    int
	domestic     string
	noCache      bool
	noFooter     bool
	withXLSX     bool
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [data-dir]",
	Short: "Run the full analysis and write the export bundle",
	Long: `Analyze runs every analysis over a PitchBook CSV directory:
- Dataset overview and descriptive statistics
- Investment network structure
- International and null-country exposure
- People, positions and board seats
- Second-level relationship traversal
- Per-company summary table

The results are written to the output directory as CSV tables, PNG
charts, report.json and report.md. Without a data-dir argument the
configured data directory is used.

Example:
  pitchlens analyze ./pitchbook_data
  pitchlens analyze ./pitchbook_data --out ./analysis_output --xlsx
  pitchlens analyze ./pitchbook_data --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	addDataFlags(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&withXLSX, "xlsx", false, "also write summary.xlsx")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// addDataFlags registers the flags every analysis command shares
func addDataFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "overall run timeout")
	cmd.Flags().Int64Var(&maxFileBytes, "max-file-bytes", 50*1024*1024, "skip CSV files larger than this")
	cmd.Flags().IntVar(&loadWorkers, "workers", 4, "number of files parsed in parallel")
	cmd.Flags().IntVar(&topN, "top-n", 10, "size of top-N rankings")
	cmd.Flags().IntVar(&chartTopN, "chart-top-n", 20, "number of bars on ranking charts")
	cmd.Flags().StringVar(&domestic, "domestic", "United States", "reference country; everything else counts as international")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parsed-table cache")
	cmd.Flags().StringVar(&outDir, "out", "analysis_output", "output directory")
}

// loadConfig resolves the configuration from the built-in defaults, the
// config file and PITCHLENS_* environment variables, in that order of
// increasing priority.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	decodeYAMLTags := func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" }
	if err := viper.Unmarshal(cfg, decodeYAMLTags); err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

// buildConfig resolves the configuration and applies the command's
// flags on top. Flags win over environment variables, which win over
// the config file; the data-dir argument, when given, overrides the
// configured data directory.
func buildConfig(cmd *cobra.Command, args []string) (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Data.Dir = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("max-file-bytes") {
		cfg.Data.MaxFileBytes = maxFileBytes
	}
	if flags.Changed("domestic") {
		cfg.Analysis.DomesticCountry = domestic
	}
	if flags.Changed("top-n") {
		cfg.Analysis.TopN = topN
	}
	if flags.Changed("chart-top-n") {
		cfg.Analysis.ChartTopN = chartTopN
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("workers") {
		cfg.Concurrency.LoadWorkers = loadWorkers
	}
	if flags.Changed("out") {
		cfg.Output.Dir = outDir
	}
	if flags.Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}
	if flags.Changed("xlsx") {
		cfg.Output.XLSX = withXLSX
	}
	if verbose {
		cfg.Output.Verbose = true
	}

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		cfg.LLM.StrictNumbers = true // Always enforce
	}

	// API keys come from the environment, never from the config file
	if cfg.LLM.Provider != "" && cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", cfg.Data.Dir)
		fmt.Fprintf(os.Stderr, "Output: %s\n", cfg.Output.Dir)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	run, err := p.Run(ctx, pipeline.AllSections())
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	report := run.Report
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded %d tables (%d rows)\n", len(report.Load.Loaded), report.Load.TotalRows)
		if report.Network != nil {
			fmt.Fprintf(os.Stderr, "✓ Network: %d companies, %d investors, %d relationships\n",
				report.Network.UniqueCompanies, report.Network.UniqueInvestors, report.Network.Relationships)
		}
		fmt.Fprintf(os.Stderr, "✓ Summary rows: %d\n", len(report.Summary))
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.Export(run); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("✓ Analysis written to %s\n", p.OutputDir())
	return nil
}

// runSection runs a partial analysis, writes the section's exports and
// prints the report to stdout
func runSection(cmd *cobra.Command, args []string, sections pipeline.Sections) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	p := pipeline.NewPipeline(cfg)
	run, err := p.Run(ctx, sections)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := p.Export(run); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Print(p.RenderMarkdown(run.Report))
	return nil
}
