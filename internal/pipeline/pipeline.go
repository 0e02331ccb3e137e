// Package pipeline orchestrates a full analysis run: load the CSV
// tables, compute the requested report sections, optionally generate
// the LLM narrative, and write the export bundle.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pitchlens/pitchlens/internal/dataset"
	"github.com/pitchlens/pitchlens/internal/export"
	"github.com/pitchlens/pitchlens/internal/llm"
	"github.com/pitchlens/pitchlens/internal/model"
	"github.com/pitchlens/pitchlens/internal/stats"
)

// Sections selects which analyses a run computes
type Sections struct {
	Overview      bool
	Network       bool
	International bool
	Positions     bool
	SecondLevel   bool
	Summary       bool
}

// AllSections selects every analysis
func AllSections() Sections {
	return Sections{
		Overview:      true,
		Network:       true,
		International: true,
		Positions:     true,
		SecondLevel:   true,
		Summary:       true,
	}
}

// Pipeline wires the loader, the analyzer, the exporter and the
// optional LLM summarizer together
type Pipeline struct {
	loader     *dataset.Loader
	analyzer   *stats.Analyzer
	exporter   *export.Exporter
	summarizer *llm.Summarizer // nil if disabled
	config     *model.Config
}

// NewPipeline creates a pipeline from the configuration. A broken LLM
// configuration degrades to a warning, never a failed run.
func NewPipeline(cfg *model.Config) *Pipeline {
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "⚠ Failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		loader:     dataset.NewLoader(cfg),
		analyzer:   stats.NewAnalyzer(cfg),
		exporter:   export.NewExporter(cfg),
		summarizer: summarizer,
		config:     cfg,
	}
}

// RunResult pairs the report with the loaded tables so exports can
// re-emit raw data alongside the aggregates.
type RunResult struct {
	Report *model.Report
	Data   *dataset.Result
}

// Run loads the tables the selected sections need and computes them.
// The LLM narrative, when enabled, is generated after every figure is
// final and never changes any of them.
func (p *Pipeline) Run(ctx context.Context, sections Sections) (*RunResult, error) {
	res, err := p.loader.Load(ctx, filesFor(sections))
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	report := &model.Report{
		DataDir:     p.config.Data.Dir,
		GeneratedAt: time.Now().UTC(),
		Load:        res.Report,
	}

	if sections.Overview {
		report.Overview = p.analyzer.Overview(res)
	}
	if sections.Network {
		report.Network = p.analyzer.Network(res)
	}
	if sections.International {
		report.International = p.analyzer.International(res)
	}
	if sections.Positions {
		report.Positions = p.analyzer.Positions(res)
	}
	if sections.SecondLevel {
		report.SecondLevel = p.analyzer.SecondLevel(res)
	}
	if sections.Summary {
		report.Summary = p.analyzer.Summary(res)
	}

	if p.summarizer != nil && p.summarizer.IsEnabled() {
		llmSummary, err := p.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "⚠ LLM summary generation failed: %v\n", err)
		} else if llmSummary != nil {
			report.LLM = llmSummary
		}
	}

	return &RunResult{Report: report, Data: res}, nil
}

// Export writes the full export bundle, plus the LLM narrative as a
// separate clearly-marked file when one was generated.
func (p *Pipeline) Export(run *RunResult) error {
	if err := p.exporter.WriteAll(run.Report, run.Data); err != nil {
		return fmt.Errorf("write exports: %w", err)
	}

	if l := run.Report.LLM; l != nil && l.Enabled {
		path := filepath.Join(p.exporter.Dir(), "report.llm.md")
		if err := os.WriteFile(path, []byte(llm.RenderSeparateMarkdown(l)), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "⚠ Failed to write LLM summary: %v\n", err)
		} else if p.config.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ wrote report.llm.md\n")
		}
	}

	return nil
}

// ExportCharts writes only the PNG charts
func (p *Pipeline) ExportCharts(run *RunResult) error {
	return p.exporter.WriteCharts(run.Report)
}

// RenderMarkdown renders the report for stdout
func (p *Pipeline) RenderMarkdown(report *model.Report) string {
	return p.exporter.RenderMarkdown(report)
}

// OutputDir returns the export directory
func (p *Pipeline) OutputDir() string {
	return p.exporter.Dir()
}

// filesFor maps the selected sections to the tables they read. A
// single-section run loads only what it needs; anything touching the
// relationship graph loads the full catalog.
func filesFor(s Sections) []string {
	if s.Overview || s.Network || s.Positions || s.SecondLevel {
		return dataset.AllFiles()
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(names []string) {
		for _, n := range names {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	if s.International {
		add(dataset.CountryFiles())
	}
	if s.Summary {
		add(dataset.SummaryFiles())
	}
	if len(out) == 0 {
		return dataset.AllFiles()
	}
	return out
}
