// Package export writes the analysis results to disk: CSV tables, a
// JSON and Markdown report, PNG charts, and an optional XLSX workbook.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pitchlens/pitchlens/internal/dataset"
	"github.com/pitchlens/pitchlens/internal/model"
)

// Exporter writes analysis output under a single directory
type Exporter struct {
	dir           string
	plotsDir      string
	chartTopN     int
	includeFooter bool
	xlsx          bool
	verbose       bool
}

// NewExporter creates an exporter for the configured output directory
func NewExporter(cfg *model.Config) *Exporter {
	return &Exporter{
		dir:           cfg.Output.Dir,
		plotsDir:      filepath.Join(cfg.Output.Dir, "plots"),
		chartTopN:     cfg.Analysis.ChartTopN,
		includeFooter: cfg.Output.IncludeFooter,
		xlsx:          cfg.Output.XLSX,
		verbose:       cfg.Output.Verbose,
	}
}

// Dir returns the output directory
func (e *Exporter) Dir() string {
	return e.dir
}

// WriteAll writes every export for the report. Raw table exports need
// the loaded dataset as well.
func (e *Exporter) WriteAll(report *model.Report, res *dataset.Result) error {
	if err := os.MkdirAll(e.plotsDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := e.writeTables(report, res); err != nil {
		return err
	}
	if err := e.WriteJSON(report); err != nil {
		return err
	}
	if err := e.WriteMarkdown(report); err != nil {
		return err
	}
	if err := e.WriteCharts(report); err != nil {
		return err
	}
	if e.xlsx {
		if err := e.WriteXLSX(report); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) logf(format string, args ...interface{}) {
	if e.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
