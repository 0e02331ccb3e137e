package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchlens/pitchlens/internal/model"
)

// Summarizer generates the optional narrative summary of a report.
// It runs after every figure is final and never changes any of them.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer for the configured provider. A
// blank provider yields a disabled summarizer, not an error.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the configured provider's name, or ""
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary produces the narrative summary. Failures degrade to
// warnings; a broken LLM never fails an analysis run.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if s.provider == nil {
		return nil, nil
	}

	if !s.provider.IsAvailable(ctx) {
		return &model.LLMSummary{
			Enabled:       false,
			Provider:      s.provider.Name(),
			StrictNumbers: s.config.StrictNumbers,
			Warnings:      []string{fmt.Sprintf("Provider %s is not available", s.provider.Name())},
		}, nil
	}

	req := SummarizeRequest{
		Report:         report,
		AllowedNumbers: AllowedNumbers(report),
		Model:          s.config.Model,
		MaxTokens:      s.config.MaxTokens,
	}

	resp, err := s.provider.Summarize(ctx, req)
	if err != nil {
		return &model.LLMSummary{
			Enabled:       true,
			Provider:      s.provider.Name(),
			Model:         s.config.Model,
			StrictNumbers: s.config.StrictNumbers,
			Warnings:      []string{fmt.Sprintf("Summary generation failed: %v", err)},
		}, nil
	}

	return &model.LLMSummary{
		Enabled:       true,
		Provider:      s.provider.Name(),
		Model:         resp.Model,
		StrictNumbers: s.config.StrictNumbers,
		SummaryMD:     resp.Summary,
		Warnings: []string{
			fmt.Sprintf("Tokens used: %d", resp.TokensUsed),
			fmt.Sprintf("Verified %d figure citations", len(resp.CitedNumbers)),
		},
	}, nil
}

// RenderSeparateMarkdown renders the LLM summary as a standalone
// Markdown document, clearly marked as generated content
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	if summary == nil || !summary.Enabled {
		return ""
	}

	var b strings.Builder
	b.WriteString("# LLM Summary\n\n")
	b.WriteString("> **GENERATED CONTENT**: This narrative was produced by an LLM. ")
	b.WriteString("Every figure in the report was determined independently of it.\n\n")
	fmt.Fprintf(&b, "- **Provider**: %s\n", summary.Provider)
	fmt.Fprintf(&b, "- **Model**: %s\n", summary.Model)
	fmt.Fprintf(&b, "- **Strict Numbers Mode**: %t\n\n", summary.StrictNumbers)

	if summary.SummaryMD == "" {
		b.WriteString("No summary generated.\n")
	} else {
		b.WriteString(summary.SummaryMD)
		b.WriteString("\n")
	}

	if len(summary.Warnings) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, w := range summary.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}
