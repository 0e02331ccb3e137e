package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/pitchlens/pitchlens/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a narrative summary of the report with strict
	// numbers mode
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Report is the analysis report to summarize
	Report model.Report

	// AllowedNumbers is the STRICT allowlist of figures the LLM may use.
	// This prevents hallucinated statistics - any other multi-digit
	// figure in the response is rejected.
	AllowedNumbers []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// CitedNumbers are the figures the LLM actually used (for verification)
	CitedNumbers []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// StrictNumbers enforces the figure allowlist (should always be true)
	StrictNumbers bool

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:      "", // Disabled by default
		Model:         "",
		Timeout:       30,
		StrictNumbers: true, // CRITICAL: Always enforce
		MaxTokens:     1000,
	}
}

const systemPrompt = "You are a helpful assistant that summarizes dataset analysis reports using only the figures present in the report."

// BuildPrompt constructs the default prompt for summarization with
// strict numbers mode
func BuildPrompt(report model.Report) string {
	prompt := fmt.Sprintf(`You are summarizing a PitchBook-style dataset analysis report. Every statistic below was computed directly from CSV files - your summary describes the numbers, it never recomputes or invents them.

CRITICAL RULES:
1. You MUST ONLY use figures that appear in the report below.
2. DO NOT infer, extrapolate, or estimate additional statistics.
3. If a section has no data, state that explicitly.
4. Describe what the data shows, not what it might mean for investments.

Report:
- Data directory: %s
- Files loaded: %d (%d rows total)
`, report.DataDir, len(report.Load.Loaded), report.Load.TotalRows)

	if n := report.Network; n != nil {
		prompt += fmt.Sprintf("- Companies: %d, investors: %d, relationships: %d (density %.4f)\n",
			n.UniqueCompanies, n.UniqueInvestors, n.Relationships, n.Density)
	}
	if intl := report.International; intl != nil {
		for _, bucket := range intl.Entities {
			prompt += fmt.Sprintf("- International %ss: %d of %d (%d with no recorded country)\n",
				bucket.EntityType, bucket.International, bucket.Total, bucket.NullCountry)
		}
		prompt += fmt.Sprintf("- International connections to companies: %d\n", intl.Breakdown.Total)
	}
	if sl := report.SecondLevel; sl != nil {
		prompt += fmt.Sprintf("- Second-level: %d intermediaries, %d positions, %d unique people\n",
			sl.Intermediaries.Total, sl.Positions, sl.UniquePeople)
	}
	if p := report.Positions; p != nil {
		prompt += fmt.Sprintf("- People at dataset companies: %d employees, %d board members, %d both\n",
			p.OnlyEmployees, p.UniqueBoardPersons, p.EmployeeBoardMembers)
	}

	prompt += "\nProvide a 4-6 sentence summary of the dataset's composition and its international exposure."
	return prompt
}

// AllowedNumbers collects every figure appearing in the report so a
// response can be checked against them
func AllowedNumbers(report model.Report) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(n int) {
		s := strconv.Itoa(n)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	add(len(report.Load.Loaded))
	add(report.Load.TotalRows)
	if o := report.Overview; o != nil {
		for _, t := range o.Tables {
			add(t.Rows)
			add(t.Columns)
		}
		if o.CompanyInvestor != nil {
			add(o.CompanyInvestor.Total)
			for _, r := range o.CompanyInvestor.TopInvestors {
				add(r.Count)
			}
			for _, r := range o.CompanyInvestor.TopCompanies {
				add(r.Count)
			}
		}
		if o.Deals != nil {
			add(o.Deals.Total)
		}
		if o.Companies != nil {
			add(o.Companies.Total)
		}
		if o.Investors != nil {
			add(o.Investors.Total)
		}
	}
	if n := report.Network; n != nil {
		add(n.UniqueCompanies)
		add(n.UniqueInvestors)
		add(n.Relationships)
	}
	if intl := report.International; intl != nil {
		for _, b := range intl.Entities {
			add(b.Total)
			add(b.International)
			add(b.NullCountry)
			for _, c := range b.Countries {
				add(c.Count)
			}
		}
		add(intl.Breakdown.Investor)
		add(intl.Breakdown.ServiceProvider)
		add(intl.Breakdown.LimitedPartner)
		add(intl.Breakdown.Person)
		add(intl.Breakdown.Total)
	}
	if p := report.Positions; p != nil {
		add(p.TotalPositions)
		add(p.TotalBoardSeats)
		add(p.PositionsAtCompanies)
		add(p.UniquePositionPersons)
		add(p.UniqueBoardPersons)
		add(p.EmployeeBoardMembers)
		add(p.OnlyEmployees)
		add(p.OnlyBoardMembers)
	}
	if sl := report.SecondLevel; sl != nil {
		add(sl.Intermediaries.Investors)
		add(sl.Intermediaries.ServiceProviders)
		add(sl.Intermediaries.LeadPartners)
		add(sl.Intermediaries.Affiliates)
		add(sl.Intermediaries.Total)
		add(sl.Positions)
		add(sl.UniquePeople)
		add(sl.InternationalPositions)
		add(sl.InternationalPeople)
	}
	add(len(report.Summary))
	return out
}

// extractNumbers pulls the multi-digit figures out of text. Years and
// percentages read reasonably, so only bare integer counts of two or
// more digits are checked.
func extractNumbers(text string) []string {
	pattern := regexp.MustCompile(`\b\d{2,}\b`)
	matches := pattern.FindAllString(text, -1)

	seen := make(map[string]bool)
	var unique []string
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			unique = append(unique, m)
		}
	}
	return unique
}

// verifyNumbers rejects a summary citing a figure absent from the
// allowlist
func verifyNumbers(cited, allowed []string) error {
	for _, n := range cited {
		if looksLikeYear(n) {
			continue
		}
		if !containsStr(allowed, n) {
			return fmt.Errorf("FIGURE LEAK: response used a number not present in the report: %s", n)
		}
	}
	return nil
}

func looksLikeYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	y, err := strconv.Atoi(s)
	return err == nil && y >= 1900 && y <= 2100
}

// containsStr checks if a slice contains a string
func containsStr(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
