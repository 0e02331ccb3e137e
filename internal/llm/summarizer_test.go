package llm

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pitchlens/pitchlens/internal/model"
)

// mockProvider lets summarizer tests control availability and output
// without a live endpoint.
type mockProvider struct {
	name      string
	available bool
	resp      *SummarizeResponse
	err       error
	lastReq   SummarizeRequest
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) IsAvailable(_ context.Context) bool { return m.available }

func (m *mockProvider) Summarize(_ context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	m.lastReq = req
	return m.resp, m.err
}

func testReport() model.Report {
	return model.Report{
		DataDir: "/data/pitchbook",
		Load: model.LoadReport{
			Loaded: []model.TableLoad{
				{Name: "Company", File: "Company.csv", Rows: 120, Columns: 30},
				{Name: "Investor", File: "Investor.csv", Rows: 45, Columns: 25},
			},
			TotalRows: 165,
		},
		Network: &model.NetworkReport{
			UniqueCompanies: 120,
			UniqueInvestors: 45,
			Relationships:   310,
			Density:         0.0574,
		},
	}
}

func TestNewSummarizer_Disabled(t *testing.T) {
	s, err := NewSummarizer(Config{Provider: ""})
	if err != nil {
		t.Fatalf("NewSummarizer failed: %v", err)
	}
	if s.IsEnabled() {
		t.Error("Expected disabled summarizer for blank provider")
	}
	if s.ProviderName() != "" {
		t.Errorf("Expected empty provider name, got %q", s.ProviderName())
	}

	summary, err := s.GenerateSummary(context.Background(), testReport())
	if err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}
	if summary != nil {
		t.Errorf("Expected nil summary when disabled, got %+v", summary)
	}
}

func TestNewSummarizer_UnknownProvider(t *testing.T) {
	_, err := NewSummarizer(Config{Provider: "oracle"})
	if err == nil {
		t.Fatal("Expected error for unknown provider, got nil")
	}
}

func TestGenerateSummary_ProviderUnavailable(t *testing.T) {
	s := &Summarizer{
		provider: &mockProvider{name: "mock", available: false},
		config:   Config{StrictNumbers: true},
	}

	summary, err := s.GenerateSummary(context.Background(), testReport())
	if err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}
	if summary == nil {
		t.Fatal("Expected a summary record, got nil")
	}
	if summary.Enabled {
		t.Error("Expected Enabled=false when provider is unavailable")
	}
	if len(summary.Warnings) != 1 || !strings.Contains(summary.Warnings[0], "not available") {
		t.Errorf("Expected availability warning, got %v", summary.Warnings)
	}
}

func TestGenerateSummary_ProviderError(t *testing.T) {
	s := &Summarizer{
		provider: &mockProvider{
			name:      "mock",
			available: true,
			err:       fmt.Errorf("FIGURE LEAK: response used a number not present in the report: 999"),
		},
		config: Config{StrictNumbers: true},
	}

	summary, err := s.GenerateSummary(context.Background(), testReport())
	if err != nil {
		t.Fatalf("GenerateSummary should degrade to a warning, got error: %v", err)
	}
	if summary == nil || !summary.Enabled {
		t.Fatal("Expected an enabled summary record carrying the warning")
	}
	if summary.SummaryMD != "" {
		t.Errorf("Expected no summary text on provider error, got %q", summary.SummaryMD)
	}
	if len(summary.Warnings) != 1 || !strings.Contains(summary.Warnings[0], "Summary generation failed") {
		t.Errorf("Expected failure warning, got %v", summary.Warnings)
	}
	if !strings.Contains(summary.Warnings[0], "FIGURE LEAK") {
		t.Errorf("Expected the provider error inside the warning, got %v", summary.Warnings)
	}
}

func TestGenerateSummary_Success(t *testing.T) {
	mock := &mockProvider{
		name:      "mock",
		available: true,
		resp: &SummarizeResponse{
			Summary:      "The dataset covers 120 companies backed by 45 investors.",
			CitedNumbers: []string{"120", "45"},
			Model:        "mock-model",
			TokensUsed:   87,
		},
	}
	s := &Summarizer{provider: mock, config: Config{Model: "mock-model", StrictNumbers: true}}

	report := testReport()
	summary, err := s.GenerateSummary(context.Background(), report)
	if err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}
	if summary == nil || !summary.Enabled {
		t.Fatal("Expected an enabled summary")
	}
	if summary.Provider != "mock" || summary.Model != "mock-model" {
		t.Errorf("Unexpected provenance: provider=%q model=%q", summary.Provider, summary.Model)
	}
	if !summary.StrictNumbers {
		t.Error("Expected StrictNumbers to carry through")
	}
	if summary.SummaryMD != mock.resp.Summary {
		t.Errorf("Unexpected summary text: %q", summary.SummaryMD)
	}
	if len(summary.Warnings) != 2 ||
		!strings.Contains(summary.Warnings[0], "Tokens used: 87") ||
		!strings.Contains(summary.Warnings[1], "Verified 2 figure citations") {
		t.Errorf("Unexpected warnings: %v", summary.Warnings)
	}

	// The request must carry the allowlist so providers can verify.
	if len(mock.lastReq.AllowedNumbers) == 0 {
		t.Error("Expected AllowedNumbers to be populated in the request")
	}
	if !containsStr(mock.lastReq.AllowedNumbers, "310") {
		t.Errorf("Expected relationship count in allowlist, got %v", mock.lastReq.AllowedNumbers)
	}
}

func TestRenderSeparateMarkdown(t *testing.T) {
	if got := RenderSeparateMarkdown(nil); got != "" {
		t.Errorf("Expected empty render for nil summary, got %q", got)
	}
	if got := RenderSeparateMarkdown(&model.LLMSummary{Enabled: false}); got != "" {
		t.Errorf("Expected empty render for disabled summary, got %q", got)
	}

	md := RenderSeparateMarkdown(&model.LLMSummary{
		Enabled:       true,
		Provider:      "mock",
		Model:         "mock-model",
		StrictNumbers: true,
		SummaryMD:     "A short narrative.",
		Warnings:      []string{"Tokens used: 87"},
	})
	for _, want := range []string{
		"# LLM Summary",
		"GENERATED CONTENT",
		"**Provider**: mock",
		"**Strict Numbers Mode**: true",
		"A short narrative.",
		"## Notes",
		"Tokens used: 87",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Rendered markdown missing %q:\n%s", want, md)
		}
	}
}

func TestRenderSeparateMarkdown_EmptySummary(t *testing.T) {
	md := RenderSeparateMarkdown(&model.LLMSummary{Enabled: true, Provider: "mock"})
	if !strings.Contains(md, "No summary generated.") {
		t.Errorf("Expected placeholder for empty summary text:\n%s", md)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(testReport())

	for _, want := range []string{
		"CRITICAL RULES",
		"/data/pitchbook",
		"Files loaded: 2 (165 rows total)",
		"Companies: 120, investors: 45, relationships: 310",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestAllowedNumbers(t *testing.T) {
	allowed := AllowedNumbers(testReport())

	for _, want := range []string{"165", "120", "45", "310", "30", "25"} {
		if !containsStr(allowed, want) {
			t.Errorf("Expected %s in allowlist, got %v", want, allowed)
		}
	}

	// 120 appears as both a table row count and the unique-company count.
	count := 0
	for _, n := range allowed {
		if n == "120" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected deduplicated allowlist, %q appeared %d times", "120", count)
	}
}

func TestExtractNumbers(t *testing.T) {
	got := extractNumbers("There are 120 companies and 45 investors; 120 again, plus 7 deals.")
	want := []string{"120", "45"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
		}
	}
}

func TestVerifyNumbers(t *testing.T) {
	allowed := []string{"120", "45", "310"}

	if err := verifyNumbers([]string{"120", "45"}, allowed); err != nil {
		t.Errorf("Expected allowlisted figures to pass, got %v", err)
	}

	err := verifyNumbers([]string{"120", "999"}, allowed)
	if err == nil {
		t.Fatal("Expected error for figure outside the allowlist")
	}
	if !strings.Contains(err.Error(), "FIGURE LEAK") || !strings.Contains(err.Error(), "999") {
		t.Errorf("Unexpected error text: %v", err)
	}

	// Years read naturally in prose and are exempt.
	if err := verifyNumbers([]string{"2024"}, allowed); err != nil {
		t.Errorf("Expected year to be exempt, got %v", err)
	}
}

func TestLooksLikeYear(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"1998", true},
		{"2100", true},
		{"1899", false},
		{"310", false},
		{"12345", false},
	}
	for _, tc := range cases {
		if got := looksLikeYear(tc.in); got != tc.want {
			t.Errorf("looksLikeYear(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
