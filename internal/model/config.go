package model

import "time"

// Config holds the complete pitchlens configuration
type Config struct {
	Data        DataConfig        `yaml:"data"`
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
	LLM         LLMConfig         `yaml:"llm"`
}

// DataConfig controls where source CSV files come from
type DataConfig struct {
	Dir          string `yaml:"dir"`            // Directory containing the dataset CSV files
	MaxFileBytes int64  `yaml:"max_file_bytes"` // Files larger than this are skipped during load
}

// AnalysisConfig controls how aggregates are computed
type AnalysisConfig struct {
	DomesticCountry string `yaml:"domestic_country"` // Reference country; everything else is "international"
	TopN            int    `yaml:"top_n"`            // Size of top-N rankings
	ChartTopN       int    `yaml:"chart_top_n"`      // Number of bars on ranking charts

	// Entity types treated as international when no country field is
	// available for the record (matches the source reports)
	InternationalEntityTypes []string `yaml:"international_entity_types"`
}

// CacheConfig controls the parsed-table cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`        // Disk cache directory
	MemoryTTL time.Duration `yaml:"memory_ttl"` // TTL for in-memory entries
	DiskTTL   time.Duration `yaml:"disk_ttl"`   // TTL for on-disk snapshots
}

// ConcurrencyConfig controls parallelism during the load phase
type ConcurrencyConfig struct {
	LoadWorkers int `yaml:"load_workers"` // Number of files parsed in parallel
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Dir           string `yaml:"dir"`            // Output directory for exports
	Verbose       bool   `yaml:"verbose"`        // Verbose progress to stderr
	IncludeFooter bool   `yaml:"include_footer"` // Footer in Markdown reports
	XLSX          bool   `yaml:"xlsx"`           // Also write summary.xlsx
}

// LLMConfig holds optional LLM summary configuration
type LLMConfig struct {
	Provider      string `yaml:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model         string `yaml:"model"`
	APIKey        string `yaml:"api_key,omitempty"`
	BaseURL       string `yaml:"base_url,omitempty"`
	Timeout       int    `yaml:"timeout"` // seconds
	MaxTokens     int    `yaml:"max_tokens"`
	StrictNumbers bool   `yaml:"strict_numbers"` // Restrict the summary to figures present in the report
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:          "pitchbook_data",
			MaxFileBytes: 50 * 1024 * 1024,
		},
		Analysis: AnalysisConfig{
			DomesticCountry: "United States",
			TopN:            10,
			ChartTopN:       20,
			InternationalEntityTypes: []string{
				"University (Non-Endowment)",
				"Venture Capital",
				"Foundation",
			},
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".pitchlens-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			LoadWorkers: 4,
		},
		Output: OutputConfig{
			Dir:           "analysis_output",
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Provider:      "", // Disabled by default
			Timeout:       30,
			MaxTokens:     1000,
			StrictNumbers: true,
		},
	}
}
