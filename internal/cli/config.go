package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pitchlens/pitchlens/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage PitchLens configuration",
	Long: `Manage PitchLens configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (PITCHLENS_*)
3. Config file (~/.pitchlens/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if file := viper.ConfigFileUsed(); file != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", file)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		// Effective config: defaults merged with the config file and
		// PITCHLENS_* environment variables
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.LLM.APIKey = "" // never print credentials
		rendered, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("rendering config: %w", err)
		}

		rule := strings.Repeat("═", 59)
		fmt.Println(rule)
		fmt.Println("  Effective Configuration")
		fmt.Println(rule)
		fmt.Println()
		fmt.Println(string(rendered))
		fmt.Println(rule)
		fmt.Println()
		fmt.Println("Configuration hierarchy (highest to lowest priority):")
		fmt.Println("  1. CLI flags")
		fmt.Println("  2. Environment variables (PITCHLENS_*, OPENAI_API_KEY, ANTHROPIC_API_KEY)")
		fmt.Println("  3. Config file (~/.pitchlens/config.yaml)")
		fmt.Println("  4. Built-in defaults")
		fmt.Println()
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.pitchlens/config.yaml with all available options documented.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		path := filepath.Join(home, ".pitchlens", "config.yaml")

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'pitchlens config show' to view it, or delete it first to recreate", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		rendered, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("rendering config: %w", err)
		}

		var b strings.Builder
		b.WriteString("# PitchLens Configuration File\n")
		b.WriteString("#\n")
		b.WriteString("# Configuration hierarchy (highest to lowest priority):\n")
		b.WriteString("#   1. CLI flags\n")
		b.WriteString("#   2. Environment variables (PITCHLENS_*)\n")
		b.WriteString("#   3. This config file\n")
		b.WriteString("#   4. Built-in defaults\n\n")
		b.Write(rendered)
		b.WriteString("\n# API keys belong in environment variables, not in this file:\n")
		b.WriteString("#   export OPENAI_API_KEY=sk-...\n")
		b.WriteString("#   export ANTHROPIC_API_KEY=sk-ant-...\n")
		b.WriteString("#   export OLLAMA_BASE_URL=http://localhost:11434\n")

		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Printf("✓ Created default configuration: %s\n", path)
		fmt.Printf("\nTo view the configuration:\n")
		fmt.Printf("  pitchlens config show\n")
		fmt.Printf("\nTo customize, edit the file with your preferred editor:\n")
		fmt.Printf("  $EDITOR %s\n\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
