// Package config loads tool configuration from YAML with environment
// overrides layered on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all clarifycoder configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// LLM configuration, used by every llm-backed strategy
	LLM LLMConfig `yaml:"llm"`

	// Per-stage strategy selection
	Strategies StrategiesConfig `yaml:"strategies"`

	// Evaluation sandbox settings
	Sandbox SandboxConfig `yaml:"sandbox"`

	// Record persistence
	Records RecordsConfig `yaml:"records"`

	// Batch driver defaults
	Batch BatchConfig `yaml:"batch"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the completion service client.
type LLMConfig struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// StrategiesConfig selects rule-based or llm strategies per stage.
type StrategiesConfig struct {
	Clarifier string `yaml:"clarifier"` // rules, llm
	Answerer  string `yaml:"answerer"`  // human, auto
	Generator string `yaml:"generator"` // template, llm
	Critic    string `yaml:"critic"`    // sandbox, llm
	Repairer  string `yaml:"repairer"`  // rules, llm
}

// SandboxConfig bounds generated-code execution.
type SandboxConfig struct {
	InvokeTimeout string `yaml:"invoke_timeout"`
}

// RecordsConfig configures stage record and history persistence.
type RecordsConfig struct {
	Dir         string `yaml:"dir"`
	HistoryPath string `yaml:"history_path"`
}

// BatchConfig holds the batch driver defaults.
type BatchConfig struct {
	Count      int    `yaml:"count"` // <= 0 draws a seeded random size
	Seed       int64  `yaml:"seed"`
	Workers    int    `yaml:"workers"`
	CorpusPath string `yaml:"corpus_path"` // empty uses the embedded corpus
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "clarifycoder",
		Version: "1.0.0",

		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.5-flash",
			BaseURL:  "https://generativelanguage.googleapis.com/v1beta",
			Timeout:  "120s",
		},

		Strategies: StrategiesConfig{
			Clarifier: "rules",
			Answerer:  "auto",
			Generator: "template",
			Critic:    "sandbox",
			Repairer:  "rules",
		},

		Sandbox: SandboxConfig{
			InvokeTimeout: "5s",
		},

		Records: RecordsConfig{
			Dir:         "data/records",
			HistoryPath: "data/clarifycoder.db",
		},

		Batch: BatchConfig{
			Count:   0,
			Seed:    42,
			Workers: 1,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from a YAML file, falling back to defaults when
// the file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = "gemini"
	}
	if dir := os.Getenv("CLARIFYCODER_RECORDS"); dir != "" {
		c.Records.Dir = dir
	}
	if path := os.Getenv("CLARIFYCODER_DB"); path != "" {
		c.Records.HistoryPath = path
	}
}

// GetLLMTimeout returns the completion service timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 120 * time.Second
	}
	return d
}

// GetInvokeTimeout returns the sandbox per-call timeout as a duration.
func (c *Config) GetInvokeTimeout() time.Duration {
	d, err := time.ParseDuration(c.Sandbox.InvokeTimeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	valid := map[string][]string{
		"clarifier": {"rules", "llm"},
		"answerer":  {"human", "auto"},
		"generator": {"template", "llm"},
		"critic":    {"sandbox", "llm"},
		"repairer":  {"rules", "llm"},
	}
	chosen := map[string]string{
		"clarifier": c.Strategies.Clarifier,
		"answerer":  c.Strategies.Answerer,
		"generator": c.Strategies.Generator,
		"critic":    c.Strategies.Critic,
		"repairer":  c.Strategies.Repairer,
	}
	for stage, value := range chosen {
		ok := false
		for _, v := range valid[stage] {
			if value == v {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("invalid %s strategy %q (valid: %v)", stage, value, valid[stage])
		}
	}

	if c.usesLLM() && c.LLM.APIKey == "" {
		return fmt.Errorf("llm strategy selected but no API key configured (set GEMINI_API_KEY)")
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch workers must be >= 0")
	}
	return nil
}

// usesLLM reports whether any stage strictly requires the completion
// service. The auto answerer is excluded: it degrades to the sentinel
// answer when the service is unavailable.
func (c *Config) usesLLM() bool {
	return c.Strategies.Clarifier == "llm" ||
		c.Strategies.Generator == "llm" ||
		c.Strategies.Critic == "llm" ||
		c.Strategies.Repairer == "llm"
}
