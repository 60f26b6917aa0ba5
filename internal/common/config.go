package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Logging  LoggingConfig  `toml:"logging"`
	Storage  StorageConfig  `toml:"storage"`
	Crawler  CrawlerConfig  `toml:"crawler"`
	Search   SearchConfig   `toml:"search"`
	LLM      LLMConfig      `toml:"llm"`
	Research ResearchConfig `toml:"research"`
	Chat     ChatConfig     `toml:"chat"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`         // Delete database on startup for clean test runs
}

// CrawlerConfig controls HTTP fetching and JavaScript rendering behavior
type CrawlerConfig struct {
	UserAgent          string        `toml:"user_agent"`
	RequestTimeout     time.Duration `toml:"request_timeout"`      // Per-fetch HTTP timeout
	RequestDelay       time.Duration `toml:"request_delay"`        // Minimum delay between outbound fetches
	EnableJavaScript   bool          `toml:"enable_javascript"`    // Enable chromedp render fallback
	JavaScriptWaitTime time.Duration `toml:"javascript_wait_time"` // Time to wait for JavaScript to render
	MaxBrowsers        int           `toml:"max_browsers"`         // chromedp pool size
}

// SearchConfig controls web search behavior
type SearchConfig struct {
	Provider       string `toml:"provider"`         // "duckduckgo" (default)
	ResultsPerPage int    `toml:"results_per_page"` // Results requested per query
}

// LLMConfig controls the language model provider
type LLMConfig struct {
	Mode        string  `toml:"mode" validate:"required,oneof=gemini claude"` // "gemini" or "claude"
	APIKey      string  `toml:"api_key"`                                      // Provider API key (env override: SCRUTOR_LLM_API_KEY)
	ModelName   string  `toml:"model_name"`
	Temperature float32 `toml:"temperature"` // Zero for reproducible analysis tone
	MaxTokens   int     `toml:"max_tokens"`
	Timeout     string  `toml:"timeout"` // e.g. "120s"
}

// ResearchConfig controls the research pipeline
type ResearchConfig struct {
	MaxAgeDays       int `toml:"max_age_days"`       // Freshness threshold for cached results (default 7)
	ResultsPerQuery  int `toml:"results_per_query"`  // Search results kept per generated query
	MinContentLength int `toml:"min_content_length"` // Minimum extracted characters to keep a source
}

// ChatConfig controls the Q&A layer
type ChatConfig struct {
	TempChatTTL     time.Duration `toml:"temp_chat_ttl"`    // Lifetime of anonymous chats
	CleanupSchedule string        `toml:"cleanup_schedule"` // Cron schedule for purging old chats
}

// DefaultConfig returns the baseline configuration before file/env overrides
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{Path: "./data/scrutor"},
		},
		Crawler: CrawlerConfig{
			UserAgent:          "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			RequestTimeout:     10 * time.Second,
			RequestDelay:       time.Second,
			EnableJavaScript:   true,
			JavaScriptWaitTime: 2 * time.Second,
			MaxBrowsers:        1,
		},
		Search: SearchConfig{
			Provider:       "duckduckgo",
			ResultsPerPage: 2,
		},
		LLM: LLMConfig{
			Mode:        "gemini",
			ModelName:   "",
			Temperature: 0,
			MaxTokens:   8192,
			Timeout:     "120s",
		},
		Research: ResearchConfig{
			MaxAgeDays:       7,
			ResultsPerQuery:  2,
			MinContentLength: 500,
		},
		Chat: ChatConfig{
			TempChatTTL:     24 * time.Hour,
			CleanupSchedule: "0 * * * *",
		},
	}
}

// LoadConfig loads configuration from an optional TOML file, then applies
// environment overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies SCRUTOR_* environment variables over file values
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("SCRUTOR_LLM_API_KEY"); v != "" {
		config.LLM.APIKey = v
	}
	if v := os.Getenv("SCRUTOR_LLM_MODE"); v != "" {
		config.LLM.Mode = v
	}
	if v := os.Getenv("SCRUTOR_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("SCRUTOR_BADGER_PATH"); v != "" {
		config.Storage.Badger.Path = v
	}
	if v := os.Getenv("SCRUTOR_MAX_AGE_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			config.Research.MaxAgeDays = days
		}
	}
}

// validateConfig validates configuration using struct tags plus range checks
// that tags cannot express.
func validateConfig(config *Config) error {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if config.Research.MaxAgeDays <= 0 {
		return fmt.Errorf("research.max_age_days must be greater than 0, got %d", config.Research.MaxAgeDays)
	}
	if config.Research.ResultsPerQuery <= 0 {
		return fmt.Errorf("research.results_per_query must be greater than 0, got %d", config.Research.ResultsPerQuery)
	}
	if config.Crawler.RequestTimeout <= 0 {
		return fmt.Errorf("crawler.request_timeout must be greater than 0")
	}
	if _, err := time.ParseDuration(config.LLM.Timeout); err != nil {
		return fmt.Errorf("invalid llm.timeout duration '%s': %w", config.LLM.Timeout, err)
	}

	return nil
}
