package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http" envPrefix:"HTTP_"`
	Summary SummaryConfig `yaml:"summary" envPrefix:"SUMMARY_"`
	LLM     LLMConfig     `yaml:"llm" envPrefix:"LLM_"`
	Cache   CacheConfig   `yaml:"cache" envPrefix:"CACHE_"`
	History HistoryConfig `yaml:"history" envPrefix:"HISTORY_"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address" env:"ADDRESS"`
	ReadTimeout    time.Duration   `yaml:"readTimeout" env:"READ_TIMEOUT"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout" env:"WRITE_TIMEOUT"`
	MaxBodyBytes   int64           `yaml:"maxBodyBytes" env:"MAX_BODY_BYTES"`
	AllowedOrigins []string        `yaml:"allowedOrigins" env:"ALLOWED_ORIGINS" envSeparator:","`
	RateLimit      RateLimitConfig `yaml:"rateLimit" envPrefix:"RATE_LIMIT_"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled" env:"ENABLED"`
	RequestsPerMinute int  `yaml:"requestsPerMinute" env:"RPM"`
	Burst             int  `yaml:"burst" env:"BURST"`
}

// SummaryConfig defines chunking and generation bounds.
type SummaryConfig struct {
	MaxChunkLength       int           `yaml:"maxChunkLength" env:"MAX_CHUNK_LENGTH"`
	MinLength            int           `yaml:"minLength" env:"MIN_LENGTH"`
	MaxLength            int           `yaml:"maxLength" env:"MAX_LENGTH"`
	RequestTimeout       time.Duration `yaml:"requestTimeout" env:"REQUEST_TIMEOUT"`
	SerializeInvocations bool          `yaml:"serializeInvocations" env:"SERIALIZE_INVOCATIONS"`
	Encoding             string        `yaml:"encoding" env:"ENCODING"`
}

// LLMConfig selects and configures the summarization backend.
type LLMConfig struct {
	Provider       string        `yaml:"provider" env:"PROVIDER"`
	APIKey         string        `yaml:"apiKey" env:"API_KEY"`
	BaseURL        string        `yaml:"baseUrl" env:"BASE_URL"`
	Model          string        `yaml:"model" env:"MODEL"`
	Prompt         string        `yaml:"prompt" env:"PROMPT"`
	MaxConcurrency int           `yaml:"maxConcurrency" env:"MAX_CONCURRENCY"`
	Timeout        time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// CacheConfig controls reuse of chunk summaries.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled" env:"ENABLED"`
	TTL        time.Duration `yaml:"ttl" env:"TTL"`
	MaxEntries int           `yaml:"maxEntries" env:"MAX_ENTRIES"`
	Valkey     ValkeyConfig  `yaml:"valkey" envPrefix:"VALKEY_"`
}

// ValkeyConfig contains connection information for the shared cache.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Addr    string `yaml:"addr" env:"ADDR"`
	Prefix  string `yaml:"prefix" env:"PREFIX"`
}

// HistoryConfig bounds the in-memory result history.
type HistoryConfig struct {
	Capacity int `yaml:"capacity" env:"CAPACITY"`
}

var providers = map[string]bool{
	"lead":      true,
	"openai":    true,
	"anthropic": true,
	"gemini":    true,
	"ollama":    true,
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// applyEnvOverrides only touches fields whose variables are set.
func applyEnvOverrides(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	return nil
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 3 * time.Minute,
			MaxBodyBytes: 8 << 20,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 30,
				Burst:             10,
			},
		},
		Summary: SummaryConfig{
			MaxChunkLength: 1000,
			MinLength:      30,
			MaxLength:      150,
			RequestTimeout: 2 * time.Minute,
			Encoding:       "cl100k_base",
		},
		LLM: LLMConfig{
			Provider:       "lead",
			MaxConcurrency: 4,
			Timeout:        60 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        24 * time.Hour,
			MaxEntries: 1024,
			Valkey: ValkeyConfig{
				Enabled: false,
				Prefix:  "summary",
			},
		},
		History: HistoryConfig{
			Capacity: 50,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return errors.New("http.maxBodyBytes must be positive")
	}
	if c.Summary.MaxChunkLength <= 0 {
		return errors.New("summary.maxChunkLength must be positive")
	}
	if c.Summary.MinLength < 0 {
		return errors.New("summary.minLength cannot be negative")
	}
	if c.Summary.MinLength >= c.Summary.MaxLength {
		return errors.New("summary.minLength must be less than summary.maxLength")
	}
	if c.Summary.RequestTimeout < 0 {
		return errors.New("summary.requestTimeout cannot be negative")
	}
	if !providers[c.LLM.Provider] {
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}
	switch c.LLM.Provider {
	case "openai", "anthropic", "gemini":
		if strings.TrimSpace(c.LLM.APIKey) == "" {
			return fmt.Errorf("llm.apiKey cannot be empty for provider %q", c.LLM.Provider)
		}
	}
	if c.LLM.MaxConcurrency <= 0 {
		return errors.New("llm.maxConcurrency must be positive")
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl cannot be negative")
	}
	if c.Cache.Valkey.Enabled && strings.TrimSpace(c.Cache.Valkey.Addr) == "" {
		return errors.New("cache.valkey.addr cannot be empty when valkey cache is enabled")
	}
	if c.History.Capacity <= 0 {
		return errors.New("history.capacity must be positive")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
