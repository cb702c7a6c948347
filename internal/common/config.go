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
	Environment string         `toml:"environment"` // "development" or "production"
	Taxonomy    TaxonomyConfig `toml:"taxonomy"`
	Logging     LoggingConfig  `toml:"logging"`
	LLM         LLMConfig      `toml:"llm"`
	ZeroShot    ZeroShotConfig `toml:"zeroshot"`
	Scoring     ScoringConfig  `toml:"scoring"`
	Summary     SummaryConfig  `toml:"summary"`
	Storage     StorageConfig  `toml:"storage"`
}

// TaxonomyConfig locates the category taxonomy document
type TaxonomyConfig struct {
	Path string `toml:"path"` // YAML taxonomy file; built-in default used when missing
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	Output []string `toml:"output"` // "stdout", "file"
}

// LLMConfig configures the embedding and chat providers
type LLMConfig struct {
	DefaultProvider string  `toml:"default_provider" validate:"omitempty,oneof=gemini claude"`
	GeminiAPIKey    string  `toml:"gemini_api_key"`
	ClaudeAPIKey    string  `toml:"claude_api_key"`
	ChatModel       string  `toml:"chat_model"`      // e.g. "gemini-2.0-flash" or "claude-sonnet-4-20250514"
	EmbedModel      string  `toml:"embed_model"`     // e.g. "gemini-embedding-001"
	EmbedDimension  int     `toml:"embed_dimension"` // output dimensionality requested from the embed model
	Temperature     float32 `toml:"temperature"`
	MaxOutputTokens int     `toml:"max_output_tokens"`
	Timeout         string  `toml:"timeout"` // per-call timeout, e.g. "30s"
	RequestsPerMin  int     `toml:"requests_per_minute"`
}

// ZeroShotConfig configures the hosted zero-shot classification endpoint.
// An empty token disables the zero-shot path (rule-based fallback is used).
type ZeroShotConfig struct {
	Endpoint string `toml:"endpoint"`
	Token    string `toml:"token"`
	Timeout  string `toml:"timeout"`
}

// ScoringConfig carries the tunable constants of the classification
// pipeline. Defaults reproduce the historical behavior exactly; change them
// only with evaluation data in hand.
type ScoringConfig struct {
	BoostMultiplier    float64 `toml:"boost_multiplier"`     // confidence boost applied to strong similarity scores
	BoostTriggerTop    float64 `toml:"boost_trigger_top"`    // top similarity above this triggers the boost
	BoostTriggerSecond float64 `toml:"boost_trigger_second"` // second similarity above this also triggers the boost
	ConfidenceCap      float64 `toml:"confidence_cap"`       // upper bound on any derived confidence
	ConfidenceFloor    float64 `toml:"confidence_floor"`     // lower bound when any signal matched
	NoMatchConfidence  float64 `toml:"no_match_confidence"`  // confidence when nothing matched at all
	VoteThreshold      float64 `toml:"vote_threshold"`       // minimum accumulated ensemble vote to keep a category
}

// StorageConfig configures the optional embedded store for persisted
// embeddings and categorization results. An empty path disables persistence.
type StorageConfig struct {
	Path           string `toml:"path"`
	ResetOnStartup bool   `toml:"reset_on_startup"`
}

// SummaryConfig bounds the LLM summarization step
type SummaryConfig struct {
	MaxInputChars int `toml:"max_input_chars"` // input truncated before summarization
	FallbackChars int `toml:"fallback_chars"`  // local fallback length when the LLM is unavailable
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Taxonomy:    TaxonomyConfig{Path: "taxonomy.yaml"},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		LLM: LLMConfig{
			DefaultProvider: "gemini",
			ChatModel:       "gemini-2.0-flash",
			EmbedModel:      "gemini-embedding-001",
			EmbedDimension:  1536,
			Temperature:     0.2,
			MaxOutputTokens: 1024,
			Timeout:         "30s",
			RequestsPerMin:  60,
		},
		ZeroShot: ZeroShotConfig{
			Endpoint: "https://api-inference.huggingface.co/models/facebook/bart-large-mnli",
			Timeout:  "30s",
		},
		Scoring: ScoringConfig{
			BoostMultiplier:    1.2,
			BoostTriggerTop:    0.4,
			BoostTriggerSecond: 0.3,
			ConfidenceCap:      0.95,
			ConfidenceFloor:    0.25,
			NoMatchConfidence:  0.15,
			VoteThreshold:      0.1,
		},
		Summary: SummaryConfig{
			MaxInputChars: 6000,
			FallbackChars: 500,
		},
	}
}

// LoadConfig loads configuration in priority order: defaults, then each
// config file in sequence (later files override earlier ones), then
// environment variables.
func LoadConfig(paths ...string) (*Config, error) {
	config := DefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnvOverrides applies ORDINO_* environment variables on top of the
// loaded configuration. API keys are the common case - they normally arrive
// via environment rather than config files.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("ORDINO_LLM_GEMINI_API_KEY"); v != "" {
		config.LLM.GeminiAPIKey = v
	}
	if v := os.Getenv("ORDINO_LLM_CLAUDE_API_KEY"); v != "" {
		config.LLM.ClaudeAPIKey = v
	}
	if v := os.Getenv("ORDINO_LLM_CHAT_MODEL"); v != "" {
		config.LLM.ChatModel = v
	}
	if v := os.Getenv("ORDINO_ZEROSHOT_TOKEN"); v != "" {
		config.ZeroShot.Token = v
	}
	if v := os.Getenv("ORDINO_TAXONOMY_PATH"); v != "" {
		config.Taxonomy.Path = v
	}
	if v := os.Getenv("ORDINO_STORAGE_PATH"); v != "" {
		config.Storage.Path = v
	}
	if v := os.Getenv("ORDINO_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("ORDINO_LLM_EMBED_DIMENSION"); v != "" {
		if dim, err := strconv.Atoi(v); err == nil && dim > 0 {
			config.LLM.EmbedDimension = dim
		}
	}
}

// LLMTimeout parses the configured per-call LLM timeout, defaulting to 30s.
func (c *Config) LLMTimeout() time.Duration {
	return parseDurationOr(c.LLM.Timeout, 30*time.Second)
}

// ZeroShotTimeout parses the configured zero-shot call timeout.
func (c *Config) ZeroShotTimeout() time.Duration {
	return parseDurationOr(c.ZeroShot.Timeout, 30*time.Second)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
