package config

import (
	"strconv"
	"strings"
	"time"

	"datasight/internal/errors"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	AI       AIConfig
	Analysis AnalysisConfig
	Server   ServerConfig
	Log      LogConfig
}

// BackendConfig holds the settings of one LLM backend. A backend without an
// API key is not configured.
type BackendConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Enabled reports whether the backend has credentials
func (b BackendConfig) Enabled() bool {
	return strings.TrimSpace(b.APIKey) != ""
}

// AIConfig holds AI/LLM related settings
type AIConfig struct {
	Groq        BackendConfig
	Gemini      BackendConfig
	OpenAI      BackendConfig
	Anthropic   BackendConfig
	MaxTokens   int
	Temperature float64
}

// AnalysisConfig holds orchestrator settings
type AnalysisConfig struct {
	ProviderTimeout        time.Duration
	MaxConcurrentProviders int
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string
	JSON  bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	return LoadWithViper(v)
}

// LoadWithViper reads configuration through a caller-supplied viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	ai, err := loadAIConfig(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AI configuration")
	}

	analysis, err := loadAnalysisConfig(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load analysis configuration")
	}

	config := &Config{
		AI:       *ai,
		Analysis: *analysis,
		Server:   ServerConfig{Port: v.GetString("port")},
		Log: LogConfig{
			Level: v.GetString("log_level"),
			JSON:  v.GetBool("log_json"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// SetDefaults registers every known key with its default
func SetDefaults(v *viper.Viper) {
	v.SetDefault("groq_api_key", "")
	v.SetDefault("groq_model", "llama-3.1-8b-instant")
	v.SetDefault("groq_base_url", "https://api.groq.com/openai/v1")

	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.5-flash-lite")
	v.SetDefault("gemini_base_url", "https://generativelanguage.googleapis.com/v1beta/models")

	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("openai_base_url", "https://api.openai.com/v1")

	v.SetDefault("anthropic_api_key", "")
	v.SetDefault("anthropic_model", "claude-3-5-haiku-latest")
	v.SetDefault("anthropic_base_url", "https://api.anthropic.com/v1")

	v.SetDefault("llm_max_tokens", "1500")
	v.SetDefault("llm_temperature", "0.3")
	v.SetDefault("provider_timeout", "30s")
	v.SetDefault("max_concurrent_providers", "0")

	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "INFO")
	v.SetDefault("log_json", false)
}

func loadAIConfig(v *viper.Viper) (*AIConfig, error) {
	maxTokens, err := strconv.Atoi(v.GetString("llm_max_tokens"))
	if err != nil {
		return nil, errors.ConfigInvalid("LLM_MAX_TOKENS must be an integer")
	}
	temperature, err := strconv.ParseFloat(v.GetString("llm_temperature"), 64)
	if err != nil {
		return nil, errors.ConfigInvalid("LLM_TEMPERATURE must be a number")
	}

	return &AIConfig{
		Groq:        backend(v, "groq"),
		Gemini:      backend(v, "gemini"),
		OpenAI:      backend(v, "openai"),
		Anthropic:   backend(v, "anthropic"),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}, nil
}

func backend(v *viper.Viper, prefix string) BackendConfig {
	return BackendConfig{
		APIKey:  strings.TrimSpace(v.GetString(prefix + "_api_key")),
		Model:   v.GetString(prefix + "_model"),
		BaseURL: v.GetString(prefix + "_base_url"),
	}
}

func loadAnalysisConfig(v *viper.Viper) (*AnalysisConfig, error) {
	timeout, err := time.ParseDuration(v.GetString("provider_timeout"))
	if err != nil {
		return nil, errors.ConfigInvalid("PROVIDER_TIMEOUT must be a duration such as 30s")
	}
	maxConcurrent, err := strconv.Atoi(v.GetString("max_concurrent_providers"))
	if err != nil {
		return nil, errors.ConfigInvalid("MAX_CONCURRENT_PROVIDERS must be an integer")
	}
	return &AnalysisConfig{
		ProviderTimeout:        timeout,
		MaxConcurrentProviders: maxConcurrent,
	}, nil
}

func validateConfig(config *Config) error {
	if config.Analysis.ProviderTimeout <= 0 {
		return errors.ConfigInvalid("provider timeout must be positive")
	}
	if config.Analysis.MaxConcurrentProviders < 0 {
		return errors.ConfigInvalid("max concurrent providers cannot be negative")
	}
	if config.AI.MaxTokens <= 0 {
		return errors.ConfigInvalid("max tokens must be positive")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("port is required")
	}
	return nil
}
