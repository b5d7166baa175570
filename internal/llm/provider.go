// Package llm provides the optional language-model collaborator for
// jot. The model is never required: every caller must treat a failed,
// slow, or absent model identically to an empty answer and fall back to
// rule-based extraction.
package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Provider is the interface for model completions.
type Provider interface {
	// Complete sends a prompt and returns the response text.
	Complete(ctx context.Context, prompt string, opts CompletionOpts) (string, error)
	// Name returns a human-readable provider name (e.g. "openai/gpt-4o-mini").
	Name() string
}

// CompletionOpts configures a single completion request.
type CompletionOpts struct {
	MaxTokens   int     // Max tokens to generate (0 = provider default)
	Temperature float64 // 0.0-2.0 (0 = deterministic)
	Format      string  // "json" for structured output, empty for plain text
	System      string  // System prompt (optional)
}

// Config holds model provider configuration.
type Config struct {
	Provider    string // "ollama", "openai", "deepseek", "openrouter", "custom"
	Model       string // model name
	Endpoint    string // full chat-completions URL
	APIKey      string
	MaxRetries  int // attempts beyond the first (default: 2)
	TimeoutSecs int // per-request timeout (default: 20)
}

// ParseFlag parses "--llm provider/model" format. Model names may
// themselves contain slashes and colons, e.g.
// "openrouter/google/gemini-2.0-flash-exp:free".
func ParseFlag(flag string) (*Config, error) {
	if flag == "" {
		return nil, fmt.Errorf("empty LLM flag")
	}

	slashIdx := strings.Index(flag, "/")
	if slashIdx == -1 {
		return nil, fmt.Errorf("invalid --llm format: expected 'provider/model', got %q", flag)
	}

	provider := flag[:slashIdx]
	model := flag[slashIdx+1:]
	if provider == "" {
		return nil, fmt.Errorf("empty provider in --llm flag: %q", flag)
	}
	if model == "" {
		return nil, fmt.Errorf("empty model in --llm flag: %q", flag)
	}

	config := &Config{
		Provider:    provider,
		Model:       model,
		MaxRetries:  2,
		TimeoutSecs: 20,
	}

	switch provider {
	case "ollama":
		config.Endpoint = "http://localhost:11434/v1/chat/completions"
		// No API key needed for Ollama
	case "openai":
		config.Endpoint = "https://api.openai.com/v1/chat/completions"
		config.APIKey = os.Getenv("OPENAI_API_KEY")
	case "deepseek":
		config.Endpoint = "https://api.deepseek.com/v1/chat/completions"
		config.APIKey = os.Getenv("DEEPSEEK_API_KEY")
	case "openrouter":
		config.Endpoint = "https://openrouter.ai/api/v1/chat/completions"
		config.APIKey = os.Getenv("OPENROUTER_API_KEY")
	case "custom":
		config.Endpoint = os.Getenv("JOT_LLM_ENDPOINT")
		config.APIKey = os.Getenv("JOT_LLM_API_KEY")
	default:
		return nil, fmt.Errorf("unknown provider %q. Supported: ollama, openai, deepseek, openrouter, custom", provider)
	}

	// Environment overrides apply to every provider.
	if endpoint := os.Getenv("JOT_LLM_ENDPOINT"); endpoint != "" {
		config.Endpoint = endpoint
	}
	if apiKey := os.Getenv("JOT_LLM_API_KEY"); apiKey != "" {
		config.APIKey = apiKey
	}

	return config, nil
}

// Validate checks that the configuration is complete enough to use.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	if c.Provider != "ollama" && c.APIKey == "" {
		return fmt.Errorf("API key is required for provider %q (set via environment variable)", c.Provider)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if c.TimeoutSecs <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// NewProvider creates a Provider from the given config. All supported
// providers speak the OpenAI-compatible chat-completions protocol.
func NewProvider(cfg *Config) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid LLM config: %w", err)
	}
	return newClient(cfg), nil
}
