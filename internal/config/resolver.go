// Package config resolves jot's runtime settings from three layers:
// CLI flags override environment variables (JOT_*), which override the
// YAML config file (~/.jot/config.yaml), which overrides built-in
// defaults. Every resolved setting carries its source and origin so
// `jot config` can show exactly where a value came from.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueSource identifies which layer supplied a setting.
type ValueSource string

const (
	SourceUnknown ValueSource = "unknown"
	SourceDefault ValueSource = "default"
	SourceConfig  ValueSource = "config"
	SourceEnv     ValueSource = "env"
	SourceCLI     ValueSource = "cli"
)

// ResolvedValue is one setting with provenance. From names the config
// file, environment variable, or flag that supplied the value.
type ResolvedValue struct {
	Value  string      `json:"value"`
	Source ValueSource `json:"source"`
	From   string      `json:"from,omitempty"`
}

// ResolveOptions carries the CLI-layer inputs. Empty strings mean the
// flag was not given.
type ResolveOptions struct {
	ConfigPath string

	CLIAddr      string
	CLILLM       string
	CLILogLevel  string
	CLILogFormat string
	CLIMaxItems  string
}

// ResolvedConfig is the full resolved settings set.
type ResolvedConfig struct {
	ConfigPath string `json:"config_path"`

	Addr ResolvedValue `json:"addr"`

	// LLM is the "provider/model" selector; empty means no model is
	// configured and extraction runs rule-based only.
	LLM         ResolvedValue `json:"llm"`
	LLMEndpoint ResolvedValue `json:"llm_endpoint"`
	LLMTimeout  ResolvedValue `json:"llm_timeout_seconds"`
	LLMRetries  ResolvedValue `json:"llm_max_retries"`

	// MaxItems caps the fallback extractor's token-scan output.
	MaxItems ResolvedValue `json:"max_items"`

	LogLevel  ResolvedValue `json:"log_level"`
	LogFormat ResolvedValue `json:"log_format"`

	// LLMKeys maps provider name to its resolved API key.
	LLMKeys map[string]ResolvedValue `json:"llm_keys,omitempty"`
}

// fileConfig mirrors ~/.jot/config.yaml.
type fileConfig struct {
	Addr string `yaml:"addr"`
	LLM  struct {
		Model      string `yaml:"model"` // provider/model
		APIKey     string `yaml:"api_key"`
		Endpoint   string `yaml:"endpoint"`
		TimeoutSec int    `yaml:"timeout_seconds"`
		MaxRetries int    `yaml:"max_retries"`
	} `yaml:"llm"`
	Extract struct {
		MaxItems int `yaml:"max_items"`
	} `yaml:"extract"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Built-in defaults.
const (
	DefaultAddr       = ":8080"
	DefaultLLMTimeout = 20
	DefaultLLMRetries = 2
	DefaultMaxItems   = 5
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
)

// DefaultConfigPath is ~/.jot/config.yaml.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".jot", "config.yaml")
}

// Resolve layers file, environment, and CLI values over the defaults.
// A missing config file is not an error; a malformed one is.
func Resolve(opts ResolveOptions) (ResolvedConfig, error) {
	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		path = DefaultConfigPath()
	}

	out := ResolvedConfig{
		ConfigPath: path,
		Addr:       ResolvedValue{Value: DefaultAddr, Source: SourceDefault},
		LLMTimeout: ResolvedValue{Value: strconv.Itoa(DefaultLLMTimeout), Source: SourceDefault},
		LLMRetries: ResolvedValue{Value: strconv.Itoa(DefaultLLMRetries), Source: SourceDefault},
		MaxItems:   ResolvedValue{Value: strconv.Itoa(DefaultMaxItems), Source: SourceDefault},
		LogLevel:   ResolvedValue{Value: DefaultLogLevel, Source: SourceDefault},
		LogFormat:  ResolvedValue{Value: DefaultLogFormat, Source: SourceDefault},
		LLMKeys:    map[string]ResolvedValue{},
	}

	cfg, err := loadFile(path)
	if err != nil {
		return out, err
	}
	if cfg != nil {
		apply(&out.Addr, cfg.Addr, SourceConfig, path)
		apply(&out.LLM, cfg.LLM.Model, SourceConfig, path)
		apply(&out.LLMEndpoint, cfg.LLM.Endpoint, SourceConfig, path)
		if cfg.LLM.TimeoutSec > 0 {
			apply(&out.LLMTimeout, strconv.Itoa(cfg.LLM.TimeoutSec), SourceConfig, path)
		}
		if cfg.LLM.MaxRetries > 0 {
			apply(&out.LLMRetries, strconv.Itoa(cfg.LLM.MaxRetries), SourceConfig, path)
		}
		if cfg.Extract.MaxItems > 0 {
			apply(&out.MaxItems, strconv.Itoa(cfg.Extract.MaxItems), SourceConfig, path)
		}
		apply(&out.LogLevel, cfg.Log.Level, SourceConfig, path)
		apply(&out.LogFormat, cfg.Log.Format, SourceConfig, path)

		if key := strings.TrimSpace(cfg.LLM.APIKey); key != "" {
			provider := providerOf(cfg.LLM.Model)
			if provider == "" {
				provider = "default"
			}
			out.LLMKeys[provider] = ResolvedValue{Value: key, Source: SourceConfig, From: path}
		}
	}

	applyEnv(&out.Addr, "JOT_ADDR")
	applyEnv(&out.LLM, "JOT_LLM")
	applyEnv(&out.LLMEndpoint, "JOT_LLM_ENDPOINT")
	applyEnv(&out.LLMTimeout, "JOT_LLM_TIMEOUT")
	applyEnv(&out.LLMRetries, "JOT_LLM_RETRIES")
	applyEnv(&out.MaxItems, "JOT_MAX_ITEMS")
	applyEnv(&out.LogLevel, "JOT_LOG_LEVEL")
	applyEnv(&out.LogFormat, "JOT_LOG_FORMAT")

	for env, provider := range map[string]string{
		"OPENAI_API_KEY":     "openai",
		"DEEPSEEK_API_KEY":   "deepseek",
		"OPENROUTER_API_KEY": "openrouter",
		"JOT_LLM_API_KEY":    "default",
	} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			out.LLMKeys[provider] = ResolvedValue{Value: v, Source: SourceEnv, From: env}
		}
	}

	apply(&out.Addr, opts.CLIAddr, SourceCLI, "--addr")
	apply(&out.LLM, opts.CLILLM, SourceCLI, "--llm")
	apply(&out.LogLevel, opts.CLILogLevel, SourceCLI, "--log-level")
	apply(&out.LogFormat, opts.CLILogFormat, SourceCLI, "--log-format")
	apply(&out.MaxItems, opts.CLIMaxItems, SourceCLI, "--max-items")

	return out, nil
}

// APIKeyForProvider returns the key for a "provider" or "provider/model"
// selector, falling back to the provider-agnostic default key.
func (r ResolvedConfig) APIKeyForProvider(providerOrModel string) ResolvedValue {
	provider := providerOf(providerOrModel)
	if provider == "" {
		return ResolvedValue{}
	}
	if v, ok := r.LLMKeys[provider]; ok && strings.TrimSpace(v.Value) != "" {
		return v
	}
	if v, ok := r.LLMKeys["default"]; ok && strings.TrimSpace(v.Value) != "" {
		return v
	}
	return ResolvedValue{}
}

// MaxItemsValue parses the resolved cap, falling back to the default on
// junk input.
func (r ResolvedConfig) MaxItemsValue() int {
	return intValue(r.MaxItems, DefaultMaxItems)
}

// LLMTimeoutValue parses the resolved per-request model timeout seconds.
func (r ResolvedConfig) LLMTimeoutValue() int {
	return intValue(r.LLMTimeout, DefaultLLMTimeout)
}

// LLMRetriesValue parses the resolved model retry count.
func (r ResolvedConfig) LLMRetriesValue() int {
	n, err := strconv.Atoi(strings.TrimSpace(r.LLMRetries.Value))
	if err != nil || n < 0 {
		return DefaultLLMRetries
	}
	return n
}

// Redacted returns a copy safe for printing: API keys are masked down
// to their edges.
func (r ResolvedConfig) Redacted() ResolvedConfig {
	out := r
	out.LLMKeys = make(map[string]ResolvedValue, len(r.LLMKeys))
	for provider, v := range r.LLMKeys {
		v.Value = maskSecret(v.Value)
		out.LLMKeys[provider] = v
	}
	return out
}

func maskSecret(s string) string {
	if len(s) > 8 {
		return s[:4] + "..." + s[len(s)-4:]
	}
	if s == "" {
		return ""
	}
	return "***"
}

func providerOf(providerOrModel string) string {
	v := strings.ToLower(strings.TrimSpace(providerOrModel))
	if v == "" {
		return ""
	}
	if idx := strings.Index(v, "/"); idx > 0 {
		return v[:idx]
	}
	return v
}

func intValue(v ResolvedValue, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v.Value))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func apply(dst *ResolvedValue, raw string, source ValueSource, from string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	*dst = ResolvedValue{Value: v, Source: source, From: from}
}

func applyEnv(dst *ResolvedValue, envKey string) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		*dst = ResolvedValue{Value: v, Source: SourceEnv, From: envKey}
	}
}

func loadFile(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}
