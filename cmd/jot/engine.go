package main

import (
	"log/slog"
	"strings"

	"github.com/hurttlocker/jot/internal/answer"
	"github.com/hurttlocker/jot/internal/config"
	"github.com/hurttlocker/jot/internal/extract"
	"github.com/hurttlocker/jot/internal/journal"
	"github.com/hurttlocker/jot/internal/llm"
	"github.com/hurttlocker/jot/internal/store"
)

// buildEngine assembles a journal engine from resolved settings. The
// model tier is attached only when a selector is configured; without
// one, extraction and query replies run rule-based.
func buildEngine(resolved config.ResolvedConfig, logger *slog.Logger) (*journal.Engine, error) {
	opts := []journal.Option{
		journal.WithLogger(logger),
		journal.WithExtractor(extract.New(extract.Config{MaxScanItems: resolved.MaxItemsValue()})),
	}

	if selector := strings.TrimSpace(resolved.LLM.Value); selector != "" {
		provider, err := buildProvider(resolved, selector)
		if err != nil {
			return nil, err
		}
		opts = append(opts,
			journal.WithProvider(provider),
			journal.WithPhraser(answer.NewPhraser(provider)),
		)
		logger.Info("model tier enabled", "model", provider.Name())
	} else {
		logger.Debug("no model configured, running rule-based only")
	}

	return journal.New(store.New(), opts...), nil
}

// buildProvider turns a "provider/model" selector into a client,
// applying the resolved endpoint, key, timeout, and retry settings.
func buildProvider(resolved config.ResolvedConfig, selector string) (llm.Provider, error) {
	cfg, err := llm.ParseFlag(selector)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(resolved.LLMEndpoint.Value); v != "" {
		cfg.Endpoint = v
	}
	if key := resolved.APIKeyForProvider(selector); strings.TrimSpace(key.Value) != "" {
		cfg.APIKey = key.Value
	}
	cfg.TimeoutSecs = resolved.LLMTimeoutValue()
	cfg.MaxRetries = resolved.LLMRetriesValue()
	return llm.NewProvider(cfg)
}
