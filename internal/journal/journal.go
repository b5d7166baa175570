// Package journal is the conversational engine of jot: it takes one raw
// user message, decides what the user meant, updates the store, and
// produces a structured reply for whatever surface (HTTP, MCP, CLI) is
// talking to the user.
//
// The engine is total over arbitrary input. A configured language model
// is consulted for item extraction on the add path, but any model
// failure, timeout, or empty answer silently falls back to rule-based
// extraction; the fallback output is authoritative, not a degraded
// stand-in.
package journal

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hurttlocker/jot/internal/answer"
	"github.com/hurttlocker/jot/internal/extract"
	"github.com/hurttlocker/jot/internal/intent"
	"github.com/hurttlocker/jot/internal/llm"
	"github.com/hurttlocker/jot/internal/search"
	"github.com/hurttlocker/jot/internal/store"
)

// Extraction method labels recorded on add-path replies.
const (
	ExtractorModel = "model"
	ExtractorRules = "rules"
)

// maxModelItems caps how many items a model answer may contribute.
const maxModelItems = 10

// Reply is the structured result of one message round trip.
type Reply struct {
	Intent intent.Intent `json:"intent"`
	// Text is a short human-readable answer for chat surfaces.
	Text string `json:"text"`
	// Entry is the stored record (add and note paths).
	Entry *store.Entry `json:"entry,omitempty"`
	// Entries are the matching records (query path), newest first.
	Entries []*store.Entry `json:"entries,omitempty"`
	// Items are the extracted items (add path) or the aggregated item
	// list of the matching entries (query path).
	Items []string `json:"items,omitempty"`
	// Extractor records which extraction method produced the items on
	// the add path: "model" or "rules".
	Extractor string `json:"extractor,omitempty"`
}

// Engine routes messages through intent classification, extraction,
// storage, and search.
type Engine struct {
	store     *store.Store
	extractor *extract.Extractor
	search    *search.Engine
	provider  llm.Provider
	phraser   *answer.Phraser
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithProvider attaches an optional language-model collaborator used
// for add-path item extraction.
func WithProvider(p llm.Provider) Option {
	return func(e *Engine) { e.provider = p }
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithPhraser attaches an optional phraser that rewrites query reply
// text conversationally. A degraded phrase keeps the deterministic
// text, so queries behave identically when the model misbehaves.
func WithPhraser(p *answer.Phraser) Option {
	return func(e *Engine) { e.phraser = p }
}

// WithExtractor replaces the default fallback extractor.
func WithExtractor(ex *extract.Extractor) Option {
	return func(e *Engine) { e.extractor = ex }
}

// New creates an engine over the given store.
func New(st *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:     st,
		extractor: extract.New(extract.DefaultConfig()),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.search = search.New(st, e.extractor)
	return e
}

// Search exposes the engine's query side for read-only surfaces.
func (e *Engine) Search() *search.Engine {
	return e.search
}

// Store exposes the underlying entry store.
func (e *Engine) Store() *store.Store {
	return e.store
}

// HandleMessage runs one conversational round trip. Add-intent is
// checked before query-intent; anything else is stored as a plain note.
// It never returns an error: empty input yields a prompt to say more,
// and model trouble falls back to rules.
func (e *Engine) HandleMessage(ctx context.Context, message string) *Reply {
	message = strings.TrimSpace(message)
	if message == "" {
		return &Reply{
			Intent: intent.Note,
			Text:   "Say something and I'll jot it down.",
		}
	}

	switch intent.Classify(message) {
	case intent.Add:
		return e.handleAdd(ctx, message)
	case intent.Query:
		return e.handleQuery(ctx, message)
	default:
		return e.handleNote(message)
	}
}

func (e *Engine) handleAdd(ctx context.Context, message string) *Reply {
	items, method := e.resolveItems(ctx, message)
	entry := e.store.Append(message, nil, items)

	e.logger.Debug("add handled",
		"entry_id", entry.ID,
		"items", len(entry.Items),
		"extractor", method)

	text := "Noted, though I couldn't pick out specific items."
	if len(entry.Items) > 0 {
		text = "Added to your list: " + strings.Join(entry.Items, ", ")
	}
	return &Reply{
		Intent:    intent.Add,
		Text:      text,
		Entry:     entry,
		Items:     entry.Items,
		Extractor: method,
	}
}

func (e *Engine) handleQuery(ctx context.Context, message string) *Reply {
	entries := e.search.Query(message)
	items := e.search.ItemsFor(entries)

	e.logger.Debug("query handled", "matches", len(entries), "items", len(items))

	var text string
	switch {
	case len(items) > 0:
		text = "On your list: " + strings.Join(items, ", ")
	case len(entries) > 0:
		text = "I found matching notes but no list items in them."
	default:
		text = "Nothing on your list yet."
	}

	if e.phraser != nil {
		phrased := e.phraser.Phrase(ctx, message, entries, items, text)
		if !phrased.Degraded {
			text = phrased.Answer
		} else {
			e.logger.Debug("query phrasing degraded", "reason", phrased.Reason)
		}
	}

	return &Reply{
		Intent:  intent.Query,
		Text:    text,
		Entries: entries,
		Items:   items,
	}
}

func (e *Engine) handleNote(message string) *Reply {
	entry := e.store.Append(message, nil, nil)

	e.logger.Debug("note handled", "entry_id", entry.ID, "keywords", len(entry.Keywords))

	return &Reply{
		Intent: intent.Note,
		Text:   "Noted.",
		Entry:  entry,
	}
}

// resolveItems extracts items for the add path. The model is consulted
// when configured; an erroring or empty model answer falls through to
// the rule-based extractor, whose output stands on its own.
func (e *Engine) resolveItems(ctx context.Context, message string) ([]string, string) {
	if e.provider != nil {
		items, err := llm.ExtractItems(ctx, e.provider, message, maxModelItems)
		if err != nil {
			e.logger.Warn("model extraction failed, using rules",
				"provider", e.provider.Name(),
				"error", err)
		} else if len(items) > 0 {
			return items, ExtractorModel
		}
	}
	return e.extractor.Items(message), ExtractorRules
}
