// Package extract provides pattern-based item extraction for jot.
//
// The extractor is the fallback path used when no language model is
// configured or the model call fails: given a raw message, it returns
// the list of structured items the message appears to add. It needs no
// network and no state, and its output is a first-class result, not a
// degraded stand-in. The pipeline:
//   - Normalize the message
//   - Try an ordered list of chunk-capturing patterns, first match wins
//   - Clean the captured chunk and split it into candidate items
//   - If no pattern yields a surviving item, fall back to a capped
//     token scan
//
// Identical input always yields identical output.
package extract

import (
	"regexp"
	"strings"

	"github.com/hurttlocker/jot/internal/text"
)

// chunkPattern captures the item-bearing chunk of a normalized message.
type chunkPattern struct {
	regex    *regexp.Regexp
	name     string
	priority int
}

// initChunkPatterns initializes chunk-capturing patterns in priority order.
func initChunkPatterns() []*chunkPattern {
	return []*chunkPattern{
		// "add eggs and milk to my shopping list" -> "eggs and milk"
		// The capture stops before a trailing preposition/determiner
		// boundary (to/in/on/at/for/my/the/from) or end of string.
		{
			regex: regexp.MustCompile(`\b(?:add|put|buy|need|remember(?:\s+to)?|remind me to|don'?t forget(?:\s+to)?|note to)\s+` +
				`(.+?)(?:\s+(?:to|in|on|at|for|my|the|from)\b.*)?$`),
			name:     "action_verb",
			priority: 1,
		},
		// "shopping list milk, eggs" -> "milk, eggs"
		// Labeled-list prefixes; normalization has already removed the
		// colon from "shopping list: milk, eggs".
		{
			regex:    regexp.MustCompile(`\b(?:shopping list|shopping|to-do list|todo)\s+(.+)$`),
			name:     "labeled_list",
			priority: 2,
		},
		// "also butter" -> "butter"
		{
			regex:    regexp.MustCompile(`\b(?:and also|also|plus)\s+(.+)$`),
			name:     "continuation",
			priority: 3,
		},
	}
}

var (
	// chunkNoiseRE strips list/determiner noise words from a captured
	// chunk before it is split into candidates. "and" and "&" are kept:
	// they separate items.
	chunkNoiseRE = regexp.MustCompile(`\b(?:my|your|our|the|a|an|some|this|that|these|those|` +
		`shopping|grocery|groceries|to-?do|todo|task|tasks|list|lists|item|items|stuff|things|thing|self|please)\b`)

	// candidateSeparatorRE splits a cleaned chunk into candidate items
	// on comma, " and ", or "&".
	candidateSeparatorRE = regexp.MustCompile(`\s*,\s*|\s+and\s+|\s*&\s*`)
)

// DefaultMaxScanItems caps the token-scan fallback so a full sentence is
// never treated as a list.
const DefaultMaxScanItems = 5

// Config bounds extractor output.
type Config struct {
	// MaxScanItems caps the number of items produced by the token-scan
	// fallback. 0 means DefaultMaxScanItems.
	MaxScanItems int
}

// DefaultConfig returns the extraction bounds used in normal operation.
func DefaultConfig() Config {
	return Config{MaxScanItems: DefaultMaxScanItems}
}

// Extractor turns raw messages into ordered, de-duplicated item lists
// using chunk patterns with a token-scan fallback.
type Extractor struct {
	patterns     []*chunkPattern
	maxScanItems int
}

// New creates an Extractor with all chunk patterns initialized.
func New(cfg Config) *Extractor {
	max := cfg.MaxScanItems
	if max <= 0 {
		max = DefaultMaxScanItems
	}
	return &Extractor{
		patterns:     initChunkPatterns(),
		maxScanItems: max,
	}
}

// Items extracts the structured items of a message. Items are lowercase,
// stemmed, longer than one character, free of stopwords and common
// verbs, and de-duplicated preserving first-occurrence order. A message
// with nothing extractable yields an empty list, never an error.
func (e *Extractor) Items(message string) []string {
	norm := text.Normalize(message)
	if norm == "" {
		return nil
	}

	// Try each pattern in priority order; the first pattern whose chunk
	// survives cleaning wins and later patterns are not tried.
	for _, pattern := range e.patterns {
		m := pattern.regex.FindStringSubmatch(norm)
		if len(m) < 2 {
			continue
		}
		if items := splitCandidates(cleanChunk(m[1])); len(items) > 0 {
			return items
		}
	}

	return e.scanTokens(norm)
}

// cleanChunk prepares a captured chunk for splitting: quote characters
// removed, list/determiner noise words stripped, whitespace collapsed.
func cleanChunk(chunk string) string {
	chunk = strings.ReplaceAll(chunk, "'", "")
	chunk = chunkNoiseRE.ReplaceAllString(chunk, "")
	return text.Normalize(chunk)
}

// splitCandidates splits a cleaned chunk on item separators and keeps
// each candidate that survives stemming and the noise filters.
func splitCandidates(chunk string) []string {
	if chunk == "" {
		return nil
	}

	seen := make(map[string]bool)
	var items []string
	for _, candidate := range candidateSeparatorRE.Split(chunk, -1) {
		candidate = strings.Trim(candidate, " ,&'-")
		if candidate == "" {
			continue
		}
		candidate = text.Stem(candidate)
		if len(candidate) <= 1 || text.IsNoiseWord(candidate) {
			continue
		}
		if !seen[candidate] {
			seen[candidate] = true
			items = append(items, candidate)
		}
	}
	return items
}

// scanTokens is the terminal fallback: the keyword pipeline applied to
// the whole message, capped so a plain sentence yields at most a few
// conservative items.
func (e *Extractor) scanTokens(norm string) []string {
	items := text.ExtractKeywords(norm)
	if len(items) > e.maxScanItems {
		items = items[:e.maxScanItems]
	}
	return items
}
