// Package search matches stored journal entries against free-text
// queries and reduces result sets to item lists. Matching is boolean:
// an entry either matches or it does not, with no relevance scoring.
package search

import (
	"regexp"
	"strings"

	"github.com/hurttlocker/jot/internal/extract"
	"github.com/hurttlocker/jot/internal/intent"
	"github.com/hurttlocker/jot/internal/store"
	"github.com/hurttlocker/jot/internal/text"
)

// broadCategoryRE is the action/category net used by list-style
// queries. Combined with the keyword test below it makes almost any
// indexed entry answer a shopping query.
var broadCategoryRE = regexp.MustCompile(`\b(?:buy|add|shopping|supermarket|grocery)\b`)

// Engine answers queries against a store, re-extracting items from
// plain-note content when an entry carries none.
type Engine struct {
	store     *store.Store
	extractor *extract.Extractor
}

// New creates a search engine over the given store.
func New(st *store.Store, ex *extract.Extractor) *Engine {
	return &Engine{store: st, extractor: ex}
}

// Query returns the entries matching a query, newest first.
//
// A list/shopping-style query matches every entry that has at least one
// item, at least one keyword, or broad action/category words in its raw
// content. Any other query is tokenized (split, stopwords dropped,
// stemmed) and matches entries where a query token and an entry keyword
// contain one another as substrings, or where the token occurs in the
// raw lowercased content. Querying never mutates the store; the same
// query over the same store state returns the same results.
func (e *Engine) Query(query string) []*store.Entry {
	entries := e.store.All()

	if intent.IsListQuery(query) {
		var results []*store.Entry
		for _, entry := range entries {
			if len(entry.Items) > 0 || len(entry.Keywords) > 0 ||
				broadCategoryRE.MatchString(strings.ToLower(entry.Content)) {
				results = append(results, entry)
			}
		}
		return results
	}

	tokens := queryTokens(query)
	if len(tokens) == 0 {
		return nil
	}
	var results []*store.Entry
	for _, entry := range entries {
		if entryMatches(entry, tokens) {
			results = append(results, entry)
		}
	}
	return results
}

// ItemsFor reduces a result set to a single ordered, de-duplicated item
// list. Cached entry items are preferred; an entry without items has
// its content re-run through the fallback extractor. Entry keywords are
// never folded in: keywords carry list-noise words ("shopping", "list")
// that would pollute the item list.
func (e *Engine) ItemsFor(results []*store.Entry) []string {
	seen := make(map[string]bool)
	var items []string
	for _, entry := range results {
		candidates := entry.Items
		if len(candidates) == 0 {
			candidates = e.extractor.Items(entry.Content)
		}
		for _, item := range candidates {
			if !seen[item] {
				seen[item] = true
				items = append(items, item)
			}
		}
	}
	return items
}

// queryTokens tokenizes a query for matching: normalize, split, drop
// stopwords, stem. Common verbs are kept: "buy" in a query still
// matches "buy bread" in raw content.
func queryTokens(query string) []string {
	norm := text.Normalize(query)
	if norm == "" {
		return nil
	}
	var tokens []string
	for _, token := range text.SplitTokens(norm) {
		if text.IsStopWord(token) {
			continue
		}
		stemmed := text.Stem(token)
		if len(stemmed) <= 1 || text.IsStopWord(stemmed) {
			continue
		}
		tokens = append(tokens, stemmed)
	}
	return tokens
}

// entryMatches reports whether any query token hits the entry's
// keywords (substring in either direction) or its raw content.
func entryMatches(entry *store.Entry, tokens []string) bool {
	content := strings.ToLower(entry.Content)
	for _, token := range tokens {
		for _, kw := range entry.Keywords {
			if strings.Contains(kw, token) || strings.Contains(token, kw) {
				return true
			}
		}
		if strings.Contains(content, token) {
			return true
		}
	}
	return false
}
