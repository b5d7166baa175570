// Package store holds the in-process journal: an ordered, append-only,
// in-memory collection of entries. The store's lifetime is the process
// lifetime; nothing is persisted across restarts.
package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hurttlocker/jot/internal/text"
)

// Entry is one stored journal record. Entries are immutable once
// created: no collaborator edits an entry in place, and callers must
// treat returned entries as read-only.
type Entry struct {
	// ID is unique within the process and monotonic with creation
	// order (UUIDv7, timestamp-prefixed).
	ID string `json:"id"`
	// Content is the original raw user text.
	Content string `json:"content"`
	// Tags are optional caller-supplied labels, stored but unused by
	// the core logic.
	Tags []string `json:"tags,omitempty"`
	// Keywords are the stemmed, filtered tokens of Content, derived
	// once at creation and never recomputed.
	Keywords []string `json:"keywords"`
	// Items are the structured items of the entry, lowercase and
	// de-duplicated; empty for a plain note.
	Items []string `json:"items"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// Stats summarizes the store for status surfaces.
type Stats struct {
	Entries          int `json:"entries"`
	EntriesWithItems int `json:"entries_with_items"`
	DistinctKeywords int `json:"distinct_keywords"`
	DistinctItems    int `json:"distinct_items"`
}

// Store is the mutex-guarded entry collection, newest entry first.
// Appends are serialized internally; id uniqueness and insertion order
// hold under concurrent callers.
type Store struct {
	mu      sync.RWMutex
	entries []*Entry
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Append creates an entry from raw content and prepends it to the
// store. Keywords are derived from the content; items are lowercased,
// trimmed, and de-duplicated with empty strings dropped, so arbitrary
// caller input (including model output) cannot violate the entry
// invariants.
func (s *Store) Append(content string, tags, items []string) *Entry {
	keywords := text.ExtractKeywords(content)
	cleanItems := normalizeItems(items)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := &Entry{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Content:   content,
		Tags:      cloneStrings(tags),
		Keywords:  keywords,
		Items:     cleanItems,
		CreatedAt: time.Now(),
	}
	s.entries = append([]*Entry{entry}, s.entries...)
	return entry
}

// All returns a snapshot of every entry, newest first. The snapshot is
// unaffected by later appends.
func (s *Store) All() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Entry(nil), s.entries...)
}

// Recent returns a snapshot of the newest n entries, newest first.
func (s *Store) Recent(n int) []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n < 0 {
		n = 0
	}
	if n > len(s.entries) {
		n = len(s.entries)
	}
	return append([]*Entry(nil), s.entries[:n]...)
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Snapshot returns current store statistics.
func (s *Store) Snapshot() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Entries: len(s.entries)}
	keywords := make(map[string]bool)
	items := make(map[string]bool)
	for _, entry := range s.entries {
		if len(entry.Items) > 0 {
			stats.EntriesWithItems++
		}
		for _, kw := range entry.Keywords {
			keywords[kw] = true
		}
		for _, item := range entry.Items {
			items[item] = true
		}
	}
	stats.DistinctKeywords = len(keywords)
	stats.DistinctItems = len(items)
	return stats
}

// normalizeItems lowercases and trims items, dropping empties and exact
// duplicates while preserving first-occurrence order.
func normalizeItems(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var clean []string
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		clean = append(clean, item)
	}
	return clean
}

func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string(nil), s...)
}
