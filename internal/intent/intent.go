// Package intent classifies the purpose of a user message with two
// independent boolean predicates over normalized text: "looks like an
// add-intent" and "looks like a list/shopping query". Neither predicate
// can fail; classification of arbitrary input always succeeds.
package intent

import (
	"regexp"

	"github.com/hurttlocker/jot/internal/text"
)

// Intent is the classified purpose of a user message.
type Intent string

const (
	// Add stores structured items extracted from the message.
	Add Intent = "add"
	// Query retrieves entries and items matching the message.
	Query Intent = "query"
	// Note stores the message as a plain journal entry.
	Note Intent = "note"
)

var (
	// actionVerbRE matches the add-intent action-verb group on word
	// boundaries.
	actionVerbRE = regexp.MustCompile(`\b(?:add|put|buy|need|remember|remind|get)\b`)

	// listNounRE matches the add-intent list-noun group on word
	// boundaries. "to-?do" covers both "to-do" and "todo".
	listNounRE = regexp.MustCompile(`\b(?:list|shopping|grocery|to-?do|task|supermarket)\b`)

	// listQueryRE matches the fixed list/shopping-query phrase set,
	// longest phrases first, down to single-word triggers like
	// "shopping".
	listQueryRE = regexp.MustCompile(`\b(?:` +
		`what is my shopping list|` +
		`what is my to-do list|` +
		`what's on my list|` +
		`what should i buy|` +
		`shopping list|` +
		`grocery list|` +
		`to-do list|` +
		`supermarket|` +
		`shopping|` +
		`grocery|` +
		`to-?do` +
		`)\b`)
)

// IsAddIntent reports whether the message looks like a request to add
// items to a list. True iff the normalized text contains at least one
// action verb (add, put, buy, need, remember, remind, get) AND at least
// one list noun (list, shopping, grocery, to-do/todo, task,
// supermarket). Position and order are irrelevant.
func IsAddIntent(message string) bool {
	norm := text.Normalize(message)
	return actionVerbRE.MatchString(norm) && listNounRE.MatchString(norm)
}

// IsListQuery reports whether the message looks like a query about a
// list's contents.
func IsListQuery(message string) bool {
	return listQueryRE.MatchString(text.Normalize(message))
}

// Classify resolves the branch for a message. The two predicates are
// not mutually exclusive; add-intent is checked first.
func Classify(message string) Intent {
	switch {
	case IsAddIntent(message):
		return Add
	case IsListQuery(message):
		return Query
	default:
		return Note
	}
}
