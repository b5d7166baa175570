// Package text provides the deterministic text primitives for jot:
// - Normalization (case, quote styles, punctuation, whitespace)
// - Crude suffix stemming (singularization, no linguistic exceptions)
// - Stopword and common-verb noise filtering
// - Keyword extraction for free-text indexing
//
// Every function in this package is a total function over arbitrary
// string input: no errors, no I/O, no hidden state. Malformed or empty
// input degrades to empty output.
package text

import (
	"regexp"
	"strings"
)

// smartQuoteReplacer maps curly/smart single and double quotes to a
// straight apostrophe so possessives and contractions survive
// normalization uniformly.
var smartQuoteReplacer = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", "'", // left double quote
	"”", "'", // right double quote
)

var (
	// disallowedRE matches every character outside the normalized
	// alphabet: lowercase letters, digits, whitespace, comma,
	// ampersand, hyphen, apostrophe.
	disallowedRE = regexp.MustCompile(`[^a-z0-9\s,&'-]`)

	// whitespaceRE collapses runs of whitespace.
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes raw text: lowercases, maps smart quotes to a
// straight apostrophe, replaces characters outside the normalized
// alphabet with spaces, collapses whitespace, and trims the ends.
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	s := strings.ToLower(text)
	s = smartQuoteReplacer.Replace(s)
	s = disallowedRE.ReplaceAllString(s, " ")
	s = whitespaceRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Stem applies crude suffix stripping to a single word, first match wins:
//
//	length > 4 and ends in "ies" -> drop "ies", append "y"
//	length > 3 and ends in "es"  -> drop "es"
//	length > 2 and ends in "s"   -> drop "s"
//
// The bare trailing-s rule strips even when linguistically wrong
// ("bus" -> "bu"). That quirk is part of the contract: stored keywords
// and query tokens are stemmed by the same rules, so they still meet.
func Stem(word string) string {
	switch {
	case len(word) > 4 && strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case len(word) > 3 && strings.HasSuffix(word, "es"):
		return word[:len(word)-2]
	case len(word) > 2 && strings.HasSuffix(word, "s"):
		return word[:len(word)-1]
	}
	return word
}

// SplitTokens splits normalized text on whitespace and commas, trimming
// stray quote and hyphen characters from token edges. Empty tokens are
// dropped.
func SplitTokens(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ','
	})
	var tokens []string
	for _, f := range fields {
		f = strings.Trim(f, "'&-")
		if f == "" {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
