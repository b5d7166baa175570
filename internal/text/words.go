package text

// stopWords is the fixed noise-word set excluded from keywords and
// extracted items. Matching is exact on normalized tokens.
var stopWords = map[string]bool{
	// articles, conjunctions, particles
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"if": true, "then": true, "than": true, "so": true, "too": true,
	"not": true, "no": true, "nor": true, "only": true, "just": true,
	"very": true, "also": true, "please": true, "own": true, "same": true,
	// quantifiers
	"some": true, "any": true, "all": true, "more": true, "most": true,
	"much": true, "many": true, "few": true, "both": true, "each": true,
	"every": true, "other": true, "another": true,
	// prepositions
	"to": true, "of": true, "in": true, "on": true, "at": true, "for": true,
	"from": true, "with": true, "by": true, "about": true, "into": true,
	"over": true, "under": true, "out": true, "up": true, "down": true,
	"off": true, "again": true,
	// pronouns and possessives
	"i": true, "me": true, "my": true, "mine": true, "you": true,
	"your": true, "yours": true, "he": true, "him": true, "his": true,
	"she": true, "her": true, "hers": true, "it": true, "its": true,
	"we": true, "us": true, "our": true, "ours": true, "they": true,
	"them": true, "their": true, "theirs": true, "this": true,
	"that": true, "these": true, "those": true, "there": true, "here": true,
	// question words
	"what": true, "which": true, "who": true, "whom": true, "whose": true,
	"when": true, "where": true, "why": true, "how": true,
	// auxiliaries and modals
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "am": true, "do": true, "does": true,
	"did": true, "doing": true, "have": true, "has": true, "had": true,
	"having": true, "can": true, "could": true, "will": true,
	"would": true, "shall": true, "should": true, "may": true,
	"might": true, "must": true, "cannot": true,
	// contractions (normalization maps smart quotes to apostrophes)
	"don't": true, "dont": true, "doesn't": true, "didn't": true,
	"can't": true, "won't": true, "isn't": true, "aren't": true,
	"wasn't": true, "weren't": true, "it's": true, "i'm": true,
	"i've": true, "i'll": true, "i'd": true, "you're": true,
	"you've": true, "that's": true, "what's": true, "let's": true,
	"lets": true,
}

// commonVerbs is the fixed action-verb noise set. These words carry
// intent, not content: "add milk" is about milk, so "add" never
// becomes a keyword or an item.
var commonVerbs = map[string]bool{
	"add": true, "adding": true, "put": true, "putting": true,
	"buy": true, "buying": true, "bought": true, "get": true,
	"getting": true, "got": true, "need": true, "needed": true,
	"want": true, "wanted": true, "remember": true, "remembered": true,
	"remind": true, "forget": true, "forgot": true, "forgotten": true,
	"note": true, "noted": true, "make": true,
	"made": true, "take": true, "took": true, "go": true, "going": true,
	"went": true, "come": true, "came": true, "see": true, "saw": true,
	"know": true, "knew": true, "think": true, "thought": true,
	"say": true, "said": true, "tell": true, "told": true, "use": true,
	"used": true, "find": true, "found": true, "give": true,
	"gave": true, "keep": true, "kept": true, "let": true, "show": true,
	"showed": true, "write": true, "wrote": true, "call": true,
	"called": true, "try": true, "tried": true,
}

// IsStopWord reports whether the token is in the fixed stopword set.
func IsStopWord(token string) bool {
	return stopWords[token]
}

// IsCommonVerb reports whether the token is in the fixed common-verb set.
func IsCommonVerb(token string) bool {
	return commonVerbs[token]
}

// IsNoiseWord reports whether the token is in either noise set.
func IsNoiseWord(token string) bool {
	return stopWords[token] || commonVerbs[token]
}
