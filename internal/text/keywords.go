package text

// ExtractKeywords derives the ordered, de-duplicated significant tokens
// of a text: normalize, split on whitespace/comma, drop stopwords and
// common verbs, stem each survivor, drop anything of length <= 1, and
// de-duplicate preserving first-occurrence order.
//
// Noise filtering runs both before and after stemming: "needs" stems to
// "need", which is itself a noise verb and must not leak into keywords.
// The result never contains a stopword, a common verb, or a token of
// length <= 1.
func ExtractKeywords(text string) []string {
	norm := Normalize(text)
	if norm == "" {
		return nil
	}

	seen := make(map[string]bool)
	var keywords []string
	for _, token := range SplitTokens(norm) {
		if IsNoiseWord(token) {
			continue
		}
		stemmed := Stem(token)
		if len(stemmed) <= 1 || IsNoiseWord(stemmed) {
			continue
		}
		if !seen[stemmed] {
			seen[stemmed] = true
			keywords = append(keywords, stemmed)
		}
	}
	return keywords
}
