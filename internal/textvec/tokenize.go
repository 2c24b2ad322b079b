package textvec

import (
	"regexp"
	"strings"
)

// tokenRegex matches runs of two or more letters, digits or underscores.
var tokenRegex = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lower-cases text, splits it on whitespace and punctuation
// and drops English stop words. Token order is preserved.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	raw := tokenRegex.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, t := range raw {
		if IsStopWord(t) {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// IsStopWord reports whether the lower-cased token is an English stop word.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
