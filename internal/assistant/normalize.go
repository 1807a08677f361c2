// Package assistant implements the rule-based conversational responder:
// text normalization, FAQ matching, company/price intent detection, topic
// inference and the intent routing chain that ties them together.
package assistant

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases the input, applies Unicode canonical decomposition,
// strips every rune that is not a letter, digit or whitespace, and collapses
// whitespace runs to single spaces. Decomposition followed by the mark strip
// folds accents (é -> e, å -> a) while letters without a decomposition
// (æ, ø) survive as-is. Idempotent and never fails.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	decomposed := norm.NFD.String(strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize splits normalized text into its unique word tokens, preserving
// first-seen order.
func Tokenize(normalized string) []string {
	fields := strings.Fields(normalized)
	seen := make(map[string]bool, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// TokenSet returns the unique tokens of normalized text as a set.
func TokenSet(normalized string) map[string]bool {
	set := make(map[string]bool)
	for _, f := range strings.Fields(normalized) {
		set[f] = true
	}
	return set
}
