package assistant

import (
	"strings"

	"github.com/mediekroken/digisvar/internal/knowledge"
)

// Boost weights for topic-aware FAQ scoring. Boosts are additive on top of
// the token-overlap base score.
const (
	boostExactTag   = 3
	boostRelatedTag = 2
	boostIDPrefix   = 1
	boostCostPhrase = 1
)

// costPhrasings are the canonical short cost questions that would otherwise
// score zero tokens against longer FAQ questions. Normalized form.
var costPhrasings = map[string]bool{
	"hva koster det":   true,
	"hva koster dette": true,
	"hva er prisen":    true,
}

// FAQMatcher scores knowledge-base FAQ entries against a user utterance
// using token overlap, with additive topic boosts. This is the single
// matching strategy of the assistant: overlap counting is deterministic and
// favors the short queries this knowledge base sees, where a Jaccard ratio
// with an accept threshold would reject them.
type FAQMatcher struct {
	// relatedTags cross-boosts entries whose tags belong to the same
	// media family as the topic hint.
	relatedTags map[string][]string
}

// NewFAQMatcher creates a matcher with the default media-family tag map.
func NewFAQMatcher() *FAQMatcher {
	return &FAQMatcher{
		relatedTags: map[string][]string{
			TopicVideo:    {"vhs", "video8", "hi8", "minidv", "videokassett"},
			TopicSmalfilm: {"super8", "8mm", "16mm", "dobbel8"},
			TopicFoto:     {"bilde", "dias", "lysbilde", "negativ"},
		},
	}
}

// Match returns the best-scoring FAQ entry for the user text, or nil when no
// entry scores above zero. Ties keep the first entry in knowledge-base
// order. Pure over its inputs; malformed entries (missing alternates or
// tags) are treated as empty.
func (m *FAQMatcher) Match(userText string, entries []knowledge.FaqEntry, topicHint string) *knowledge.FaqEntry {
	normalized := Normalize(userText)
	if normalized == "" {
		return nil
	}
	query := TokenSet(normalized)

	var best *knowledge.FaqEntry
	bestScore := 0

	for i := range entries {
		entry := &entries[i]
		score := m.score(normalized, query, entry, topicHint)
		if score > bestScore {
			bestScore = score
			best = entry
		}
	}

	if bestScore == 0 {
		return nil
	}
	return best
}

// score computes the entry's candidate score: the maximum token overlap over
// question and alternates, plus boosts.
func (m *FAQMatcher) score(normalized string, query map[string]bool, entry *knowledge.FaqEntry, topicHint string) int {
	base := overlap(query, entry.Question)
	for _, alt := range entry.Alternates {
		if s := overlap(query, alt); s > base {
			base = s
		}
	}

	score := base

	// Short canonical cost questions share no tokens with most questions;
	// keep them matchable against price-tagged entries.
	if costPhrasings[normalized] && entry.HasTag("pris") {
		score += boostCostPhrase
	}

	if topicHint != "" {
		if entry.HasTag(topicHint) {
			score += boostExactTag
		}
		for _, related := range m.relatedTags[topicHint] {
			if entry.HasTag(related) {
				score += boostRelatedTag
				break
			}
		}
		if strings.HasPrefix(entry.ID, topicHint) {
			score += boostIDPrefix
		}
	}

	return score
}

// overlap counts tokens shared between the query set and the candidate text.
func overlap(query map[string]bool, candidate string) int {
	count := 0
	for _, token := range Tokenize(Normalize(candidate)) {
		if query[token] {
			count++
		}
	}
	return count
}
