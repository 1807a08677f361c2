package assistant

import (
	"path"
	"strings"
)

// Known conversation topics.
const (
	TopicVideo    = "video"
	TopicSmalfilm = "smalfilm"
	TopicFoto     = "foto"
)

// ConversationTurn is one message in the conversation history.
type ConversationTurn struct {
	Role  string         `json:"role"` // user or assistant
	Text  string         `json:"text,omitempty"`
	Topic string         `json:"topic,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
}

// topicKeywords maps each topic to the terms that signal it in free text.
// Terms are in normalized form (see Normalize).
var topicKeywords = []struct {
	topic string
	terms []string
}{
	{TopicVideo, []string{"vhs", "video", "videokassett", "videoband", "video8", "hi8", "minidv"}},
	{TopicSmalfilm, []string{"smalfilm", "super 8", "super8", "8mm", "8 mm", "16mm", "16 mm", "dobbel8"}},
	{TopicFoto, []string{"foto", "bilde", "dias", "lysbilde", "negativ"}},
}

// InferTopic derives the current conversation topic from history. It scans
// from the most recent turn backwards: the first turn with non-empty text
// decides, either through its explicit topic field or by keyword families in
// the text. If that yields nothing, the first turn carrying metadata is
// inspected for a topic value or a source-path hint. Returns "" when no
// topic can be inferred; callers treat that as "no bias", not an error.
func InferTopic(history []ConversationTurn) string {
	for i := len(history) - 1; i >= 0; i-- {
		turn := history[i]
		if strings.TrimSpace(turn.Text) == "" {
			continue
		}

		if turn.Topic != "" {
			return strings.ToLower(turn.Topic)
		}

		if topic := matchTopicText(turn.Text); topic != "" {
			return topic
		}
		break
	}

	for i := len(history) - 1; i >= 0; i-- {
		turn := history[i]
		if turn.Meta == nil {
			continue
		}

		if topic, ok := turn.Meta["topic"].(string); ok && topic != "" {
			return strings.ToLower(topic)
		}

		if src, ok := turn.Meta["src"].(string); ok && src != "" {
			if topic := matchTopicSource(src); topic != "" {
				return topic
			}
		}
		break
	}

	return ""
}

// matchTopicText matches normalized text against the keyword families and
// returns the first family that matches.
func matchTopicText(text string) string {
	normalized := Normalize(text)
	if normalized == "" {
		return ""
	}

	for _, family := range topicKeywords {
		for _, term := range family.terms {
			if strings.Contains(normalized, term) {
				return family.topic
			}
		}
	}
	return ""
}

// matchTopicSource inspects a path-like hint ("data/video.yaml") for a
// known topic in its filename stem.
func matchTopicSource(src string) string {
	stem := strings.ToLower(path.Base(src))
	if i := strings.IndexByte(stem, '.'); i >= 0 {
		stem = stem[:i]
	}

	for _, topic := range []string{TopicVideo, TopicSmalfilm, TopicFoto} {
		if strings.Contains(stem, topic) {
			return topic
		}
	}
	return ""
}
