package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediekroken/digisvar/internal/knowledge"
)

func TestNew(t *testing.T) {
	t.Run("nil knowledge base is rejected", func(t *testing.T) {
		_, err := New(nil, Config{}, nil)
		assert.ErrorIs(t, err, ErrNoKnowledge)
	})

	t.Run("invalid knowledge base is rejected", func(t *testing.T) {
		kb := &knowledge.KnowledgeBase{
			FAQ: []knowledge.FaqEntry{
				{ID: "dobbel", Question: "a", Answer: "b"},
				{ID: "dobbel", Question: "c", Answer: "d"},
			},
		}
		_, err := New(kb, Config{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate faq id")
	})

	t.Run("valid knowledge base", func(t *testing.T) {
		a, err := New(testKnowledgeBase(), Config{}, nil)
		require.NoError(t, err)
		assert.NotNil(t, a.Knowledge())
	})
}

func TestAssistant_Handle(t *testing.T) {
	a, err := New(testKnowledgeBase(), Config{}, nil)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("format question hits the faq route", func(t *testing.T) {
		resp := a.Handle(ctx, Input{Text: "Hvilke videoformater kan dere digitalisere?"})
		assert.Equal(t, KindAnswer, resp.Kind)
		assert.Equal(t, RouteFAQ, resp.Meta["route"])
		assert.Equal(t, "video-formater", resp.Meta["faqId"])
	})

	t.Run("cost question with video history hits the price route", func(t *testing.T) {
		resp := a.Handle(ctx, Input{
			Text: "Hva koster det?",
			History: []ConversationTurn{
				{Role: "user", Text: "Jeg har noen gamle VHS-kassetter jeg vil ta vare på"},
			},
		})
		assert.Equal(t, RoutePrice, resp.Meta["route"])
		assert.Contains(t, resp.Text, "249 kr")

		ctxMeta, ok := resp.Meta["ctx"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, TopicVideo, ctxMeta["topicHint"])
	})

	t.Run("address question hits the company route", func(t *testing.T) {
		resp := a.Handle(ctx, Input{Text: "Hva er adressen deres?"})
		assert.Equal(t, RouteCompany, resp.Meta["route"])
		assert.Contains(t, resp.Text, "Storgata 1")
	})

	t.Run("gibberish hits the fallback", func(t *testing.T) {
		resp := a.Handle(ctx, Input{Text: "asdf qwerty blub"})
		assert.Equal(t, RouteFallback, resp.Meta["route"])
		assert.Equal(t, DefaultFallbackMessage, resp.Text)
	})

	t.Run("empty text hits the fallback", func(t *testing.T) {
		resp := a.Handle(ctx, Input{Text: ""})
		assert.Equal(t, RouteFallback, resp.Meta["route"])
	})

	t.Run("custom fallback message", func(t *testing.T) {
		custom, err := New(testKnowledgeBase(), Config{FallbackMessage: "Det vet jeg ikke."}, nil)
		require.NoError(t, err)
		resp := custom.Handle(ctx, Input{Text: "asdf qwerty blub"})
		assert.Equal(t, "Det vet jeg ikke.", resp.Text)
	})
}
