package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediekroken/digisvar/internal/analytics"
	"github.com/mediekroken/digisvar/internal/assistant"
	"github.com/mediekroken/digisvar/internal/cache"
	"github.com/mediekroken/digisvar/internal/knowledge"
	"github.com/mediekroken/digisvar/internal/observability"
)

type captureRecorder struct {
	events []analytics.RouteEvent
}

func (r *captureRecorder) Record(ctx context.Context, event analytics.RouteEvent) error {
	r.events = append(r.events, event)
	return nil
}

func (r *captureRecorder) Close() error { return nil }

func newTestHandler(t *testing.T, c cache.Client, recorder analytics.Recorder) *ChatHandler {
	t.Helper()

	kb := &knowledge.KnowledgeBase{
		FAQ: []knowledge.FaqEntry{
			{
				ID:          "video-formater",
				Question:    "Hvilke videoformater kan dere digitalisere?",
				Answer:      "Vi digitaliserer VHS, Video8, Hi8 og MiniDV.",
				Tags:        []string{"video", "vhs"},
				SourceLabel: "Tjenesteoversikt 2024",
			},
		},
		Meta: knowledge.Meta{
			Prices: knowledge.PriceMeta{PricePerHourVideo: "249 kr", SourceLabel: "Prisliste 2024"},
		},
	}

	logger := observability.NewLogger(observability.LogConfig{Level: "error", Format: "json", ServiceName: "test"})
	a, err := assistant.New(kb, assistant.Config{}, logger)
	require.NoError(t, err)

	return NewChatHandler(logger, a, c, time.Minute, recorder)
}

func doChat(t *testing.T, h *ChatHandler, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", &buf)
	w := httptest.NewRecorder()
	h.Chat(w, req)
	return w
}

func TestChatHandler_Chat(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	t.Run("faq answer", func(t *testing.T) {
		w := doChat(t, h, ChatRequestDTO{Text: "Hvilke videoformater kan dere digitalisere?"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp assistant.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "answer", resp.Kind)
		assert.Equal(t, "faq", resp.Meta["route"])
		assert.Equal(t, "video-formater", resp.Meta["faqId"])
	})

	t.Run("history steers the topic", func(t *testing.T) {
		w := doChat(t, h, ChatRequestDTO{
			Text: "Hva koster det?",
			History: []assistant.ConversationTurn{
				{Role: "user", Text: "Jeg har gamle VHS-kassetter"},
			},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp assistant.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "price", resp.Meta["route"])
	})

	t.Run("missing text", func(t *testing.T) {
		w := doChat(t, h, ChatRequestDTO{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "text is required")
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader([]byte("{nope")))
		w := httptest.NewRecorder()
		h.Chat(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestChatHandler_CachesResponses(t *testing.T) {
	c := cache.NewMemoryClient(10)
	defer c.Close()
	h := newTestHandler(t, c, nil)

	first := doChat(t, h, ChatRequestDTO{Text: "Hvilke videoformater kan dere digitalisere?"})
	require.Equal(t, http.StatusOK, first.Code)

	key := cache.ResponseKey(assistant.Normalize("Hvilke videoformater kan dere digitalisere?"), "")
	cached, err := c.Get(context.Background(), key)
	require.NoError(t, err)
	assert.JSONEq(t, first.Body.String(), string(cached))

	second := doChat(t, h, ChatRequestDTO{Text: "Hvilke videoformater kan dere digitalisere?"})
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestChatHandler_RecordsRouteEvents(t *testing.T) {
	rec := &captureRecorder{}
	h := newTestHandler(t, nil, rec)

	w := doChat(t, h, ChatRequestDTO{Text: "Hvilke videoformater kan dere digitalisere?"})
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, rec.events, 1)
	event := rec.events[0]
	assert.Equal(t, "faq", event.Route)
	assert.Equal(t, "video-formater", event.FaqID)
	assert.Equal(t, "hvilke videoformater kan dere digitalisere", event.Question)
}
