// Package handlers provides HTTP handlers for the digisvar API.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mediekroken/digisvar/internal/analytics"
	"github.com/mediekroken/digisvar/internal/assistant"
	"github.com/mediekroken/digisvar/internal/cache"
	"github.com/mediekroken/digisvar/internal/observability"
)

// ChatHandler handles chat message requests.
type ChatHandler struct {
	logger    *observability.Logger
	assistant *assistant.Assistant
	cache     cache.Client
	cacheTTL  time.Duration
	recorder  analytics.Recorder
}

// NewChatHandler creates a new chat handler. Cache and recorder may be nil.
func NewChatHandler(logger *observability.Logger, a *assistant.Assistant, c cache.Client, cacheTTL time.Duration, recorder analytics.Recorder) *ChatHandler {
	if recorder == nil {
		recorder = analytics.NopRecorder{}
	}
	return &ChatHandler{
		logger:    logger,
		assistant: a,
		cache:     c,
		cacheTTL:  cacheTTL,
		recorder:  recorder,
	}
}

// ChatRequestDTO represents the API request for a chat message.
type ChatRequestDTO struct {
	Text    string                       `json:"text"`
	History []assistant.ConversationTurn `json:"history,omitempty"`
}

// Chat handles POST /api/v1/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var req ChatRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Text == "" {
		h.writeError(w, http.StatusBadRequest, "text is required", "")
		return
	}

	// The response is deterministic given the normalized text and the
	// inferred topic, so those two form the cache key.
	topicHint := assistant.InferTopic(req.History)
	cacheKey := cache.ResponseKey(assistant.Normalize(req.Text), topicHint)

	if h.cache != nil {
		if data, err := h.cache.Get(ctx, cacheKey); err == nil {
			h.logger.Debug().Str("key", cacheKey).Msg("Chat cache hit")
			w.Header().Set("Content-Type", "application/json")
			w.Write(data)
			return
		}
	}

	resp := h.assistant.Handle(ctx, assistant.Input{
		Text:    req.Text,
		History: req.History,
	})

	h.record(r, resp, req.Text, topicHint, time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	data, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
		h.writeError(w, http.StatusInternalServerError, "encode response", "")
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, cacheKey, data, h.cacheTTL); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to cache response")
		}
	}

	w.Write(data)
}

// record emits a route analytics event. Failures are logged, never surfaced.
func (h *ChatHandler) record(r *http.Request, resp assistant.Response, text, topicHint string, latency time.Duration) {
	route, _ := resp.Meta["route"].(string)
	intent, _ := resp.Meta["intent"].(string)
	faqID, _ := resp.Meta["faqId"].(string)

	event := analytics.RouteEvent{
		Route:     route,
		Intent:    intent,
		TopicHint: topicHint,
		Question:  assistant.Normalize(text),
		FaqID:     faqID,
		LatencyMs: latency.Milliseconds(),
	}

	if err := h.recorder.Record(r.Context(), event); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to record route event")
	}
}

func (h *ChatHandler) writeError(w http.ResponseWriter, status int, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]string{"error": message}
	if detail != "" {
		resp["detail"] = detail
	}
	json.NewEncoder(w).Encode(resp)
}
