package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/mediekroken/digisvar/internal/knowledge"
	"github.com/mediekroken/digisvar/internal/observability"
)

// ErrNoKnowledge is returned when the assistant is constructed without a
// usable knowledge base.
var ErrNoKnowledge = errors.New("no knowledge base")

// Config holds assistant behavior settings. Passed explicitly to the
// constructor; the assistant reads no environment state of its own.
type Config struct {
	DebugLogging    bool
	FallbackMessage string
}

// Input is one inbound message with its conversation history.
type Input struct {
	Text    string             `json:"text"`
	History []ConversationTurn `json:"history,omitempty"`
}

// Assistant is the process-wide responder. It owns the knowledge base
// (loaded once, immutable) and is safe for concurrent use: handling a
// message touches no mutable shared state.
type Assistant struct {
	kb     *knowledge.KnowledgeBase
	router *Router
	logger *observability.Logger
}

// New creates an assistant over a loaded knowledge base. Fails fast when
// the knowledge base is nil or invalid; an assistant must never serve an
// empty knowledge base silently.
func New(kb *knowledge.KnowledgeBase, cfg Config, logger *observability.Logger) (*Assistant, error) {
	if kb == nil {
		return nil, ErrNoKnowledge
	}
	if err := kb.Validate(); err != nil {
		return nil, fmt.Errorf("assistant: %w", err)
	}
	if logger == nil {
		logger = observability.DefaultLogger()
	}

	return &Assistant{
		kb:     kb,
		router: NewRouter(cfg.FallbackMessage, logger, cfg.DebugLogging),
		logger: logger,
	}, nil
}

// Knowledge returns the knowledge base the assistant serves. Read-only.
func (a *Assistant) Knowledge() *knowledge.KnowledgeBase {
	return a.kb
}

// Handle answers a single message. It never returns an error to the caller:
// any internal fault degrades to the polite fallback response.
func (a *Assistant) Handle(ctx context.Context, in Input) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error().Interface("panic", r).Msg("Recovered while handling message")
			resp = Response{
				Kind: KindAnswer,
				Text: a.router.fallback,
				Meta: map[string]any{"route": RouteFallback},
			}
		}
	}()

	topicHint := InferTopic(in.History)
	return a.router.Route(in.Text, a.kb, topicHint)
}
