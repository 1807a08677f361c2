package assistant

import (
	"github.com/mediekroken/digisvar/internal/knowledge"
	"github.com/mediekroken/digisvar/internal/observability"
)

// Routes identify which handler produced a response.
const (
	RouteCompany  = "company"
	RouteFAQ      = "faq"
	RoutePrice    = "price"
	RouteFallback = "fallback"
)

// KindAnswer is the response kind for every assistant reply.
const KindAnswer = "answer"

// DefaultFallbackMessage is returned when no handler matches.
const DefaultFallbackMessage = "Beklager, det forsto jeg ikke helt. Du kan spørre meg om digitalisering av video, smalfilm og foto, eller om priser, leveringstid og åpningstider."

// Response is the assistant's reply to a single message.
type Response struct {
	Kind string         `json:"type"`
	Text string         `json:"text"`
	Meta map[string]any `json:"meta"`
}

// Router runs the intent checks as a single-pass priority chain:
// company -> price -> FAQ -> fallback. Each check is a guard: when the
// matcher detects an intent and the responder returns a non-nil response,
// the chain stops there. The fallback always succeeds. Company-practical
// keywords are the most specific signal and go first; the price check runs
// before the FAQ matcher so that generic cost questions reach the price
// responder instead of a boost-carried FAQ entry.
type Router struct {
	company  *CompanyMatcher
	price    *PriceMatcher
	faq      *FAQMatcher
	fallback string
	logger   *observability.Logger
	debug    bool
}

// NewRouter creates a router over the default matchers.
func NewRouter(fallbackMessage string, logger *observability.Logger, debug bool) *Router {
	if fallbackMessage == "" {
		fallbackMessage = DefaultFallbackMessage
	}
	return &Router{
		company:  NewCompanyMatcher(),
		price:    NewPriceMatcher(),
		faq:      NewFAQMatcher(),
		fallback: fallbackMessage,
		logger:   logger,
		debug:    debug,
	}
}

// Route classifies the message and assembles the response, attaching
// provenance metadata: which route answered, which intent fired and the
// topic hint in effect.
func (r *Router) Route(text string, kb *knowledge.KnowledgeBase, topicHint string) Response {
	if intent := r.company.Detect(text); intent != "" {
		if resp := r.company.Respond(intent, kb.Meta.Company, kb.Meta.Delivery); resp != nil {
			r.debugLog("company", intent, topicHint)
			attachTopic(resp, topicHint)
			return *resp
		}
	}

	if intent := r.price.Detect(text); intent != "" {
		if resp := r.price.Respond(intent, kb.Meta.Prices, kb.Meta.Delivery, topicHint); resp != nil {
			r.debugLog("price", intent, topicHint)
			return *resp
		}
	}

	if entry := r.faq.Match(text, kb.FAQ, topicHint); entry != nil {
		r.debugLog("faq", entry.ID, topicHint)
		resp := Response{
			Kind: KindAnswer,
			Text: entry.Answer,
			Meta: map[string]any{
				"route":  RouteFAQ,
				"faqId":  entry.ID,
				"source": entry.SourceLabel,
			},
		}
		attachTopic(&resp, topicHint)
		return resp
	}

	r.debugLog("fallback", "", topicHint)
	resp := Response{
		Kind: KindAnswer,
		Text: r.fallback,
		Meta: map[string]any{"route": RouteFallback},
	}
	attachTopic(&resp, topicHint)
	return resp
}

// attachTopic records the topic hint in effect under meta.ctx.
func attachTopic(resp *Response, topicHint string) {
	if topicHint == "" {
		return
	}
	if _, ok := resp.Meta["ctx"]; !ok {
		resp.Meta["ctx"] = map[string]any{"topicHint": topicHint}
	}
}

func (r *Router) debugLog(route, detail, topicHint string) {
	if !r.debug || r.logger == nil {
		return
	}
	r.logger.Debug().
		Str("route", route).
		Str("detail", detail).
		Str("topic_hint", topicHint).
		Msg("Route decided")
}
