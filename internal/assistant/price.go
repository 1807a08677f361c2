package assistant

import (
	"strings"

	"github.com/mediekroken/digisvar/internal/knowledge"
)

// Price intent names.
const (
	IntentPrice        = "price"
	IntentDeliveryTime = "delivery_time"
)

// PriceMatcher classifies price and delivery-time intents and renders
// answers from the price metadata.
type PriceMatcher struct {
	deliveryKeywords []string // normalized; checked before price
	priceKeywords    []string
}

// NewPriceMatcher creates a matcher with the fixed keyword lists.
func NewPriceMatcher() *PriceMatcher {
	m := &PriceMatcher{
		deliveryKeywords: []string{"leveringstid", "hvor lang tid", "når er det ferdig", "hvor raskt"},
		priceKeywords:    []string{"pris", "koster", "kostnad", "hva tar dere", "betale"},
	}
	for i, kw := range m.deliveryKeywords {
		m.deliveryKeywords[i] = Normalize(kw)
	}
	for i, kw := range m.priceKeywords {
		m.priceKeywords[i] = Normalize(kw)
	}
	return m
}

// Detect classifies the text as a price or delivery-time question, or ""
// when neither. Delivery time is checked first so "leveringstid" never trips
// the generic price branch through shared substrings.
func (m *PriceMatcher) Detect(text string) string {
	normalized := Normalize(text)
	if normalized == "" {
		return ""
	}

	for _, kw := range m.deliveryKeywords {
		if strings.Contains(normalized, kw) {
			return IntentDeliveryTime
		}
	}
	for _, kw := range m.priceKeywords {
		if strings.Contains(normalized, kw) {
			return IntentPrice
		}
	}
	return ""
}

// Respond renders the price list or a delivery-time sentence. The topic
// hint, when present, is attached as context metadata so callers can see
// which medium the price question referred to. Returns nil when no data
// fields are populated.
func (m *PriceMatcher) Respond(intent string, prices knowledge.PriceMeta, delivery knowledge.DeliveryMeta, topicHint string) *Response {
	var text string

	switch intent {
	case IntentPrice:
		text = renderPrices(prices)
	case IntentDeliveryTime:
		text = renderDelivery(delivery)
	}

	if text == "" {
		return nil
	}

	meta := map[string]any{
		"route":  RoutePrice,
		"intent": intent,
		"source": prices.SourceLabel,
	}
	if topicHint != "" {
		meta["ctx"] = map[string]any{"topicHint": topicHint}
	}

	return &Response{
		Kind: KindAnswer,
		Text: text,
		Meta: meta,
	}
}

// renderPrices builds a bullet list of the known per-unit prices, omitting
// absent lines.
func renderPrices(prices knowledge.PriceMeta) string {
	var lines []string
	if prices.PricePerHourVideo != "" {
		lines = append(lines, "- Video: "+prices.PricePerHourVideo+" per time")
	}
	if prices.PricePerMinuteFilm != "" {
		lines = append(lines, "- Smalfilm: "+prices.PricePerMinuteFilm+" per minutt")
	}
	if prices.PricePerPhoto != "" {
		lines = append(lines, "- Fotoskanning: "+prices.PricePerPhoto+" per bilde")
	}
	if prices.USBPrice != "" {
		lines = append(lines, "- Minnepenn: "+prices.USBPrice)
	}

	if len(lines) == 0 {
		return ""
	}
	return "Dette er prisene våre:\n" + strings.Join(lines, "\n")
}
