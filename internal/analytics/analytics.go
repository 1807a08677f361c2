// Package analytics records route analytics events: one event per handled
// message describing which route and intent answered it.
package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RouteEvent describes one handled message.
type RouteEvent struct {
	ID         uuid.UUID `json:"id"`
	Route      string    `json:"route"`
	Intent     string    `json:"intent,omitempty"`
	TopicHint  string    `json:"topic_hint,omitempty"`
	Question   string    `json:"question"` // normalized form
	FaqID      string    `json:"faq_id,omitempty"`
	LatencyMs  int64     `json:"latency_ms"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Recorder persists route events. Recording failures must never fail the
// request that produced the event.
type Recorder interface {
	Record(ctx context.Context, event RouteEvent) error
	Close() error
}

// NopRecorder discards all events.
type NopRecorder struct{}

// Record discards the event.
func (NopRecorder) Record(ctx context.Context, event RouteEvent) error { return nil }

// Close is a no-op.
func (NopRecorder) Close() error { return nil }
