// Package eventlog provides an EventPublisher that writes domain events to
// the structured log. Events are published after the owning transaction
// commits; a message broker can replace this adapter without touching the
// command handlers.
package eventlog

import (
	"context"
	"log/slog"

	"postal/internal/core/ports"
)

// SlogEventPublisher publishes domain events as structured log records.
type SlogEventPublisher struct {
	logger *slog.Logger
}

// NewSlogEventPublisher creates a publisher writing to the given logger.
// A nil logger falls back to slog.Default().
func NewSlogEventPublisher(logger *slog.Logger) *SlogEventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogEventPublisher{logger: logger}
}

// Publish writes one event. It never fails; a logging sink has no delivery
// errors worth aborting a committed operation for.
func (p *SlogEventPublisher) Publish(ctx context.Context, event ports.Event) error {
	attrs := []any{
		slog.String("event", event.Name),
		slog.String("aggregate_id", event.AggregateID.String()),
		slog.Time("occurred_at", event.OccurredAt),
	}
	for key, value := range event.Payload {
		attrs = append(attrs, slog.Any(key, value))
	}

	p.logger.InfoContext(ctx, "domain event", attrs...)
	return nil
}
