package ports

import (
	"context"
	"time"

	"postal/internal/core/domain/model/kernel"
)

// Event names emitted by the batching and routing workflows.
const (
	EventOrderCreated       = "order.created"
	EventOrderBatched       = "order.batched"
	EventOrderStatusChanged = "order.status_changed"
	EventBatchCreated       = "batch.created"
	EventBatchSealed        = "batch.sealed"
	EventBatchDeparted      = "batch.departed"
	EventBatchArrived       = "batch.arrived"
	EventBatchDistributed   = "batch.distributed"
	EventRouteDisrupted     = "route.disrupted"
	EventRouteRestored      = "route.restored"
)

// Event is a fact about an aggregate that downstream consumers may react to.
type Event struct {
	Name        string
	AggregateID kernel.UUID
	OccurredAt  time.Time
	Payload     map[string]any
}

// NewEvent stamps an event with the current time.
func NewEvent(name string, aggregateID kernel.UUID, payload map[string]any) Event {
	return Event{
		Name:        name,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	}
}

// EventPublisher delivers events to whatever transport the composition root
// wires in. Publishing happens after commit; failures must not undo the
// transaction.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
