package ports

import (
	"context"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying orders by their
// batching state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Fails with a version error when the stored row has moved on.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByTrackingNumber retrieves an order by its public tracking number.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*order.Order, error)

	// GetUnbatchedAtOffice retrieves orders held at the given origin office
	// that are not yet members of any batch, oldest first.
	GetUnbatchedAtOffice(ctx context.Context, originOfficeID kernel.UUID) ([]*order.Order, error)

	// GetByBatch retrieves every order belonging to the given batch.
	GetByBatch(ctx context.Context, batchID kernel.UUID) ([]*order.Order, error)
}
