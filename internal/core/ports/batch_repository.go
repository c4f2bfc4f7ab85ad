package ports

import (
	"context"

	"postal/internal/core/domain/model/batch"
	"postal/internal/core/domain/model/kernel"
)

// BatchRepository defines the persistence contract for batch aggregates.
type BatchRepository interface {
	// Add persists a new batch aggregate to storage.
	Add(ctx context.Context, aggregate *batch.Batch) error

	// Update persists changes to an existing batch aggregate.
	// Fails with a version error when the stored row has moved on.
	Update(ctx context.Context, aggregate *batch.Batch) error

	// Get retrieves a batch aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error)

	// GetByCode retrieves a batch by its human-readable code.
	GetByCode(ctx context.Context, code string) (*batch.Batch, error)

	// GetOpenByOfficePair retrieves batches still accepting orders between
	// the given origin and destination offices.
	GetOpenByOfficePair(ctx context.Context, originOfficeID, destinationOfficeID kernel.UUID) ([]*batch.Batch, error)

	// GetAllOpen retrieves every batch still accepting orders, across all
	// office pairs. Used by the periodic seal sweep.
	GetAllOpen(ctx context.Context) ([]*batch.Batch, error)

	// GetSealedOrInTransit retrieves every batch already committed to a
	// planned path, whether still awaiting departure or on the road. Used
	// to assess the impact of a route disruption.
	GetSealedOrInTransit(ctx context.Context) ([]*batch.Batch, error)
}
