package ports

import (
	"context"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/routing"
)

// TransferRouteRepository defines the persistence contract for the
// inter-office transfer network.
type TransferRouteRepository interface {
	// Add persists a new transfer route to storage.
	Add(ctx context.Context, aggregate *routing.TransferRoute) error

	// Update persists changes to an existing transfer route.
	// Fails with a version error when the stored row has moved on.
	Update(ctx context.Context, aggregate *routing.TransferRoute) error

	// Get retrieves a transfer route by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*routing.TransferRoute, error)

	// GetAll retrieves every transfer route, active or not.
	GetAll(ctx context.Context) ([]*routing.TransferRoute, error)

	// GetByOffice retrieves every route with the given office as an endpoint.
	GetByOffice(ctx context.Context, officeID kernel.UUID) ([]*routing.TransferRoute, error)
}

// DisruptionRepository defines the persistence contract for route
// disruption records, active overlays and history alike.
type DisruptionRepository interface {
	// Add persists a new disruption record.
	Add(ctx context.Context, aggregate *routing.RouteDisruption) error

	// Update persists changes to a disruption, typically its resolution.
	Update(ctx context.Context, aggregate *routing.RouteDisruption) error

	// Get retrieves a disruption by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*routing.RouteDisruption, error)

	// GetActive retrieves every unresolved disruption.
	GetActive(ctx context.Context) ([]*routing.RouteDisruption, error)

	// GetByRoute retrieves the disruption history of one route, newest first.
	GetByRoute(ctx context.Context, routeID kernel.UUID) ([]*routing.RouteDisruption, error)
}
