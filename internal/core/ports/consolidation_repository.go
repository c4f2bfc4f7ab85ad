package ports

import (
	"context"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/routing"
)

// ConsolidationRouteRepository defines the persistence contract for
// ward-to-warehouse consolidation routes.
type ConsolidationRouteRepository interface {
	// Add persists a new consolidation route.
	Add(ctx context.Context, aggregate *routing.ConsolidationRoute) error

	// Update persists changes to an existing consolidation route.
	// Fails with a version error when the stored row has moved on.
	Update(ctx context.Context, aggregate *routing.ConsolidationRoute) error

	// Get retrieves a consolidation route by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*routing.ConsolidationRoute, error)

	// GetByProvince retrieves every consolidation route registered for the
	// given province, active or not.
	GetByProvince(ctx context.Context, provinceCode string) ([]*routing.ConsolidationRoute, error)

	// GetAllActive retrieves every active consolidation route.
	GetAllActive(ctx context.Context) ([]*routing.ConsolidationRoute, error)
}
