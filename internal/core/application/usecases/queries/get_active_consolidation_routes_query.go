package queries

import (
	"time"

	"postal/internal/core/domain/model/kernel"
)

// GetActiveConsolidationRoutesQuery lists the consolidation routes the ward
// sweep should run. The sweep job iterates these instead of hard-coding route
// identifiers.
type GetActiveConsolidationRoutesQuery struct{}

// NewGetActiveConsolidationRoutesQuery creates a query for active
// consolidation routes.
func NewGetActiveConsolidationRoutesQuery() GetActiveConsolidationRoutesQuery {
	return GetActiveConsolidationRoutesQuery{}
}

// GetActiveConsolidationRoutesQueryResponse is one active consolidation route.
type GetActiveConsolidationRoutesQueryResponse struct {
	ID           kernel.UUID
	Name         string
	ProvinceCode string
	LastRunAt    *time.Time
}
