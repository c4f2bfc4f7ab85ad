package queries

import (
	"postal/internal/core/domain/model/kernel"
)

// GetPendingOfficePairsQuery lists every origin/destination office pair that
// currently has unbatched orders waiting. The auto-batch sweep iterates these
// pairs instead of scanning every office combination.
type GetPendingOfficePairsQuery struct{}

// NewGetPendingOfficePairsQuery creates a query for the waiting office pairs.
func NewGetPendingOfficePairsQuery() GetPendingOfficePairsQuery {
	return GetPendingOfficePairsQuery{}
}

// GetPendingOfficePairsQueryResponse is one office pair with waiting orders.
type GetPendingOfficePairsQueryResponse struct {
	OriginOfficeID      kernel.UUID
	DestinationOfficeID kernel.UUID
	OrderCount          int
}
