package queries

import (
	"errors"

	"postal/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var ErrGetReroutingImpactQueryIsNotConstructed = errors.New(
	"GetReroutingImpactQuery must be created via NewGetReroutingImpactQuery constructor",
)

// GetReroutingImpactQuery previews the blast radius of taking a transfer
// route out of service: which in-transit batches currently travel over it and
// whether the remaining network still offers each of them a detour.
//
// The preview is read-only. Declaring the actual disruption is a separate
// command; operators run this first to decide whether to reroute or hold.
type GetReroutingImpactQuery struct {
	routeID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetReroutingImpactQuery creates a rerouting preview for the given route.
func NewGetReroutingImpactQuery(routeID kernel.UUID) (GetReroutingImpactQuery, error) {
	if err := routeID.Validate(); err != nil {
		return GetReroutingImpactQuery{}, err
	}

	return GetReroutingImpactQuery{
		routeID: routeID,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetReroutingImpactQuery) Validate() error {
	return q.guard.Validate(ErrGetReroutingImpactQueryIsNotConstructed)
}

// RouteID returns the route whose removal is being previewed.
func (q GetReroutingImpactQuery) RouteID() kernel.UUID {
	return q.routeID
}

// ReroutingImpactBatch describes one in-transit batch whose current best path
// traverses the previewed route.
type ReroutingImpactBatch struct {
	BatchID    kernel.UUID
	BatchCode  string
	OrderCount int

	// DetourAvailable reports whether a path exists once the previewed
	// route is excluded; the detour metrics below are zero when it is false.
	DetourAvailable   bool
	DetourDistanceKm  decimal.Decimal
	DetourTransitHours decimal.Decimal
	DetourLegCount    int
}

// GetReroutingImpactQueryResponse summarizes the preview.
type GetReroutingImpactQueryResponse struct {
	RouteID            kernel.UUID
	AffectedBatchCount int
	AffectedOrderCount int
	StrandedBatchCount int
	Batches            []ReroutingImpactBatch
}
