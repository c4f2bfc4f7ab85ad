package queries

import (
	"errors"
	"time"

	"postal/internal/core/domain/model/kernel"
)

var ErrGetRouteDisruptionHistoryQueryIsNotConstructed = errors.New(
	"GetRouteDisruptionHistoryQuery must be created via NewGetRouteDisruptionHistoryQuery constructor",
)

// GetRouteDisruptionHistoryQuery retrieves every disruption ever recorded on
// one transfer route, resolved ones included, newest first.
type GetRouteDisruptionHistoryQuery struct {
	routeID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetRouteDisruptionHistoryQuery creates a query for one route's
// disruption history.
func NewGetRouteDisruptionHistoryQuery(routeID kernel.UUID) (GetRouteDisruptionHistoryQuery, error) {
	if err := routeID.Validate(); err != nil {
		return GetRouteDisruptionHistoryQuery{}, err
	}

	return GetRouteDisruptionHistoryQuery{
		routeID: routeID,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRouteDisruptionHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteDisruptionHistoryQueryIsNotConstructed)
}

// RouteID returns the route whose history is requested.
func (q GetRouteDisruptionHistoryQuery) RouteID() kernel.UUID {
	return q.routeID
}

// GetRouteDisruptionHistoryQueryResponse is one past or present disruption of
// the queried route.
type GetRouteDisruptionHistoryQueryResponse struct {
	ID                 kernel.UUID
	Kind               string
	Reason             string
	StartAt            time.Time
	ExpectedEndAt      *time.Time
	ActualEndAt        *time.Time
	Active             bool
	AffectedBatchCount int
	AffectedOrderCount int
}
