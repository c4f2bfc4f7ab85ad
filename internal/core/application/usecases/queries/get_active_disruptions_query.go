package queries

import (
	"errors"
	"time"

	"postal/internal/core/domain/model/kernel"
)

var ErrGetActiveDisruptionsQueryIsNotConstructed = errors.New(
	"GetActiveDisruptionsQuery must be created via NewGetActiveDisruptionsQuery constructor",
)

// GetActiveDisruptionsQuery retrieves every disruption currently in effect on
// the transfer network, most recent first, for the operations dashboard.
type GetActiveDisruptionsQuery struct {
	guard kernel.ConstructorGuard
}

// NewGetActiveDisruptionsQuery creates a query for currently active
// disruptions. The query takes no parameters.
func NewGetActiveDisruptionsQuery() GetActiveDisruptionsQuery {
	return GetActiveDisruptionsQuery{guard: kernel.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveDisruptionsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDisruptionsQueryIsNotConstructed)
}

// GetActiveDisruptionsQueryResponse is one active disruption together with
// the endpoints of the route it blocks and the impact recorded when it was
// declared.
type GetActiveDisruptionsQueryResponse struct {
	ID                 kernel.UUID
	RouteID            kernel.UUID
	FromOfficeID       kernel.UUID
	ToOfficeID         kernel.UUID
	Kind               string
	Reason             string
	StartAt            time.Time
	ExpectedEndAt      *time.Time
	AffectedBatchCount int
	AffectedOrderCount int
}
