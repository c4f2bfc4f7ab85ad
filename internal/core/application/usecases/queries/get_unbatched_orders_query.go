package queries

import (
	"errors"
	"time"

	"postal/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var ErrGetUnbatchedOrdersQueryIsNotConstructed = errors.New(
	"GetUnbatchedOrdersQuery must be created via NewGetUnbatchedOrdersQuery constructor",
)

// GetUnbatchedOrdersQuery retrieves the backlog of orders waiting at an origin
// office that have not yet been placed into a batch. Operators use it to see
// what the next auto-batch run would pick up.
//
// Example:
//
//	query, err := NewGetUnbatchedOrdersQuery(officeID)
//	if err != nil {
//	    return err
//	}
//	backlog, err := handler.Handle(ctx, query)
type GetUnbatchedOrdersQuery struct {
	originOfficeID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetUnbatchedOrdersQuery creates a query for the unbatched backlog at the
// given origin office.
func NewGetUnbatchedOrdersQuery(originOfficeID kernel.UUID) (GetUnbatchedOrdersQuery, error) {
	if err := originOfficeID.Validate(); err != nil {
		return GetUnbatchedOrdersQuery{}, err
	}

	return GetUnbatchedOrdersQuery{
		originOfficeID: originOfficeID,
		guard:          kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUnbatchedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnbatchedOrdersQueryIsNotConstructed)
}

// OriginOfficeID returns the office whose backlog is requested.
func (q GetUnbatchedOrdersQuery) OriginOfficeID() kernel.UUID {
	return q.originOfficeID
}

// GetUnbatchedOrdersQueryResponse is one waiting order in the backlog,
// oldest first.
type GetUnbatchedOrdersQueryResponse struct {
	ID                  kernel.UUID
	TrackingNumber      string
	DestinationOfficeID kernel.UUID
	WeightKg            decimal.Decimal
	CreatedAt           time.Time
}
