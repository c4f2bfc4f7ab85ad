package queries

import (
	"errors"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrGetBatchableDestinationsQueryIsNotConstructed = errors.New(
	"GetBatchableDestinationsQuery must be created via NewGetBatchableDestinationsQuery constructor",
)

// GetBatchableDestinationsQuery groups the unbatched backlog of an origin
// office by destination, surfacing the destinations with enough waiting
// orders to justify opening a batch.
type GetBatchableDestinationsQuery struct {
	originOfficeID kernel.UUID
	minOrderCount  int

	guard kernel.ConstructorGuard
}

// NewGetBatchableDestinationsQuery creates a query for destination groupings
// at the given origin office. minOrderCount filters out destinations with
// fewer waiting orders; pass 1 to see every destination.
func NewGetBatchableDestinationsQuery(
	originOfficeID kernel.UUID,
	minOrderCount int,
) (GetBatchableDestinationsQuery, error) {
	if err := originOfficeID.Validate(); err != nil {
		return GetBatchableDestinationsQuery{}, err
	}
	if minOrderCount <= 0 {
		return GetBatchableDestinationsQuery{}, errs.NewValueIsInvalidError("minOrderCount")
	}

	return GetBatchableDestinationsQuery{
		originOfficeID: originOfficeID,
		minOrderCount:  minOrderCount,
		guard:          kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBatchableDestinationsQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchableDestinationsQueryIsNotConstructed)
}

// OriginOfficeID returns the office whose backlog is grouped.
func (q GetBatchableDestinationsQuery) OriginOfficeID() kernel.UUID {
	return q.originOfficeID
}

// MinOrderCount returns the minimum waiting-order count per destination.
func (q GetBatchableDestinationsQuery) MinOrderCount() int {
	return q.minOrderCount
}

// GetBatchableDestinationsQueryResponse is one destination grouping, busiest
// destination first.
type GetBatchableDestinationsQueryResponse struct {
	DestinationOfficeID kernel.UUID
	OrderCount          int
	TotalWeightKg       decimal.Decimal
}
