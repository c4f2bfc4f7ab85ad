package queries

import (
	"context"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetBatchableDestinationsQueryHandler aggregates the unbatched backlog of an
// origin office by destination office.
type GetBatchableDestinationsQueryHandler struct {
	db *gorm.DB
}

// NewGetBatchableDestinationsQueryHandler creates a handler for destination
// grouping queries.
func NewGetBatchableDestinationsQueryHandler(db *gorm.DB) GetBatchableDestinationsQueryHandler {
	return GetBatchableDestinationsQueryHandler{db: db}
}

// Handle returns one row per destination with at least the requested number of
// waiting orders, ordered by waiting-order count descending.
func (h GetBatchableDestinationsQueryHandler) Handle(
	ctx context.Context,
	query GetBatchableDestinationsQuery,
) ([]GetBatchableDestinationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	destinations := make([]GetBatchableDestinationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			destination_office_id,
			COUNT(*) AS order_count,
			SUM(weight_kg) AS total_weight_kg
		FROM orders
		WHERE origin_office_id = ?
		  AND batch_id IS NULL
		  AND status = ?
		GROUP BY destination_office_id
		HAVING COUNT(*) >= ?
		ORDER BY order_count DESC, destination_office_id
	`, query.OriginOfficeID().Bytes(), order.AtOriginOffice, query.MinOrderCount()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			destination   uuid.UUID
			orderCount    int
			totalWeightKg decimal.Decimal
		)

		if err = rows.Scan(&destination, &orderCount, &totalWeightKg); err != nil {
			return nil, err
		}

		destinationID, idErr := kernel.UUIDFromBytes(destination[:])
		if idErr != nil {
			return nil, idErr
		}

		destinations = append(destinations, GetBatchableDestinationsQueryResponse{
			DestinationOfficeID: destinationID,
			OrderCount:          orderCount,
			TotalWeightKg:       totalWeightKg,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return destinations, nil
}
