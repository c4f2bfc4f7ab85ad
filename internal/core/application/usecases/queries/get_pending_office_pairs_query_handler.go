package queries

import (
	"context"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingOfficePairsQueryHandler finds the office pairs with waiting
// unbatched orders.
type GetPendingOfficePairsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingOfficePairsQueryHandler creates a handler for pending pair
// queries.
func NewGetPendingOfficePairsQueryHandler(db *gorm.DB) GetPendingOfficePairsQueryHandler {
	return GetPendingOfficePairsQueryHandler{db: db}
}

// Handle returns every origin/destination pair with at least one unbatched
// waiting order, busiest pair first.
func (h GetPendingOfficePairsQueryHandler) Handle(
	ctx context.Context,
	_ GetPendingOfficePairsQuery,
) ([]GetPendingOfficePairsQueryResponse, error) {
	pairs := make([]GetPendingOfficePairsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			origin_office_id,
			destination_office_id,
			COUNT(*) AS order_count
		FROM orders
		WHERE batch_id IS NULL
		  AND status = ?
		GROUP BY origin_office_id, destination_office_id
		ORDER BY order_count DESC, origin_office_id, destination_office_id
	`, order.AtOriginOffice).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			origin      uuid.UUID
			destination uuid.UUID
			orderCount  int
		)

		if err = rows.Scan(&origin, &destination, &orderCount); err != nil {
			return nil, err
		}

		originID, idErr := kernel.UUIDFromBytes(origin[:])
		if idErr != nil {
			return nil, idErr
		}
		destinationID, idErr := kernel.UUIDFromBytes(destination[:])
		if idErr != nil {
			return nil, idErr
		}

		pairs = append(pairs, GetPendingOfficePairsQueryResponse{
			OriginOfficeID:      originID,
			DestinationOfficeID: destinationID,
			OrderCount:          orderCount,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pairs, nil
}
