package queries

import (
	"context"
	"time"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetUnbatchedOrdersQueryHandler reads the unbatched backlog of an origin
// office straight from the database, bypassing the aggregate repositories.
type GetUnbatchedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUnbatchedOrdersQueryHandler creates a handler for backlog queries.
func NewGetUnbatchedOrdersQueryHandler(db *gorm.DB) GetUnbatchedOrdersQueryHandler {
	return GetUnbatchedOrdersQueryHandler{db: db}
}

// Handle returns orders at the origin office that are waiting for sorting and
// carry no batch assignment, oldest first. FIFO ordering here mirrors the
// order in which the planner consumes the backlog.
func (h GetUnbatchedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnbatchedOrdersQuery,
) ([]GetUnbatchedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	backlog := make([]GetUnbatchedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_number,
			destination_office_id,
			weight_kg,
			created_at
		FROM orders
		WHERE origin_office_id = ?
		  AND batch_id IS NULL
		  AND status = ?
		ORDER BY created_at
	`, query.OriginOfficeID().Bytes(), order.AtOriginOffice).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          uuid.UUID
			tracking    string
			destination uuid.UUID
			weightKg    decimal.Decimal
			createdAt   time.Time
		)

		if err = rows.Scan(&id, &tracking, &destination, &weightKg, &createdAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		destinationID, destErr := kernel.UUIDFromBytes(destination[:])
		if destErr != nil {
			return nil, destErr
		}

		backlog = append(backlog, GetUnbatchedOrdersQueryResponse{
			ID:                  orderID,
			TrackingNumber:      tracking,
			DestinationOfficeID: destinationID,
			WeightKg:            weightKg,
			CreatedAt:           createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return backlog, nil
}
