package queries

import (
	"context"
	"database/sql"
	"time"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/routing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveDisruptionsQueryHandler lists disruptions currently in effect,
// joined with the endpoints of the routes they block.
type GetActiveDisruptionsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDisruptionsQueryHandler creates a handler for active disruption
// queries.
func NewGetActiveDisruptionsQueryHandler(db *gorm.DB) GetActiveDisruptionsQueryHandler {
	return GetActiveDisruptionsQueryHandler{db: db}
}

// Handle returns all active disruptions, most recently declared first.
func (h GetActiveDisruptionsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDisruptionsQuery,
) ([]GetActiveDisruptionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	disruptions := make([]GetActiveDisruptionsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.route_id,
			r.from_office_id,
			r.to_office_id,
			d.kind,
			d.reason,
			d.start_at,
			d.expected_end_at,
			d.affected_batch_count,
			d.affected_order_count
		FROM route_disruptions d
		JOIN transfer_routes r ON r.id = d.route_id
		WHERE d.active = ?
		ORDER BY d.start_at DESC
	`, true).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id            uuid.UUID
			routeID       uuid.UUID
			fromOfficeID  uuid.UUID
			toOfficeID    uuid.UUID
			kind          int
			reason        string
			startAt       time.Time
			expectedEndAt sql.NullTime
			batchCount    int
			orderCount    int
		)

		if err = rows.Scan(
			&id,
			&routeID,
			&fromOfficeID,
			&toOfficeID,
			&kind,
			&reason,
			&startAt,
			&expectedEndAt,
			&batchCount,
			&orderCount,
		); err != nil {
			return nil, err
		}

		resp, convErr := toDisruptionResponse(
			id, routeID, fromOfficeID, toOfficeID,
			kind, reason, startAt, expectedEndAt, batchCount, orderCount,
		)
		if convErr != nil {
			return nil, convErr
		}
		disruptions = append(disruptions, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return disruptions, nil
}

func toDisruptionResponse(
	id, routeID, fromOfficeID, toOfficeID uuid.UUID,
	kind int,
	reason string,
	startAt time.Time,
	expectedEndAt sql.NullTime,
	batchCount, orderCount int,
) (GetActiveDisruptionsQueryResponse, error) {
	disruptionID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetActiveDisruptionsQueryResponse{}, err
	}
	blockedRouteID, err := kernel.UUIDFromBytes(routeID[:])
	if err != nil {
		return GetActiveDisruptionsQueryResponse{}, err
	}
	fromID, err := kernel.UUIDFromBytes(fromOfficeID[:])
	if err != nil {
		return GetActiveDisruptionsQueryResponse{}, err
	}
	toID, err := kernel.UUIDFromBytes(toOfficeID[:])
	if err != nil {
		return GetActiveDisruptionsQueryResponse{}, err
	}

	var expected *time.Time
	if expectedEndAt.Valid {
		t := expectedEndAt.Time
		expected = &t
	}

	return GetActiveDisruptionsQueryResponse{
		ID:                 disruptionID,
		RouteID:            blockedRouteID,
		FromOfficeID:       fromID,
		ToOfficeID:         toID,
		Kind:               routing.DisruptionKind(kind).String(),
		Reason:             reason,
		StartAt:            startAt,
		ExpectedEndAt:      expected,
		AffectedBatchCount: batchCount,
		AffectedOrderCount: orderCount,
	}, nil
}
