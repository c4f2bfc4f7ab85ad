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

// GetRouteDisruptionHistoryQueryHandler lists the full disruption record of
// one route so operators can see how often an edge fails and for how long.
type GetRouteDisruptionHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetRouteDisruptionHistoryQueryHandler creates a handler for disruption
// history queries.
func NewGetRouteDisruptionHistoryQueryHandler(db *gorm.DB) GetRouteDisruptionHistoryQueryHandler {
	return GetRouteDisruptionHistoryQueryHandler{db: db}
}

// Handle returns the route's disruptions, newest first.
func (h GetRouteDisruptionHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetRouteDisruptionHistoryQuery,
) ([]GetRouteDisruptionHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	history := make([]GetRouteDisruptionHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			kind,
			reason,
			start_at,
			expected_end_at,
			actual_end_at,
			active,
			affected_batch_count,
			affected_order_count
		FROM route_disruptions
		WHERE route_id = ?
		ORDER BY start_at DESC
	`, query.RouteID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id            uuid.UUID
			kind          int
			reason        string
			startAt       time.Time
			expectedEndAt sql.NullTime
			actualEndAt   sql.NullTime
			active        bool
			batchCount    int
			orderCount    int
		)

		if err = rows.Scan(
			&id,
			&kind,
			&reason,
			&startAt,
			&expectedEndAt,
			&actualEndAt,
			&active,
			&batchCount,
			&orderCount,
		); err != nil {
			return nil, err
		}

		disruptionID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		var expected *time.Time
		if expectedEndAt.Valid {
			t := expectedEndAt.Time
			expected = &t
		}
		var actual *time.Time
		if actualEndAt.Valid {
			t := actualEndAt.Time
			actual = &t
		}

		history = append(history, GetRouteDisruptionHistoryQueryResponse{
			ID:                 disruptionID,
			Kind:               routing.DisruptionKind(kind).String(),
			Reason:             reason,
			StartAt:            startAt,
			ExpectedEndAt:      expected,
			ActualEndAt:        actual,
			Active:             active,
			AffectedBatchCount: batchCount,
			AffectedOrderCount: orderCount,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
