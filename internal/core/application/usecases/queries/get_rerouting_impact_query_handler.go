package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"postal/internal/core/domain/model/batch"
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/routing"
	"postal/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetReroutingImpactQueryHandler previews the effect of removing one transfer
// route. It rebuilds the route network as it stands with the previewed route
// in service, resolves the best path of every sealed and in-transit batch,
// and reports detour options for the batches that travel over that route.
// The previewed route joins the network even when it is already disabled, so
// the preview keeps working after the disruption it describes has been opened.
type GetReroutingImpactQueryHandler struct {
	db *gorm.DB
}

// NewGetReroutingImpactQueryHandler creates a handler for rerouting previews.
func NewGetReroutingImpactQueryHandler(db *gorm.DB) GetReroutingImpactQueryHandler {
	return GetReroutingImpactQueryHandler{db: db}
}

// Handle resolves the preview. Batches whose current best path avoids the
// previewed route are not reported; batches with no detour once the route is
// excluded are counted as stranded.
func (h GetReroutingImpactQueryHandler) Handle(
	ctx context.Context,
	query GetReroutingImpactQuery,
) (GetReroutingImpactQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetReroutingImpactQueryResponse{}, err
	}

	routes, err := h.loadRoutableRoutes(ctx, query.RouteID())
	if err != nil {
		return GetReroutingImpactQueryResponse{}, err
	}

	disruptions, err := h.loadActiveDisruptions(ctx, query.RouteID())
	if err != nil {
		return GetReroutingImpactQueryResponse{}, err
	}

	network, err := services.NewRouteNetwork(routes, disruptions)
	if err != nil {
		return GetReroutingImpactQueryResponse{}, err
	}

	committed, err := h.loadCommittedBatches(ctx)
	if err != nil {
		return GetReroutingImpactQueryResponse{}, err
	}

	response := GetReroutingImpactQueryResponse{
		RouteID: query.RouteID(),
		Batches: make([]ReroutingImpactBatch, 0),
	}

	for _, b := range committed {
		current, pathErr := network.ResolvePath(b.originOfficeID, b.destinationOfficeID)
		if pathErr != nil {
			if errors.Is(pathErr, services.ErrNoPathAvailable) {
				continue
			}
			return GetReroutingImpactQueryResponse{}, pathErr
		}
		if !current.ContainsRoute(query.RouteID()) {
			continue
		}

		impact := ReroutingImpactBatch{
			BatchID:    b.id,
			BatchCode:  b.code,
			OrderCount: b.orderCount,
		}

		detour, detourErr := network.ResolvePathExcluding(
			b.originOfficeID, b.destinationOfficeID, query.RouteID(),
		)
		switch {
		case detourErr == nil:
			impact.DetourAvailable = true
			impact.DetourDistanceKm = detour.TotalDistanceKm
			impact.DetourTransitHours = detour.TotalTransitHours
			impact.DetourLegCount = len(detour.Edges)
		case errors.Is(detourErr, services.ErrNoPathAvailable):
			response.StrandedBatchCount++
		default:
			return GetReroutingImpactQueryResponse{}, detourErr
		}

		response.AffectedBatchCount++
		response.AffectedOrderCount += b.orderCount
		response.Batches = append(response.Batches, impact)
	}

	return response, nil
}

// loadRoutableRoutes loads every active route plus the previewed one. The
// previewed route is restored as in service even when it has been disabled,
// so current paths resolve over it and the preview stays meaningful.
func (h GetReroutingImpactQueryHandler) loadRoutableRoutes(
	ctx context.Context,
	previewRouteID kernel.UUID,
) ([]*routing.TransferRoute, error) {
	routes := make([]*routing.TransferRoute, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			kind,
			from_office_id,
			to_office_id,
			province_warehouse_id,
			distance_km,
			transit_hours,
			priority,
			active,
			version
		FROM transfer_routes
		WHERE active = ? OR id = ?
	`, true, previewRouteID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id           uuid.UUID
			kind         int
			fromOfficeID uuid.UUID
			toOfficeID   uuid.UUID
			warehouseID  *uuid.UUID
			distanceKm   decimal.Decimal
			transitHours decimal.Decimal
			priority     int
			active       bool
			version      int
		)

		if err = rows.Scan(
			&id,
			&kind,
			&fromOfficeID,
			&toOfficeID,
			&warehouseID,
			&distanceKm,
			&transitHours,
			&priority,
			&active,
			&version,
		); err != nil {
			return nil, err
		}

		if id == previewRouteID.Bytes() {
			active = true
		}

		route, restoreErr := restoreRoute(
			id, kind, fromOfficeID, toOfficeID, warehouseID,
			distanceKm, transitHours, priority, active, version,
		)
		if restoreErr != nil {
			return nil, restoreErr
		}
		routes = append(routes, route)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return routes, nil
}

func restoreRoute(
	id uuid.UUID,
	kind int,
	fromOfficeID, toOfficeID uuid.UUID,
	warehouseID *uuid.UUID,
	distanceKm, transitHours decimal.Decimal,
	priority int,
	active bool,
	version int,
) (*routing.TransferRoute, error) {
	routeID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	fromID, err := kernel.UUIDFromBytes(fromOfficeID[:])
	if err != nil {
		return nil, err
	}
	toID, err := kernel.UUIDFromBytes(toOfficeID[:])
	if err != nil {
		return nil, err
	}

	var provinceWarehouseID *kernel.UUID
	if warehouseID != nil {
		wID, wErr := kernel.UUIDFromBytes((*warehouseID)[:])
		if wErr != nil {
			return nil, wErr
		}
		provinceWarehouseID = &wID
	}

	return routing.RestoreTransferRoute(
		routeID,
		routing.RouteKind(kind),
		fromID,
		toID,
		provinceWarehouseID,
		distanceKm,
		transitHours,
		priority,
		active,
		version,
	)
}

// loadActiveDisruptions loads every active disruption except those on the
// previewed route, whose edge the preview treats as in service.
func (h GetReroutingImpactQueryHandler) loadActiveDisruptions(
	ctx context.Context,
	previewRouteID kernel.UUID,
) ([]*routing.RouteDisruption, error) {
	disruptions := make([]*routing.RouteDisruption, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			route_id,
			kind,
			reason,
			start_at,
			expected_end_at,
			actual_end_at,
			active,
			affected_batch_count,
			affected_order_count
		FROM route_disruptions
		WHERE active = ? AND route_id <> ?
	`, true, previewRouteID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id            uuid.UUID
			routeID       uuid.UUID
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
			&routeID,
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
		blockedRouteID, routeErr := kernel.UUIDFromBytes(routeID[:])
		if routeErr != nil {
			return nil, routeErr
		}

		disruption, restoreErr := routing.RestoreRouteDisruption(
			disruptionID,
			blockedRouteID,
			routing.DisruptionKind(kind),
			reason,
			startAt,
			nullableTime(expectedEndAt),
			nullableTime(actualEndAt),
			active,
			batchCount,
			orderCount,
		)
		if restoreErr != nil {
			return nil, restoreErr
		}
		disruptions = append(disruptions, disruption)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return disruptions, nil
}

// committedBatch is the projection of a batch needed for path resolution.
type committedBatch struct {
	id                  kernel.UUID
	code                string
	originOfficeID      kernel.UUID
	destinationOfficeID kernel.UUID
	orderCount          int
}

func (h GetReroutingImpactQueryHandler) loadCommittedBatches(
	ctx context.Context,
) ([]committedBatch, error) {
	batches := make([]committedBatch, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			b.id,
			b.code,
			b.origin_office_id,
			b.destination_office_id,
			(SELECT COUNT(*) FROM orders o WHERE o.batch_id = b.id) AS order_count
		FROM batches b
		WHERE b.status IN (?, ?)
	`, batch.Sealed, batch.InTransit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          uuid.UUID
			code        string
			origin      uuid.UUID
			destination uuid.UUID
			orderCount  int
		)

		if err = rows.Scan(&id, &code, &origin, &destination, &orderCount); err != nil {
			return nil, err
		}

		batchID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		originID, originErr := kernel.UUIDFromBytes(origin[:])
		if originErr != nil {
			return nil, originErr
		}
		destinationID, destErr := kernel.UUIDFromBytes(destination[:])
		if destErr != nil {
			return nil, destErr
		}

		batches = append(batches, committedBatch{
			id:                  batchID,
			code:                code,
			originOfficeID:      originID,
			destinationOfficeID: destinationID,
			orderCount:          orderCount,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return batches, nil
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
