// Package routerepo provides data transfer objects and mapping functions for
// transfer-route and disruption persistence. Routes are the edges of the
// inter-hub network; disruptions are stored alongside them so that rebuilding
// the network graph is a pair of table scans.
package routerepo

import (
	"time"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/routing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferRouteDTO represents the database structure for persisting transfer routes.
type TransferRouteDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Kind                int        `gorm:"index"`
	FromOfficeID        uuid.UUID  `gorm:"type:uuid;index"`
	ToOfficeID          uuid.UUID  `gorm:"type:uuid;index"`
	ProvinceWarehouseID *uuid.UUID `gorm:"type:uuid"`
	DistanceKm          decimal.Decimal `gorm:"type:decimal(10,2)"`
	TransitHours        decimal.Decimal `gorm:"type:decimal(8,2)"`
	Priority            int
	Active              bool `gorm:"index"`
	Version             int
}

// TableName specifies the database table name for transfer routes.
func (TransferRouteDTO) TableName() string {
	return "transfer_routes"
}

// RouteDisruptionDTO represents the database structure for persisting disruptions.
type RouteDisruptionDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	RouteID            uuid.UUID `gorm:"type:uuid;index"`
	Kind               int
	Reason             string `gorm:"size:512"`
	StartAt            time.Time
	ExpectedEndAt      *time.Time
	ActualEndAt        *time.Time
	Active             bool `gorm:"index"`
	AffectedBatchCount int
	AffectedOrderCount int
}

// TableName specifies the database table name for route disruptions.
func (RouteDisruptionDTO) TableName() string {
	return "route_disruptions"
}

// routeFromDomain converts a transfer route to its database representation.
func routeFromDomain(aggregate *routing.TransferRoute) TransferRouteDTO {
	var warehouseID *uuid.UUID
	if id := aggregate.ProvinceWarehouseID(); id != nil {
		raw := id.Bytes()
		warehouseID = &raw
	}

	return TransferRouteDTO{
		ID:                  aggregate.ID().Bytes(),
		Kind:                int(aggregate.Kind()),
		FromOfficeID:        aggregate.FromOfficeID().Bytes(),
		ToOfficeID:          aggregate.ToOfficeID().Bytes(),
		ProvinceWarehouseID: warehouseID,
		DistanceKm:          aggregate.DistanceKm(),
		TransitHours:        aggregate.TransitHours(),
		Priority:            aggregate.Priority(),
		Active:              aggregate.IsActive(),
		Version:             aggregate.Version(),
	}
}

// routeToDomain converts a database DTO back into a transfer route.
func routeToDomain(dto TransferRouteDTO) (*routing.TransferRoute, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	fromOfficeID, err := kernel.UUIDFromBytes(dto.FromOfficeID[:])
	if err != nil {
		return nil, err
	}

	toOfficeID, err := kernel.UUIDFromBytes(dto.ToOfficeID[:])
	if err != nil {
		return nil, err
	}

	var warehouseID *kernel.UUID
	if dto.ProvinceWarehouseID != nil {
		wID, wErr := kernel.UUIDFromBytes((*dto.ProvinceWarehouseID)[:])
		if wErr != nil {
			return nil, wErr
		}
		warehouseID = &wID
	}

	return routing.RestoreTransferRoute(
		id,
		routing.RouteKind(dto.Kind),
		fromOfficeID,
		toOfficeID,
		warehouseID,
		dto.DistanceKm,
		dto.TransitHours,
		dto.Priority,
		dto.Active,
		dto.Version,
	)
}

// disruptionFromDomain converts a disruption to its database representation.
func disruptionFromDomain(aggregate *routing.RouteDisruption) RouteDisruptionDTO {
	return RouteDisruptionDTO{
		ID:                 aggregate.ID().Bytes(),
		RouteID:            aggregate.RouteID().Bytes(),
		Kind:               int(aggregate.Kind()),
		Reason:             aggregate.Reason(),
		StartAt:            aggregate.StartAt(),
		ExpectedEndAt:      aggregate.ExpectedEndAt(),
		ActualEndAt:        aggregate.ActualEndAt(),
		Active:             aggregate.IsActive(),
		AffectedBatchCount: aggregate.AffectedBatchCount(),
		AffectedOrderCount: aggregate.AffectedOrderCount(),
	}
}

// disruptionToDomain converts a database DTO back into a disruption.
func disruptionToDomain(dto RouteDisruptionDTO) (*routing.RouteDisruption, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	routeID, err := kernel.UUIDFromBytes(dto.RouteID[:])
	if err != nil {
		return nil, err
	}

	return routing.RestoreRouteDisruption(
		id,
		routeID,
		routing.DisruptionKind(dto.Kind),
		dto.Reason,
		dto.StartAt,
		dto.ExpectedEndAt,
		dto.ActualEndAt,
		dto.Active,
		dto.AffectedBatchCount,
		dto.AffectedOrderCount,
	)
}
