// Package consolidationrepo provides data transfer objects and mapping
// functions for consolidation-route persistence. The ordered stop sequence is
// serialized as JSON; a sequence that fails to decode degrades to an empty
// stop list at read time so that one corrupt row cannot take down ward
// resolution for the whole province.
package consolidationrepo

import (
	"encoding/json"
	"log/slog"
	"time"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/routing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsolidationRouteDTO represents the database structure for persisting
// consolidation routes.
type ConsolidationRouteDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name               string    `gorm:"size:255"`
	ProvinceCode       string    `gorm:"size:16;index"`
	Stops              string    `gorm:"type:text"`
	WarehouseOfficeID  uuid.UUID `gorm:"type:uuid;index"`
	MaxWeightKg        decimal.Decimal `gorm:"type:decimal(12,3)"`
	MaxOrderCount      *int
	Active             bool `gorm:"index"`
	OrdersConsolidated int64
	LastRunAt          *time.Time
	Version            int
}

// TableName specifies the database table name for consolidation routes.
func (ConsolidationRouteDTO) TableName() string {
	return "consolidation_routes"
}

// stopDTO is the JSON shape of one stop in the persisted sequence.
type stopDTO struct {
	WardCode       string  `json:"ward_code"`
	WardOfficeName string  `json:"ward_office_name,omitempty"`
	Order          int     `json:"order"`
	DistanceKm     *string `json:"distance_km,omitempty"`
}

// fromDomain converts a consolidation route to its database representation.
func fromDomain(aggregate *routing.ConsolidationRoute) (ConsolidationRouteDTO, error) {
	stops := make([]stopDTO, 0, len(aggregate.Stops()))
	for _, stop := range aggregate.Stops() {
		dto := stopDTO{
			WardCode:       stop.WardCode,
			WardOfficeName: stop.WardOfficeName,
			Order:          stop.Order,
		}
		if stop.DistanceKm != nil {
			km := stop.DistanceKm.String()
			dto.DistanceKm = &km
		}
		stops = append(stops, dto)
	}

	encoded, err := json.Marshal(stops)
	if err != nil {
		return ConsolidationRouteDTO{}, err
	}

	return ConsolidationRouteDTO{
		ID:                 aggregate.ID().Bytes(),
		Name:               aggregate.Name(),
		ProvinceCode:       aggregate.ProvinceCode(),
		Stops:              string(encoded),
		WarehouseOfficeID:  aggregate.WarehouseOfficeID().Bytes(),
		MaxWeightKg:        aggregate.MaxWeightKg(),
		MaxOrderCount:      aggregate.MaxOrderCount(),
		Active:             aggregate.IsActive(),
		OrdersConsolidated: aggregate.OrdersConsolidated(),
		LastRunAt:          aggregate.LastRunAt(),
		Version:            aggregate.Version(),
	}, nil
}

// toDomain converts a database DTO back into a consolidation route. A stop
// sequence that fails to decode is logged and replaced with an empty list
// rather than failing the read.
func toDomain(dto ConsolidationRouteDTO) (*routing.ConsolidationRoute, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	warehouseOfficeID, err := kernel.UUIDFromBytes(dto.WarehouseOfficeID[:])
	if err != nil {
		return nil, err
	}

	stops := decodeStops(id, dto.Stops)

	return routing.RestoreConsolidationRoute(
		id,
		dto.Name,
		dto.ProvinceCode,
		stops,
		warehouseOfficeID,
		dto.MaxWeightKg,
		dto.MaxOrderCount,
		dto.Active,
		dto.OrdersConsolidated,
		dto.LastRunAt,
		dto.Version,
	)
}

func decodeStops(routeID kernel.UUID, encoded string) []routing.Stop {
	if encoded == "" {
		return nil
	}

	var raw []stopDTO
	if err := json.Unmarshal([]byte(encoded), &raw); err != nil {
		slog.Warn("consolidation route has an undecodable stop sequence, treating as empty",
			"route_id", routeID.String(),
			"error", err,
		)
		return nil
	}

	stops := make([]routing.Stop, 0, len(raw))
	for _, dto := range raw {
		stop := routing.Stop{
			WardCode:       dto.WardCode,
			WardOfficeName: dto.WardOfficeName,
			Order:          dto.Order,
		}
		if dto.DistanceKm != nil {
			km, kmErr := decimal.NewFromString(*dto.DistanceKm)
			if kmErr != nil {
				slog.Warn("consolidation route stop has an undecodable distance, dropping the value",
					"route_id", routeID.String(),
					"ward_code", dto.WardCode,
					"error", kmErr,
				)
			} else {
				stop.DistanceKm = &km
			}
		}
		stops = append(stops, stop)
	}

	return stops
}
