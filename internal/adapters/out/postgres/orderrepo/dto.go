// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It converts between the order aggregate and its
// relational representation, serializing the status history as JSON.
package orderrepo

import (
	"encoding/json"
	"time"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed for the two hot lookups: backlog scans by origin office and
// membership scans by batch.
type OrderDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingNumber      string    `gorm:"size:64;uniqueIndex"`
	OriginOfficeID      uuid.UUID `gorm:"type:uuid;index"`
	DestinationOfficeID uuid.UUID `gorm:"type:uuid"`
	WeightKg            decimal.Decimal `gorm:"type:decimal(12,3)"`
	LengthCm            int
	WidthCm             int
	HeightCm            int
	Status              int        `gorm:"index"`
	History             string     `gorm:"type:text"`
	BatchID             *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt           time.Time
	Version             int
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// statusChangeDTO is the JSON shape of one history entry.
type statusChangeDTO struct {
	Status      int       `json:"status"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	history := make([]statusChangeDTO, 0, len(aggregate.History()))
	for _, change := range aggregate.History() {
		history = append(history, statusChangeDTO{
			Status:      int(change.Status),
			Description: change.Description,
			Location:    change.Location,
			Timestamp:   change.Timestamp,
		})
	}

	encoded, err := json.Marshal(history)
	if err != nil {
		return OrderDTO{}, err
	}

	var batchID *uuid.UUID
	if id := aggregate.BatchID(); id != nil {
		raw := id.Bytes()
		batchID = &raw
	}

	lengthCm, widthCm, heightCm := aggregate.Dimensions()

	return OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		TrackingNumber:      aggregate.TrackingNumber(),
		OriginOfficeID:      aggregate.OriginOfficeID().Bytes(),
		DestinationOfficeID: aggregate.DestinationOfficeID().Bytes(),
		WeightKg:            aggregate.WeightKg(),
		LengthCm:            lengthCm,
		WidthCm:             widthCm,
		HeightCm:            heightCm,
		Status:              int(aggregate.Status()),
		History:             string(encoded),
		BatchID:             batchID,
		CreatedAt:           aggregate.CreatedAt(),
		Version:             aggregate.Version(),
	}, nil
}

// toDomain converts a database DTO back into an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	originOfficeID, err := kernel.UUIDFromBytes(dto.OriginOfficeID[:])
	if err != nil {
		return nil, err
	}

	destinationOfficeID, err := kernel.UUIDFromBytes(dto.DestinationOfficeID[:])
	if err != nil {
		return nil, err
	}

	var batchID *kernel.UUID
	if dto.BatchID != nil {
		bID, batchErr := kernel.UUIDFromBytes((*dto.BatchID)[:])
		if batchErr != nil {
			return nil, batchErr
		}
		batchID = &bID
	}

	var encoded []statusChangeDTO
	if dto.History != "" {
		if err = json.Unmarshal([]byte(dto.History), &encoded); err != nil {
			return nil, err
		}
	}

	history := make([]order.StatusChange, 0, len(encoded))
	for _, change := range encoded {
		history = append(history, order.StatusChange{
			Status:      order.Status(change.Status),
			Description: change.Description,
			Location:    change.Location,
			Timestamp:   change.Timestamp,
		})
	}

	return order.RestoreOrder(
		id,
		dto.TrackingNumber,
		originOfficeID,
		destinationOfficeID,
		dto.WeightKg,
		dto.LengthCm,
		dto.WidthCm,
		dto.HeightCm,
		order.Status(dto.Status),
		history,
		batchID,
		dto.CreatedAt,
		dto.Version,
	)
}
