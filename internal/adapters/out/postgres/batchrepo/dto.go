// Package batchrepo provides data transfer objects and mapping functions for
// batch persistence. The member order set is serialized as a JSON array of
// order identifiers; capacity counters are stored denormalized so that open
// batches can be loaded without touching the orders table.
package batchrepo

import (
	"encoding/json"
	"time"

	"postal/internal/core/domain/model/batch"
	"postal/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchDTO represents the database structure for persisting batch aggregates.
type BatchDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code                string    `gorm:"size:64;uniqueIndex"`
	Status              int       `gorm:"index"`
	OriginOfficeID      uuid.UUID `gorm:"type:uuid;index"`
	DestinationOfficeID uuid.UUID `gorm:"type:uuid;index"`

	MaxWeightKg   decimal.Decimal  `gorm:"type:decimal(12,3)"`
	MaxVolumeCm3  *decimal.Decimal `gorm:"type:decimal(16,3)"`
	MaxOrderCount *int

	CurrentWeightKg  decimal.Decimal `gorm:"type:decimal(12,3)"`
	CurrentVolumeCm3 decimal.Decimal `gorm:"type:decimal(16,3)"`

	OrderIDs string `gorm:"type:text"`

	CreatedAt  time.Time
	SealedAt   *time.Time
	DepartedAt *time.Time
	ArrivedAt  *time.Time

	Version int
}

// TableName specifies the database table name for batch entities.
func (BatchDTO) TableName() string {
	return "batches"
}

// fromDomain converts a batch aggregate to its database representation.
func fromDomain(aggregate *batch.Batch) (BatchDTO, error) {
	memberIDs := make([]string, 0, aggregate.OrderCount())
	for _, id := range aggregate.OrderIDs() {
		memberIDs = append(memberIDs, id.String())
	}

	encoded, err := json.Marshal(memberIDs)
	if err != nil {
		return BatchDTO{}, err
	}

	limits := aggregate.Limits()

	return BatchDTO{
		ID:                  aggregate.ID().Bytes(),
		Code:                aggregate.Code(),
		Status:              int(aggregate.Status()),
		OriginOfficeID:      aggregate.OriginOfficeID().Bytes(),
		DestinationOfficeID: aggregate.DestinationOfficeID().Bytes(),
		MaxWeightKg:         limits.MaxWeightKg,
		MaxVolumeCm3:        limits.MaxVolumeCm3,
		MaxOrderCount:       limits.MaxOrderCount,
		CurrentWeightKg:     aggregate.CurrentWeightKg(),
		CurrentVolumeCm3:    aggregate.CurrentVolumeCm3(),
		OrderIDs:            string(encoded),
		CreatedAt:           aggregate.CreatedAt(),
		SealedAt:            aggregate.SealedAt(),
		DepartedAt:          aggregate.DepartedAt(),
		ArrivedAt:           aggregate.ArrivedAt(),
		Version:             aggregate.Version(),
	}, nil
}

// toDomain converts a database DTO back into a batch aggregate.
func toDomain(dto BatchDTO) (*batch.Batch, error) {
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

	var memberIDs []string
	if dto.OrderIDs != "" {
		if err = json.Unmarshal([]byte(dto.OrderIDs), &memberIDs); err != nil {
			return nil, err
		}
	}

	orderIDs := make([]kernel.UUID, 0, len(memberIDs))
	for _, raw := range memberIDs {
		orderID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return nil, idErr
		}
		orderIDs = append(orderIDs, orderID)
	}

	return batch.RestoreBatch(
		id,
		dto.Code,
		batch.Status(dto.Status),
		originOfficeID,
		destinationOfficeID,
		batch.CapacityLimits{
			MaxWeightKg:   dto.MaxWeightKg,
			MaxVolumeCm3:  dto.MaxVolumeCm3,
			MaxOrderCount: dto.MaxOrderCount,
		},
		dto.CurrentWeightKg,
		dto.CurrentVolumeCm3,
		orderIDs,
		dto.CreatedAt,
		dto.SealedAt,
		dto.DepartedAt,
		dto.ArrivedAt,
		dto.Version,
	)
}
