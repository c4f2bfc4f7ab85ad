// Package officerepo provides data transfer objects and mapping functions for
// office persistence. Offices form the network hierarchy (hub, province,
// ward) that scope checks and route resolution are built on.
package officerepo

import (
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/office"

	"github.com/google/uuid"
)

// OfficeDTO represents the database structure for persisting offices.
type OfficeDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code         string    `gorm:"size:32;uniqueIndex"`
	Name         string    `gorm:"size:255"`
	OfficeType   int       `gorm:"index"`
	ParentID     *uuid.UUID `gorm:"type:uuid;index"`
	WardCode     string    `gorm:"size:16;index"`
	ProvinceCode string    `gorm:"size:16;index"`
	Active       bool
}

// TableName specifies the database table name for office entities.
func (OfficeDTO) TableName() string {
	return "offices"
}

// fromDomain converts an office aggregate to its database representation.
func fromDomain(aggregate *office.Office) OfficeDTO {
	var parentID *uuid.UUID
	if id := aggregate.ParentID(); id != nil {
		raw := id.Bytes()
		parentID = &raw
	}

	return OfficeDTO{
		ID:           aggregate.ID().Bytes(),
		Code:         aggregate.Code(),
		Name:         aggregate.Name(),
		OfficeType:   int(aggregate.OfficeType()),
		ParentID:     parentID,
		WardCode:     aggregate.WardCode(),
		ProvinceCode: aggregate.ProvinceCode(),
		Active:       aggregate.IsActive(),
	}
}

// toDomain converts a database DTO back into an office aggregate.
func toDomain(dto OfficeDTO) (*office.Office, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var parentID *kernel.UUID
	if dto.ParentID != nil {
		pID, parentErr := kernel.UUIDFromBytes((*dto.ParentID)[:])
		if parentErr != nil {
			return nil, parentErr
		}
		parentID = &pID
	}

	return office.RestoreOffice(
		id,
		dto.Code,
		dto.Name,
		office.Type(dto.OfficeType),
		parentID,
		dto.WardCode,
		dto.ProvinceCode,
		dto.Active,
	)
}
