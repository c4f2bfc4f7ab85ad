package consolidationrepo

import (
	"context"
	"errors"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/routing"
	"postal/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormConsolidationRouteRepository implements ConsolidationRouteRepository using GORM.
type GormConsolidationRouteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormConsolidationRouteRepository creates a new GORM consolidation route repository.
func NewGormConsolidationRouteRepository(
	db *gorm.DB,
	tracker aggregateTracker,
) *GormConsolidationRouteRepository {
	return &GormConsolidationRouteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new consolidation route to the database.
func (r *GormConsolidationRouteRepository) Add(
	ctx context.Context,
	aggregate *routing.ConsolidationRoute,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing consolidation route, guarded by the optimistic
// version column.
func (r *GormConsolidationRouteRepository) Update(
	ctx context.Context,
	aggregate *routing.ConsolidationRoute,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	currentVersion := dto.Version
	dto.Version = currentVersion + 1

	result := r.db.WithContext(ctx).
		Model(&ConsolidationRouteDTO{}).
		Where("id = ? AND version = ?", dto.ID, currentVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("consolidation route " + aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a consolidation route by ID.
func (r *GormConsolidationRouteRepository) Get(
	ctx context.Context,
	id kernel.UUID,
) (*routing.ConsolidationRoute, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ConsolidationRouteDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("consolidation route", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByProvince retrieves every consolidation route registered for the given
// province, active or not.
func (r *GormConsolidationRouteRepository) GetByProvince(
	ctx context.Context,
	provinceCode string,
) ([]*routing.ConsolidationRoute, error) {
	if provinceCode == "" {
		return nil, errs.NewValueIsRequiredError("provinceCode")
	}

	var dtos []ConsolidationRouteDTO
	err := r.db.WithContext(ctx).
		Where("province_code = ?", provinceCode).
		Order("name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllActive retrieves every active consolidation route. The result seeds
// the ward-exclusivity resolver.
func (r *GormConsolidationRouteRepository) GetAllActive(
	ctx context.Context,
) ([]*routing.ConsolidationRoute, error) {
	var dtos []ConsolidationRouteDTO
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []ConsolidationRouteDTO) ([]*routing.ConsolidationRoute, error) {
	routes := make([]*routing.ConsolidationRoute, 0, len(dtos))
	for _, dto := range dtos {
		route, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, nil
}
