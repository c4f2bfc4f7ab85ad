package routerepo

import (
	"context"
	"errors"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/routing"
	"postal/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormTransferRouteRepository implements TransferRouteRepository using GORM.
type GormTransferRouteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormTransferRouteRepository creates a new GORM transfer route repository.
func NewGormTransferRouteRepository(db *gorm.DB, tracker aggregateTracker) *GormTransferRouteRepository {
	return &GormTransferRouteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new transfer route to the database.
func (r *GormTransferRouteRepository) Add(ctx context.Context, aggregate *routing.TransferRoute) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := routeFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing transfer route, guarded by the optimistic version column.
func (r *GormTransferRouteRepository) Update(ctx context.Context, aggregate *routing.TransferRoute) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := routeFromDomain(aggregate)
	currentVersion := dto.Version
	dto.Version = currentVersion + 1

	result := r.db.WithContext(ctx).
		Model(&TransferRouteDTO{}).
		Where("id = ? AND version = ?", dto.ID, currentVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("transfer route " + aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a transfer route by ID.
func (r *GormTransferRouteRepository) Get(ctx context.Context, id kernel.UUID) (*routing.TransferRoute, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransferRouteDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transfer route", id.String())
		}
		return nil, err
	}

	return routeToDomain(dto)
}

// GetAll retrieves every transfer route, active or not.
func (r *GormTransferRouteRepository) GetAll(ctx context.Context) ([]*routing.TransferRoute, error) {
	var dtos []TransferRouteDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return routesToDomain(dtos)
}

// GetByOffice retrieves every route with the given office as an endpoint.
func (r *GormTransferRouteRepository) GetByOffice(
	ctx context.Context,
	officeID kernel.UUID,
) ([]*routing.TransferRoute, error) {
	if err := officeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TransferRouteDTO
	err := r.db.WithContext(ctx).
		Where("from_office_id = ? OR to_office_id = ?", officeID.Bytes(), officeID.Bytes()).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return routesToDomain(dtos)
}

func routesToDomain(dtos []TransferRouteDTO) ([]*routing.TransferRoute, error) {
	routes := make([]*routing.TransferRoute, 0, len(dtos))
	for _, dto := range dtos {
		route, err := routeToDomain(dto)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, nil
}

// GormDisruptionRepository implements DisruptionRepository using GORM.
type GormDisruptionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormDisruptionRepository creates a new GORM disruption repository.
func NewGormDisruptionRepository(db *gorm.DB, tracker aggregateTracker) *GormDisruptionRepository {
	return &GormDisruptionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new disruption record to the database.
func (r *GormDisruptionRepository) Add(ctx context.Context, aggregate *routing.RouteDisruption) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := disruptionFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing disruption, typically its resolution.
func (r *GormDisruptionRepository) Update(ctx context.Context, aggregate *routing.RouteDisruption) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := disruptionFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RouteDisruptionDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("disruption", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a disruption by ID.
func (r *GormDisruptionRepository) Get(ctx context.Context, id kernel.UUID) (*routing.RouteDisruption, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RouteDisruptionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("disruption", id.String())
		}
		return nil, err
	}

	return disruptionToDomain(dto)
}

// GetActive retrieves every unresolved disruption.
func (r *GormDisruptionRepository) GetActive(ctx context.Context) ([]*routing.RouteDisruption, error) {
	var dtos []RouteDisruptionDTO
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("start_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return disruptionsToDomain(dtos)
}

// GetByRoute retrieves the disruption history of one route, newest first.
func (r *GormDisruptionRepository) GetByRoute(
	ctx context.Context,
	routeID kernel.UUID,
) ([]*routing.RouteDisruption, error) {
	if err := routeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RouteDisruptionDTO
	err := r.db.WithContext(ctx).
		Where("route_id = ?", routeID.Bytes()).
		Order("start_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return disruptionsToDomain(dtos)
}

func disruptionsToDomain(dtos []RouteDisruptionDTO) ([]*routing.RouteDisruption, error) {
	disruptions := make([]*routing.RouteDisruption, 0, len(dtos))
	for _, dto := range dtos {
		d, err := disruptionToDomain(dto)
		if err != nil {
			return nil, err
		}
		disruptions = append(disruptions, d)
	}
	return disruptions, nil
}
