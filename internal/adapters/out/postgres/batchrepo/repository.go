package batchrepo

import (
	"context"
	"errors"

	"postal/internal/core/domain/model/batch"
	"postal/internal/core/domain/model/kernel"
	"postal/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBatchRepository implements BatchRepository using GORM.
type GormBatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBatchRepository creates a new GORM batch repository.
func NewGormBatchRepository(db *gorm.DB, tracker aggregateTracker) *GormBatchRepository {
	return &GormBatchRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new batch to the database.
func (r *GormBatchRepository) Add(ctx context.Context, aggregate *batch.Batch) error {
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

// Update saves an existing batch, guarded by the optimistic version column.
// Concurrent sorters racing to fill the same batch serialize on this check:
// the loser re-reads and retries against the fresh counters.
func (r *GormBatchRepository) Update(ctx context.Context, aggregate *batch.Batch) error {
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
		Model(&BatchDTO{}).
		Where("id = ? AND version = ?", dto.ID, currentVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("batch " + aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a batch by ID.
func (r *GormBatchRepository) Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BatchDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("batch", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCode retrieves a batch by its human-readable code.
func (r *GormBatchRepository) GetByCode(ctx context.Context, code string) (*batch.Batch, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto BatchDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("batch", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOpenByOfficePair retrieves batches still accepting orders between the
// given origin and destination, oldest first so the planner reuses the batch
// that has been filling longest.
func (r *GormBatchRepository) GetOpenByOfficePair(
	ctx context.Context,
	originOfficeID, destinationOfficeID kernel.UUID,
) ([]*batch.Batch, error) {
	if err := originOfficeID.Validate(); err != nil {
		return nil, err
	}
	if err := destinationOfficeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []BatchDTO
	err := r.db.WithContext(ctx).
		Where("origin_office_id = ? AND destination_office_id = ? AND status IN ?",
			originOfficeID.Bytes(), destinationOfficeID.Bytes(),
			[]int{int(batch.Open), int(batch.Processing)}).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllOpen retrieves every batch still accepting orders, across all office
// pairs. Used by the periodic seal sweep.
func (r *GormBatchRepository) GetAllOpen(ctx context.Context) ([]*batch.Batch, error) {
	var dtos []BatchDTO
	err := r.db.WithContext(ctx).
		Where("status IN ?", []int{int(batch.Open), int(batch.Processing)}).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetSealedOrInTransit retrieves every batch committed to a planned path,
// sealed and awaiting departure or already on the road.
func (r *GormBatchRepository) GetSealedOrInTransit(ctx context.Context) ([]*batch.Batch, error) {
	var dtos []BatchDTO
	err := r.db.WithContext(ctx).
		Where("status IN (?, ?)", int(batch.Sealed), int(batch.InTransit)).
		Order("departed_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []BatchDTO) ([]*batch.Batch, error) {
	batches := make([]*batch.Batch, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, nil
}
