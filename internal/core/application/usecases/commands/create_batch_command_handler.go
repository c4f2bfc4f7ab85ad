package commands

import (
	"context"

	"postal/internal/core/domain/model/batch"
	"postal/internal/core/ports"
)

// CreateBatchCommandHandler opens a dispatch batch between two offices.
// The batch code is derived from the office codes, so both offices must
// exist before a batch can be opened between them.
type CreateBatchCommandHandler struct {
	uowFactory BatchUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateBatchCommandHandler creates a handler for manual batch creation.
func NewCreateBatchCommandHandler(
	uowFactory BatchUoWFactory,
	publisher ports.EventPublisher,
) CreateBatchCommandHandler {
	return CreateBatchCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle resolves both office codes, opens the batch and persists it.
func (h *CreateBatchCommandHandler) Handle(ctx context.Context, cmd CreateBatchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	officeRepo := uow.OfficeRepository()
	origin, err := officeRepo.Get(ctx, cmd.OriginOfficeID())
	if err != nil {
		return err
	}

	destination, err := officeRepo.Get(ctx, cmd.DestinationOfficeID())
	if err != nil {
		return err
	}

	aggregate, err := batch.NewBatch(
		cmd.BatchID(),
		origin.ID(), origin.Code(),
		destination.ID(), destination.Code(),
		cmd.Limits(),
	)
	if err != nil {
		return err
	}

	if err = uow.BatchRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.publisher.Publish(ctx, ports.NewEvent(
		ports.EventBatchCreated,
		aggregate.ID(),
		map[string]any{"code": aggregate.Code()},
	))
}
