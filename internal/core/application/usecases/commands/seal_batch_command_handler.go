package commands

import (
	"context"

	"postal/internal/core/ports"
)

// SealBatchCommandHandler closes a batch to further orders.
type SealBatchCommandHandler struct {
	uowFactory BatchUoWFactory
	publisher  ports.EventPublisher
}

// NewSealBatchCommandHandler creates a handler for manual batch sealing.
func NewSealBatchCommandHandler(
	uowFactory BatchUoWFactory,
	publisher ports.EventPublisher,
) SealBatchCommandHandler {
	return SealBatchCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle loads the batch, seals it and persists the new status.
func (h *SealBatchCommandHandler) Handle(ctx context.Context, cmd SealBatchCommand) error {
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

	batchRepo := uow.BatchRepository()
	aggregate, err := batchRepo.Get(ctx, cmd.BatchID())
	if err != nil {
		return err
	}

	if err = aggregate.Seal(); err != nil {
		return err
	}

	if err = batchRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.publisher.Publish(ctx, ports.NewEvent(
		ports.EventBatchSealed,
		aggregate.ID(),
		map[string]any{"code": aggregate.Code(), "orders": aggregate.OrderCount()},
	))
}
