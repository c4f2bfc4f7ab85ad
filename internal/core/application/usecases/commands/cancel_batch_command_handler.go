package commands

import (
	"context"

	"postal/internal/core/ports"
)

// CancelBatchCommandHandler aborts a batch that has not departed yet.
// Member orders return to the unbatched pool and become eligible for the
// next planner run.
type CancelBatchCommandHandler struct {
	uowFactory BatchUoWFactory
	publisher  ports.EventPublisher
}

// NewCancelBatchCommandHandler creates a handler for batch cancellation.
func NewCancelBatchCommandHandler(
	uowFactory BatchUoWFactory,
	publisher ports.EventPublisher,
) CancelBatchCommandHandler {
	return CancelBatchCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle cancels the batch and releases every member order.
func (h *CancelBatchCommandHandler) Handle(ctx context.Context, cmd CancelBatchCommand) error {
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

	orderRepo := uow.OrderRepository()
	members, err := orderRepo.GetByBatch(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	for _, o := range members {
		if relErr := o.ReleaseFromBatch(); relErr != nil {
			return relErr
		}
		if updErr := orderRepo.Update(ctx, o); updErr != nil {
			return updErr
		}
	}

	if err = batchRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
