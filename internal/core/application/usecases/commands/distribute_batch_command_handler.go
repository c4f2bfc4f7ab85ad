package commands

import (
	"context"

	"postal/internal/core/ports"
)

// DistributeBatchCommandHandler breaks an arrived batch apart and releases
// its member orders for onward processing.
type DistributeBatchCommandHandler struct {
	uowFactory BatchUoWFactory
	publisher  ports.EventPublisher
}

// NewDistributeBatchCommandHandler creates a handler for batch distribution.
func NewDistributeBatchCommandHandler(
	uowFactory BatchUoWFactory,
	publisher ports.EventPublisher,
) DistributeBatchCommandHandler {
	return DistributeBatchCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle releases every member order from the batch and retires the batch.
// Orders keep their current status; distribution only ends the membership.
func (h *DistributeBatchCommandHandler) Handle(ctx context.Context, cmd DistributeBatchCommand) error {
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

	if err = aggregate.Distribute(); err != nil {
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

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.publisher.Publish(ctx, ports.NewEvent(
		ports.EventBatchDistributed,
		aggregate.ID(),
		map[string]any{"code": aggregate.Code(), "orders": len(members)},
	))
}
