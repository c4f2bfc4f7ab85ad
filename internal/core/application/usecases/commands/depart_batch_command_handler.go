package commands

import (
	"context"
	"fmt"

	"postal/internal/core/domain/model/order"
	"postal/internal/core/ports"
)

// DepartBatchCommandHandler dispatches a sealed batch and moves its member
// orders into transit in the same transaction.
type DepartBatchCommandHandler struct {
	uowFactory BatchUoWFactory
	publisher  ports.EventPublisher
}

// NewDepartBatchCommandHandler creates a handler for batch dispatch.
func NewDepartBatchCommandHandler(
	uowFactory BatchUoWFactory,
	publisher ports.EventPublisher,
) DepartBatchCommandHandler {
	return DepartBatchCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle marks the batch in transit and each member order as travelling to
// the hub, recording the movement in every tracking history.
func (h *DepartBatchCommandHandler) Handle(ctx context.Context, cmd DepartBatchCommand) error {
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

	if err = aggregate.MarkInTransit(); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	members, err := orderRepo.GetByBatch(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	description := fmt.Sprintf("departed with batch %s", aggregate.Code())
	for _, o := range members {
		if trErr := o.TransitionTo(order.InTransitToHub, description, ""); trErr != nil {
			return trErr
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
		ports.EventBatchDeparted,
		aggregate.ID(),
		map[string]any{"code": aggregate.Code(), "orders": len(members)},
	))
}
