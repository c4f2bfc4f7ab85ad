package commands

import (
	"context"
	"fmt"

	"postal/internal/core/domain/model/order"
	"postal/internal/core/ports"
)

// ArriveBatchCommandHandler registers a batch's arrival and moves its member
// orders to the hub in the same transaction.
type ArriveBatchCommandHandler struct {
	uowFactory BatchUoWFactory
	publisher  ports.EventPublisher
}

// NewArriveBatchCommandHandler creates a handler for batch arrival.
func NewArriveBatchCommandHandler(
	uowFactory BatchUoWFactory,
	publisher ports.EventPublisher,
) ArriveBatchCommandHandler {
	return ArriveBatchCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle marks the batch arrived and each member order as at the hub.
func (h *ArriveBatchCommandHandler) Handle(ctx context.Context, cmd ArriveBatchCommand) error {
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

	if err = aggregate.MarkArrived(); err != nil {
		return err
	}

	destination, err := uow.OfficeRepository().Get(ctx, aggregate.DestinationOfficeID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	members, err := orderRepo.GetByBatch(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	description := fmt.Sprintf("arrived with batch %s", aggregate.Code())
	for _, o := range members {
		if trErr := o.TransitionTo(order.AtHub, description, destination.Code()); trErr != nil {
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
		ports.EventBatchArrived,
		aggregate.ID(),
		map[string]any{"code": aggregate.Code(), "office": destination.Code()},
	))
}
