package commands

import (
	"context"

	"postal/internal/core/domain/model/order"
	"postal/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for shipment
// registration. New orders start in the created status with an initial
// tracking history entry.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for shipment registration.
// Requires an OrderUoWFactory for transactional persistence and an event
// publisher for the created notification.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order creation command.
// Uses a transaction to ensure the order is properly persisted or rolled
// back on error; the created event is published only after commit.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	lengthCm, widthCm, heightCm := cmd.Dimensions()
	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.TrackingNumber(),
		cmd.OriginOfficeID(),
		cmd.DestinationOfficeID(),
		cmd.WeightKg(),
		lengthCm, widthCm, heightCm,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.publisher.Publish(ctx, ports.NewEvent(
		ports.EventOrderCreated,
		aggregate.ID(),
		map[string]any{"trackingNumber": aggregate.TrackingNumber()},
	))
}
