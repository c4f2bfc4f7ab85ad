package commands

import (
	"context"
	"fmt"

	"postal/internal/core/domain/model/order"
	"postal/internal/core/domain/services"
	"postal/internal/core/ports"
)

// AddOrdersToBatchCommandHandler places specific orders into an open batch.
// Every order must fit; the operation fails as a whole when one does not.
type AddOrdersToBatchCommandHandler struct {
	uowFactory BatchUoWFactory
	calculator services.ChargeableWeightCalculator
	publisher  ports.EventPublisher
}

// NewAddOrdersToBatchCommandHandler creates a handler for manual batch filling.
func NewAddOrdersToBatchCommandHandler(
	uowFactory BatchUoWFactory,
	calculator services.ChargeableWeightCalculator,
	publisher ports.EventPublisher,
) AddOrdersToBatchCommandHandler {
	return AddOrdersToBatchCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		publisher:  publisher,
	}
}

// Handle loads the batch and each order, charges the batch for the order's
// chargeable metrics and records the membership on both sides.
func (h *AddOrdersToBatchCommandHandler) Handle(ctx context.Context, cmd AddOrdersToBatchCommand) error {
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
	orderRepo := uow.OrderRepository()

	aggregate, err := batchRepo.Get(ctx, cmd.BatchID())
	if err != nil {
		return err
	}

	for _, orderID := range cmd.OrderIDs() {
		o, getErr := orderRepo.Get(ctx, orderID)
		if getErr != nil {
			return getErr
		}

		if !o.OriginOfficeID().IsEqual(aggregate.OriginOfficeID()) ||
			!o.DestinationOfficeID().IsEqual(aggregate.DestinationOfficeID()) {
			return fmt.Errorf("order %s does not match the batch office pair", orderID)
		}

		metrics, metricsErr := h.calculator.MetricsFor(o)
		if metricsErr != nil {
			return metricsErr
		}

		if addErr := aggregate.AddOrder(o.ID(), metrics.WeightKg, metrics.VolumeCm3); addErr != nil {
			return addErr
		}
		if assignErr := o.AssignToBatch(aggregate.ID()); assignErr != nil {
			return assignErr
		}
		if o.Status() == order.AtOriginOffice {
			if trErr := o.TransitionTo(
				order.SortedAtOrigin,
				fmt.Sprintf("sorted into batch %s", aggregate.Code()),
				"",
			); trErr != nil {
				return trErr
			}
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
		ports.EventOrderBatched,
		aggregate.ID(),
		map[string]any{"code": aggregate.Code(), "added": len(cmd.OrderIDs())},
	))
}
