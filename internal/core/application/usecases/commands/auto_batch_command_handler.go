package commands

import (
	"context"
	"fmt"

	"postal/internal/core/domain/model/order"
	"postal/internal/core/domain/services"
	"postal/internal/core/ports"
)

// AutoBatchCommandHandler runs the greedy batch planner over the unbatched
// backlog of one office pair and persists whatever the planner decided.
type AutoBatchCommandHandler struct {
	uowFactory BatchUoWFactory
	planner    services.AutoBatchPlanner
	calculator services.ChargeableWeightCalculator
	publisher  ports.EventPublisher
}

// NewAutoBatchCommandHandler creates a handler wiring the planner to
// persistence and event delivery.
func NewAutoBatchCommandHandler(
	uowFactory BatchUoWFactory,
	planner services.AutoBatchPlanner,
	calculator services.ChargeableWeightCalculator,
	publisher ports.EventPublisher,
) AutoBatchCommandHandler {
	return AutoBatchCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		calculator: calculator,
		publisher:  publisher,
	}
}

// Handle loads the backlog and the open batches of the office pair, runs the
// planner and persists every touched aggregate in one transaction.
// The plan result is returned so callers can report skips.
func (h *AutoBatchCommandHandler) Handle(
	ctx context.Context,
	cmd AutoBatchCommand,
) (*services.PlanResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	officeRepo := uow.OfficeRepository()
	origin, err := officeRepo.Get(ctx, cmd.OriginOfficeID())
	if err != nil {
		return nil, err
	}

	destination, err := officeRepo.Get(ctx, cmd.DestinationOfficeID())
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	backlog, err := orderRepo.GetUnbatchedAtOffice(ctx, origin.ID())
	if err != nil {
		return nil, err
	}

	// the backlog carries every destination; this run plans one pair only
	pairOrders := make([]*order.Order, 0, len(backlog))
	for _, o := range backlog {
		if o.DestinationOfficeID().IsEqual(destination.ID()) {
			pairOrders = append(pairOrders, o)
		}
	}

	batchRepo := uow.BatchRepository()
	openBatches, err := batchRepo.GetOpenByOfficePair(ctx, origin.ID(), destination.ID())
	if err != nil {
		return nil, err
	}

	result, err := h.planner.Plan(services.PlanRequest{
		OriginOfficeID:      origin.ID(),
		OriginCode:          origin.Code(),
		DestinationOfficeID: destination.ID(),
		DestinationCode:     destination.Code(),
		Orders:              pairOrders,
		OpenBatches:         openBatches,
		Policy:              cmd.Policy(),
		Metrics:             h.calculator.MetricsFor,
	})
	if err != nil {
		return nil, err
	}

	for _, b := range result.NewBatches {
		if addErr := batchRepo.Add(ctx, b); addErr != nil {
			return nil, addErr
		}
	}
	for _, b := range result.ReusedBatches {
		if updErr := batchRepo.Update(ctx, b); updErr != nil {
			return nil, updErr
		}
	}

	for _, o := range pairOrders {
		batchID := o.BatchID()
		if batchID == nil {
			continue
		}
		if o.Status() == order.AtOriginOffice {
			if trErr := o.TransitionTo(order.SortedAtOrigin, "sorted into dispatch batch", origin.Code()); trErr != nil {
				return nil, trErr
			}
		}
		if updErr := orderRepo.Update(ctx, o); updErr != nil {
			return nil, updErr
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, b := range result.NewBatches {
		if pubErr := h.publisher.Publish(ctx, ports.NewEvent(
			ports.EventBatchCreated,
			b.ID(),
			map[string]any{"code": b.Code(), "orders": b.OrderCount()},
		)); pubErr != nil {
			return nil, fmt.Errorf("plan committed but event delivery failed: %w", pubErr)
		}
	}

	return result, nil
}
