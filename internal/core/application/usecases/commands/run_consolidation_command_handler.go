package commands

import (
	"context"
	"errors"
	"fmt"

	"postal/internal/core/domain/model/office"
	"postal/internal/core/domain/model/order"
	"postal/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// ErrRouteIsInactive rejects consolidation runs on paused routes.
var ErrRouteIsInactive = errors.New("consolidation route is not active")

// RunConsolidationCommandHandler executes one pickup round: it visits the
// route's ward offices in stop order and moves their waiting orders to the
// province warehouse, up to the route's capacity.
type RunConsolidationCommandHandler struct {
	uowFactory ConsolidationUoWFactory
	calculator services.ChargeableWeightCalculator
}

// NewRunConsolidationCommandHandler creates a handler for consolidation runs.
func NewRunConsolidationCommandHandler(
	uowFactory ConsolidationUoWFactory,
	calculator services.ChargeableWeightCalculator,
) RunConsolidationCommandHandler {
	return RunConsolidationCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
	}
}

// Handle sweeps the route's wards and returns how many orders were moved.
// Orders beyond the run's weight or count cap stay for the next round.
func (h *RunConsolidationCommandHandler) Handle(ctx context.Context, cmd RunConsolidationCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	consolidationRepo := uow.ConsolidationRouteRepository()
	route, err := consolidationRepo.Get(ctx, cmd.RouteID())
	if err != nil {
		return 0, err
	}
	if !route.IsActive() {
		return 0, ErrRouteIsInactive
	}

	officeRepo := uow.OfficeRepository()
	warehouse, err := officeRepo.Get(ctx, route.WarehouseOfficeID())
	if err != nil {
		return 0, err
	}

	offices, err := officeRepo.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	wardOffices := make(map[string][]*office.Office)
	for _, o := range offices {
		if o.IsActive() && route.ContainsWard(o.WardCode()) {
			wardOffices[o.WardCode()] = append(wardOffices[o.WardCode()], o)
		}
	}

	orderRepo := uow.OrderRepository()
	description := fmt.Sprintf("consolidated to %s", warehouse.Code())

	moved := 0
	pickedWeight := decimal.Zero
	capReached := false

	for _, stop := range route.Stops() {
		if capReached {
			break
		}
		for _, wardOffice := range wardOffices[stop.WardCode] {
			waiting, getErr := orderRepo.GetUnbatchedAtOffice(ctx, wardOffice.ID())
			if getErr != nil {
				return 0, getErr
			}

			for _, o := range waiting {
				if o.Status() != order.AtOriginOffice {
					continue
				}

				metrics, metricsErr := h.calculator.MetricsFor(o)
				if metricsErr != nil {
					return 0, metricsErr
				}

				if pickedWeight.Add(metrics.WeightKg).GreaterThan(route.MaxWeightKg()) {
					capReached = true
					break
				}
				if limit := route.MaxOrderCount(); limit != nil && moved >= *limit {
					capReached = true
					break
				}

				if trErr := o.TransitionTo(order.SortedAtOrigin, description, warehouse.Code()); trErr != nil {
					return 0, trErr
				}
				if updErr := orderRepo.Update(ctx, o); updErr != nil {
					return 0, updErr
				}

				pickedWeight = pickedWeight.Add(metrics.WeightKg)
				moved++
			}
			if capReached {
				break
			}
		}
	}

	if err = route.RecordRun(moved); err != nil {
		return 0, err
	}
	if err = consolidationRepo.Update(ctx, route); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return moved, nil
}
