package commands

import (
	"context"
	"errors"
	"fmt"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/routing"
	"postal/internal/core/domain/services"
	"postal/internal/core/ports"
	"postal/internal/pkg/errs"
)

// DisableRouteCommandHandler takes a transfer route out of service, opens a
// disruption record and stamps it with the number of in-flight batches and
// orders whose planned path used the route.
type DisableRouteCommandHandler struct {
	uowFactory RouteUoWFactory
	publisher  ports.EventPublisher
}

// NewDisableRouteCommandHandler creates a handler for route disabling.
func NewDisableRouteCommandHandler(
	uowFactory RouteUoWFactory,
	publisher ports.EventPublisher,
) DisableRouteCommandHandler {
	return DisableRouteCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle deactivates the route, measures the impact against the network as
// it was before the disruption, and persists everything atomically.
func (h *DisableRouteCommandHandler) Handle(ctx context.Context, cmd DisableRouteCommand) error {
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

	routeRepo := uow.TransferRouteRepository()
	route, err := routeRepo.Get(ctx, cmd.RouteID())
	if err != nil {
		return err
	}

	authorizer, err := routeScopeAuthorizer(ctx, uow)
	if err != nil {
		return err
	}
	if err = authorizer.AuthorizeRoute(cmd.Actor(), route); err != nil {
		return err
	}

	disruptionRepo := uow.DisruptionRepository()
	activeDisruptions, err := disruptionRepo.GetActive(ctx)
	if err != nil {
		return err
	}

	// A route carries at most one active disruption at a time.
	for _, d := range activeDisruptions {
		if d.RouteID() == route.ID() {
			return errs.NewValueIsInvalidErrorWithCause(
				"routeID",
				fmt.Errorf("route %s already has an active disruption %s", route.ID(), d.ID()),
			)
		}
	}

	batchCount, orderCount, err := h.measureImpact(ctx, uow, route.ID(), activeDisruptions)
	if err != nil {
		return err
	}

	disruption, err := routing.NewRouteDisruption(
		kernel.NewUUID(),
		route.ID(),
		cmd.Kind(),
		cmd.Reason(),
		cmd.ExpectedEndAt(),
	)
	if err != nil {
		return err
	}
	if err = disruption.RecordImpact(batchCount, orderCount); err != nil {
		return err
	}

	route.Deactivate()
	if err = routeRepo.Update(ctx, route); err != nil {
		return err
	}
	if err = disruptionRepo.Add(ctx, disruption); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.publisher.Publish(ctx, ports.NewEvent(
		ports.EventRouteDisrupted,
		route.ID(),
		map[string]any{
			"kind":            cmd.Kind().String(),
			"reason":          cmd.Reason(),
			"affectedBatches": batchCount,
			"affectedOrders":  orderCount,
		},
	))
}

// measureImpact counts sealed and in-transit batches whose path, resolved
// over the network before this disruption, traverses the route being disabled.
func (h *DisableRouteCommandHandler) measureImpact(
	ctx context.Context,
	uow RouteUoW,
	routeID kernel.UUID,
	active []*routing.RouteDisruption,
) (batchCount, orderCount int, err error) {
	routes, err := uow.TransferRouteRepository().GetAll(ctx)
	if err != nil {
		return 0, 0, err
	}

	network, err := services.NewRouteNetwork(routes, active)
	if err != nil {
		return 0, 0, err
	}

	committed, err := uow.BatchRepository().GetSealedOrInTransit(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, b := range committed {
		path, pathErr := network.ResolvePath(b.OriginOfficeID(), b.DestinationOfficeID())
		if pathErr != nil {
			if errors.Is(pathErr, services.ErrNoPathAvailable) {
				continue
			}
			return 0, 0, pathErr
		}
		if path.ContainsRoute(routeID) {
			batchCount++
			orderCount += b.OrderCount()
		}
	}

	return batchCount, orderCount, nil
}
