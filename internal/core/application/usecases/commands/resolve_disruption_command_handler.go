package commands

import (
	"context"

	"postal/internal/core/ports"
)

// ResolveDisruptionCommandHandler closes a disruption and reactivates its
// route so path resolution can use the edge again.
type ResolveDisruptionCommandHandler struct {
	uowFactory RouteUoWFactory
	publisher  ports.EventPublisher
}

// NewResolveDisruptionCommandHandler creates a handler for disruption resolution.
func NewResolveDisruptionCommandHandler(
	uowFactory RouteUoWFactory,
	publisher ports.EventPublisher,
) ResolveDisruptionCommandHandler {
	return ResolveDisruptionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle stamps the disruption resolved and returns the route to service.
func (h *ResolveDisruptionCommandHandler) Handle(ctx context.Context, cmd ResolveDisruptionCommand) error {
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

	disruptionRepo := uow.DisruptionRepository()
	disruption, err := disruptionRepo.Get(ctx, cmd.DisruptionID())
	if err != nil {
		return err
	}

	routeRepo := uow.TransferRouteRepository()
	route, err := routeRepo.Get(ctx, disruption.RouteID())
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

	if err = disruption.Resolve(); err != nil {
		return err
	}
	route.Activate()

	if err = disruptionRepo.Update(ctx, disruption); err != nil {
		return err
	}
	if err = routeRepo.Update(ctx, route); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.publisher.Publish(ctx, ports.NewEvent(
		ports.EventRouteRestored,
		route.ID(),
		map[string]any{"disruptionID": disruption.ID().String()},
	))
}
