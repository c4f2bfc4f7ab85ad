package commands

import (
	"context"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/routing"
)

// CreateTransferRouteCommandHandler registers transfer edges. A
// bidirectional request creates the reverse edge under its own identifier
// in the same transaction.
type CreateTransferRouteCommandHandler struct {
	uowFactory RouteUoWFactory
}

// NewCreateTransferRouteCommandHandler creates a handler for route registration.
func NewCreateTransferRouteCommandHandler(uowFactory RouteUoWFactory) CreateTransferRouteCommandHandler {
	return CreateTransferRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle builds the forward edge, and the reverse one when requested, and
// persists both atomically.
func (h *CreateTransferRouteCommandHandler) Handle(ctx context.Context, cmd CreateTransferRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var forward *routing.TransferRoute
	var err error
	switch cmd.Kind() {
	case routing.ProvinceToHub:
		forward, err = routing.NewProvinceToHubRoute(
			cmd.RouteID(),
			cmd.FromOfficeID(),
			cmd.ToOfficeID(),
			*cmd.ProvinceWarehouseID(),
			cmd.DistanceKm(),
			cmd.TransitHours(),
			cmd.Priority(),
		)
	default:
		forward, err = routing.NewHubToHubRoute(
			cmd.RouteID(),
			cmd.FromOfficeID(),
			cmd.ToOfficeID(),
			cmd.DistanceKm(),
			cmd.TransitHours(),
			cmd.Priority(),
		)
	}
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

	authorizer, err := routeScopeAuthorizer(ctx, uow)
	if err != nil {
		return err
	}
	if err = authorizer.AuthorizeRouteCreation(cmd.Actor(), cmd.FromOfficeID()); err != nil {
		return err
	}

	routeRepo := uow.TransferRouteRepository()
	if err = routeRepo.Add(ctx, forward); err != nil {
		return err
	}

	if cmd.Bidirectional() {
		reverse, revErr := forward.Reversed(kernel.NewUUID())
		if revErr != nil {
			return revErr
		}
		if err = routeRepo.Add(ctx, reverse); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
