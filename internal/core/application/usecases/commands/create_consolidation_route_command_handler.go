package commands

import (
	"context"
	"errors"

	"postal/internal/core/domain/model/office"
	"postal/internal/core/domain/model/routing"
	"postal/internal/core/domain/services"
)

// ErrWarehouseIsInvalid rejects consolidation routes pointed at anything
// other than an active province warehouse.
var ErrWarehouseIsInvalid = errors.New("consolidation routes must feed an active province warehouse")

// CreateConsolidationRouteCommandHandler registers a ward pickup round.
// A ward may belong to at most one active route, checked against every
// active route at write time.
type CreateConsolidationRouteCommandHandler struct {
	uowFactory ConsolidationUoWFactory
}

// NewCreateConsolidationRouteCommandHandler creates a handler for
// consolidation route registration.
func NewCreateConsolidationRouteCommandHandler(
	uowFactory ConsolidationUoWFactory,
) CreateConsolidationRouteCommandHandler {
	return CreateConsolidationRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle verifies the warehouse and ward exclusivity, then persists the route.
func (h *CreateConsolidationRouteCommandHandler) Handle(
	ctx context.Context,
	cmd CreateConsolidationRouteCommand,
) error {
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

	warehouse, err := uow.OfficeRepository().Get(ctx, cmd.WarehouseOfficeID())
	if err != nil {
		return err
	}
	if warehouse.OfficeType() != office.ProvinceWarehouse || !warehouse.IsActive() {
		return ErrWarehouseIsInvalid
	}

	consolidationRepo := uow.ConsolidationRouteRepository()
	existing, err := consolidationRepo.GetAllActive(ctx)
	if err != nil {
		return err
	}

	resolver, err := services.NewConsolidationResolver(existing)
	if err != nil {
		return err
	}
	if err = resolver.CheckWardExclusivity(cmd.Stops(), nil); err != nil {
		return err
	}

	aggregate, err := routing.NewConsolidationRoute(
		cmd.RouteID(),
		cmd.Name(),
		cmd.ProvinceCode(),
		cmd.Stops(),
		warehouse.ID(),
		cmd.MaxWeightKg(),
		cmd.MaxOrderCount(),
	)
	if err != nil {
		return err
	}

	if err = consolidationRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
