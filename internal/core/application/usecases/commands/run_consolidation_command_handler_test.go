package commands_test

import (
	"testing"

	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/office"
	"postal/internal/core/domain/model/order"
	"postal/internal/core/domain/model/routing"
	"postal/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProvinceWarehouse(t *testing.T, code string) *office.Office {
	t.Helper()

	o, err := office.NewOffice(
		kernel.NewUUID(), code, "Province Warehouse "+code, office.ProvinceWarehouse, nil, "", "79",
	)
	require.NoError(t, err)

	return o
}

func newPickupRoute(t *testing.T, warehouse *office.Office, wards ...string) *routing.ConsolidationRoute {
	t.Helper()

	stops := make([]routing.Stop, 0, len(wards))
	for i, ward := range wards {
		stops = append(stops, routing.Stop{
			WardCode:       ward,
			WardOfficeName: "Ward Post " + ward,
			Order:          i + 1,
		})
	}

	r, err := routing.NewConsolidationRoute(
		kernel.NewUUID(), "District morning run", "79",
		stops, warehouse.ID(), decimal.NewFromInt(100), nil,
	)
	require.NoError(t, err)

	return r
}

func TestRunConsolidationCommandHandler_Handle_MovesWaitingOrders(t *testing.T) {
	ctx := t.Context()

	warehouse := newProvinceWarehouse(t, "WH-79")
	wardOffice := newWardOffice(t, "WP-26734", "26734")
	route := newPickupRoute(t, warehouse, "26734")

	waiting := []*order.Order{
		newBacklogOrder(t, wardOffice.ID(), kernel.NewUUID(), 10),
		newBacklogOrder(t, wardOffice.ID(), kernel.NewUUID(), 20),
	}

	cmd, err := commands.NewRunConsolidationCommand(route.ID())
	require.NoError(t, err)

	consolidationRepo := new(MockConsolidationRouteRepository)
	officeRepo := new(MockOfficeRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockConsolidationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ConsolidationRouteRepository").Return(consolidationRepo).Once(),
		consolidationRepo.On("Get", ctx, route.ID()).Return(route, nil).Once(),
		uow.On("OfficeRepository").Return(officeRepo).Once(),
		officeRepo.On("Get", ctx, warehouse.ID()).Return(warehouse, nil).Once(),
		officeRepo.On("GetAll", ctx).Return([]*office.Office{warehouse, wardOffice}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetUnbatchedAtOffice", ctx, wardOffice.ID()).Return(waiting, nil).Once(),
		orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Twice(),
		consolidationRepo.On("Update", mock.Anything, route).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockConsolidationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRunConsolidationCommandHandler(factory, services.NewChargeableWeightCalculator())
	moved, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 2, moved)
	require.Equal(t, int64(2), route.OrdersConsolidated())

	for _, o := range waiting {
		require.Equal(t, order.SortedAtOrigin, o.Status())
	}
	consolidationRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestRunConsolidationCommandHandler_Handle_RespectsWeightCap(t *testing.T) {
	ctx := t.Context()

	warehouse := newProvinceWarehouse(t, "WH-79")
	wardOffice := newWardOffice(t, "WP-26734", "26734")
	route := newPickupRoute(t, warehouse, "26734")

	// 60kg + 60kg against a 100kg cap: the second order stays behind
	waiting := []*order.Order{
		newBacklogOrder(t, wardOffice.ID(), kernel.NewUUID(), 60),
		newBacklogOrder(t, wardOffice.ID(), kernel.NewUUID(), 60),
	}

	cmd, err := commands.NewRunConsolidationCommand(route.ID())
	require.NoError(t, err)

	consolidationRepo := new(MockConsolidationRouteRepository)
	officeRepo := new(MockOfficeRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockConsolidationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ConsolidationRouteRepository").Return(consolidationRepo).Once(),
		consolidationRepo.On("Get", ctx, route.ID()).Return(route, nil).Once(),
		uow.On("OfficeRepository").Return(officeRepo).Once(),
		officeRepo.On("Get", ctx, warehouse.ID()).Return(warehouse, nil).Once(),
		officeRepo.On("GetAll", ctx).Return([]*office.Office{warehouse, wardOffice}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetUnbatchedAtOffice", ctx, wardOffice.ID()).Return(waiting, nil).Once(),
		orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		consolidationRepo.On("Update", mock.Anything, route).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockConsolidationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRunConsolidationCommandHandler(factory, services.NewChargeableWeightCalculator())
	moved, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 1, moved)
	require.Equal(t, order.SortedAtOrigin, waiting[0].Status())
	require.Equal(t, order.AtOriginOffice, waiting[1].Status())
}

func TestRunConsolidationCommandHandler_Handle_InactiveRoute(t *testing.T) {
	ctx := t.Context()

	warehouse := newProvinceWarehouse(t, "WH-79")
	route := newPickupRoute(t, warehouse, "26734")
	route.Deactivate()

	cmd, err := commands.NewRunConsolidationCommand(route.ID())
	require.NoError(t, err)

	consolidationRepo := new(MockConsolidationRouteRepository)
	uow := new(MockConsolidationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ConsolidationRouteRepository").Return(consolidationRepo).Once(),
		consolidationRepo.On("Get", ctx, route.ID()).Return(route, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockConsolidationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRunConsolidationCommandHandler(factory, services.NewChargeableWeightCalculator())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrRouteIsInactive)
}

func TestCreateConsolidationRouteCommandHandler_Handle_WardExclusivity(t *testing.T) {
	ctx := t.Context()

	warehouse := newProvinceWarehouse(t, "WH-79")
	existing := newPickupRoute(t, warehouse, "26734")

	cmd, err := commands.NewCreateConsolidationRouteCommand(
		kernel.NewUUID(), "Competing run", "79",
		[]routing.Stop{{WardCode: "26734", WardOfficeName: "Ward Post 26734", Order: 1}},
		warehouse.ID(), decimal.NewFromInt(100), nil,
	)
	require.NoError(t, err)

	consolidationRepo := new(MockConsolidationRouteRepository)
	officeRepo := new(MockOfficeRepository)
	uow := new(MockConsolidationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OfficeRepository").Return(officeRepo).Once(),
		officeRepo.On("Get", ctx, warehouse.ID()).Return(warehouse, nil).Once(),
		uow.On("ConsolidationRouteRepository").Return(consolidationRepo).Once(),
		consolidationRepo.On("GetAllActive", ctx).
			Return([]*routing.ConsolidationRoute{existing}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockConsolidationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateConsolidationRouteCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.Contains(t, err.Error(), "26734")
}
