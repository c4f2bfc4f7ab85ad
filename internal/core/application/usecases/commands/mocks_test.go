package commands_test

import (
	"context"
	"testing"

	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/domain/model/batch"
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/office"
	"postal/internal/core/domain/model/order"
	"postal/internal/core/domain/model/routing"
	"postal/internal/core/domain/model/staff"
	"postal/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newActor builds a staff actor for command construction in tests.
func newActor(t *testing.T, role staff.Role, officeID kernel.UUID) staff.Actor {
	t.Helper()

	actor, err := staff.NewActor(kernel.NewUUID(), role, officeID)
	require.NoError(t, err)
	return actor
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*order.Order, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetUnbatchedAtOffice(ctx context.Context, originOfficeID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, originOfficeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByBatch(ctx context.Context, batchID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockBatchRepository struct{ mock.Mock }

func (m *MockBatchRepository) Add(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Update(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*batch.Batch), args.Error(1)
}

func (m *MockBatchRepository) GetByCode(ctx context.Context, code string) (*batch.Batch, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*batch.Batch), args.Error(1)
}

func (m *MockBatchRepository) GetOpenByOfficePair(ctx context.Context, originOfficeID, destinationOfficeID kernel.UUID) ([]*batch.Batch, error) {
	args := m.Called(ctx, originOfficeID, destinationOfficeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*batch.Batch), args.Error(1)
}

func (m *MockBatchRepository) GetAllOpen(ctx context.Context) ([]*batch.Batch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*batch.Batch), args.Error(1)
}

func (m *MockBatchRepository) GetSealedOrInTransit(ctx context.Context) ([]*batch.Batch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*batch.Batch), args.Error(1)
}

type MockOfficeRepository struct{ mock.Mock }

func (m *MockOfficeRepository) Add(ctx context.Context, o *office.Office) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOfficeRepository) Update(ctx context.Context, o *office.Office) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOfficeRepository) Get(ctx context.Context, id kernel.UUID) (*office.Office, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*office.Office), args.Error(1)
}

func (m *MockOfficeRepository) GetByCode(ctx context.Context, code string) (*office.Office, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*office.Office), args.Error(1)
}

func (m *MockOfficeRepository) GetAll(ctx context.Context) ([]*office.Office, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*office.Office), args.Error(1)
}

type MockTransferRouteRepository struct{ mock.Mock }

func (m *MockTransferRouteRepository) Add(ctx context.Context, r *routing.TransferRoute) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockTransferRouteRepository) Update(ctx context.Context, r *routing.TransferRoute) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockTransferRouteRepository) Get(ctx context.Context, id kernel.UUID) (*routing.TransferRoute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*routing.TransferRoute), args.Error(1)
}

func (m *MockTransferRouteRepository) GetAll(ctx context.Context) ([]*routing.TransferRoute, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*routing.TransferRoute), args.Error(1)
}

func (m *MockTransferRouteRepository) GetByOffice(ctx context.Context, officeID kernel.UUID) ([]*routing.TransferRoute, error) {
	args := m.Called(ctx, officeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*routing.TransferRoute), args.Error(1)
}

type MockDisruptionRepository struct{ mock.Mock }

func (m *MockDisruptionRepository) Add(ctx context.Context, d *routing.RouteDisruption) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDisruptionRepository) Update(ctx context.Context, d *routing.RouteDisruption) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDisruptionRepository) Get(ctx context.Context, id kernel.UUID) (*routing.RouteDisruption, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*routing.RouteDisruption), args.Error(1)
}

func (m *MockDisruptionRepository) GetActive(ctx context.Context) ([]*routing.RouteDisruption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*routing.RouteDisruption), args.Error(1)
}

func (m *MockDisruptionRepository) GetByRoute(ctx context.Context, routeID kernel.UUID) ([]*routing.RouteDisruption, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*routing.RouteDisruption), args.Error(1)
}

type MockConsolidationRouteRepository struct{ mock.Mock }

func (m *MockConsolidationRouteRepository) Add(ctx context.Context, r *routing.ConsolidationRoute) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockConsolidationRouteRepository) Update(ctx context.Context, r *routing.ConsolidationRoute) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockConsolidationRouteRepository) Get(ctx context.Context, id kernel.UUID) (*routing.ConsolidationRoute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*routing.ConsolidationRoute), args.Error(1)
}

func (m *MockConsolidationRouteRepository) GetByProvince(ctx context.Context, provinceCode string) ([]*routing.ConsolidationRoute, error) {
	args := m.Called(ctx, provinceCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*routing.ConsolidationRoute), args.Error(1)
}

func (m *MockConsolidationRouteRepository) GetAllActive(ctx context.Context) ([]*routing.ConsolidationRoute, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*routing.ConsolidationRoute), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockBatchUoW struct{ mock.Mock }

func (m *MockBatchUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBatchUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBatchUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBatchUoW) BatchRepository() ports.BatchRepository {
	args := m.Called()
	return args.Get(0).(ports.BatchRepository)
}

func (m *MockBatchUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockBatchUoW) OfficeRepository() ports.OfficeRepository {
	args := m.Called()
	return args.Get(0).(ports.OfficeRepository)
}

type MockBatchUoWFactory struct{ mock.Mock }

func (m *MockBatchUoWFactory) Create() commands.BatchUoW {
	args := m.Called()
	return args.Get(0).(commands.BatchUoW)
}

type MockRouteUoW struct{ mock.Mock }

func (m *MockRouteUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRouteUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRouteUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRouteUoW) TransferRouteRepository() ports.TransferRouteRepository {
	args := m.Called()
	return args.Get(0).(ports.TransferRouteRepository)
}

func (m *MockRouteUoW) DisruptionRepository() ports.DisruptionRepository {
	args := m.Called()
	return args.Get(0).(ports.DisruptionRepository)
}

func (m *MockRouteUoW) BatchRepository() ports.BatchRepository {
	args := m.Called()
	return args.Get(0).(ports.BatchRepository)
}

func (m *MockRouteUoW) OfficeRepository() ports.OfficeRepository {
	args := m.Called()
	return args.Get(0).(ports.OfficeRepository)
}

type MockRouteUoWFactory struct{ mock.Mock }

func (m *MockRouteUoWFactory) Create() commands.RouteUoW {
	args := m.Called()
	return args.Get(0).(commands.RouteUoW)
}

type MockConsolidationUoW struct{ mock.Mock }

func (m *MockConsolidationUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockConsolidationUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockConsolidationUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockConsolidationUoW) ConsolidationRouteRepository() ports.ConsolidationRouteRepository {
	args := m.Called()
	return args.Get(0).(ports.ConsolidationRouteRepository)
}

func (m *MockConsolidationUoW) OfficeRepository() ports.OfficeRepository {
	args := m.Called()
	return args.Get(0).(ports.OfficeRepository)
}

func (m *MockConsolidationUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockConsolidationUoWFactory struct{ mock.Mock }

func (m *MockConsolidationUoWFactory) Create() commands.ConsolidationUoW {
	args := m.Called()
	return args.Get(0).(commands.ConsolidationUoW)
}
