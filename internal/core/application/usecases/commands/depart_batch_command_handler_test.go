package commands_test

import (
	"testing"

	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/domain/model/batch"
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memberOrder builds an order sorted into the given batch.
func memberOrder(t *testing.T, b *batch.Batch) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(), "VN"+kernel.NewUUID().String()[:8],
		b.OriginOfficeID(), b.DestinationOfficeID(),
		decimal.NewFromInt(2), 0, 0, 0,
	)
	require.NoError(t, err)
	require.NoError(t, o.TransitionTo(order.AtOriginOffice, "", ""))
	require.NoError(t, b.AddOrder(o.ID(), decimal.NewFromInt(2), decimal.Zero))
	require.NoError(t, o.AssignToBatch(b.ID()))
	require.NoError(t, o.TransitionTo(order.SortedAtOrigin, "", ""))

	return o
}

func TestDepartBatchCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	aggregate := newOpenBatch(t, 0)
	members := []*order.Order{memberOrder(t, aggregate), memberOrder(t, aggregate)}
	require.NoError(t, aggregate.Seal())

	cmd, err := commands.NewDepartBatchCommand(aggregate.ID())
	require.NoError(t, err)

	batchRepo := new(MockBatchRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockBatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		batchRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByBatch", ctx, aggregate.ID()).Return(members, nil).Once(),
		orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Twice(),
		batchRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("ports.Event")).Return(nil).Once()

	h := commands.NewDepartBatchCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, batch.InTransit, aggregate.Status())
	for _, o := range members {
		require.Equal(t, order.InTransitToHub, o.Status())
	}
	batchRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDepartBatchCommandHandler_Handle_NotSealed(t *testing.T) {
	ctx := t.Context()

	aggregate := newOpenBatch(t, 1)
	cmd, err := commands.NewDepartBatchCommand(aggregate.ID())
	require.NoError(t, err)

	batchRepo := new(MockBatchRepository)
	uow := new(MockBatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		batchRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDepartBatchCommandHandler(factory, new(MockEventPublisher))
	require.Error(t, h.Handle(ctx, cmd))
	require.Equal(t, batch.Open, aggregate.Status())
}

func TestDistributeBatchCommandHandler_Handle_ReleasesMembers(t *testing.T) {
	ctx := t.Context()

	aggregate := newOpenBatch(t, 0)
	members := []*order.Order{memberOrder(t, aggregate)}
	require.NoError(t, aggregate.Seal())
	require.NoError(t, aggregate.MarkInTransit())
	require.NoError(t, aggregate.MarkArrived())

	cmd, err := commands.NewDistributeBatchCommand(aggregate.ID())
	require.NoError(t, err)

	batchRepo := new(MockBatchRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockBatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		batchRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByBatch", ctx, aggregate.ID()).Return(members, nil).Once(),
		orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		batchRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("ports.Event")).Return(nil).Once()

	h := commands.NewDistributeBatchCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, batch.Distributed, aggregate.Status())
	require.Nil(t, members[0].BatchID())
}

func TestCancelBatchCommandHandler_Handle_ReturnsOrdersToPool(t *testing.T) {
	ctx := t.Context()

	aggregate := newOpenBatch(t, 0)
	members := []*order.Order{memberOrder(t, aggregate)}

	cmd, err := commands.NewCancelBatchCommand(aggregate.ID())
	require.NoError(t, err)

	batchRepo := new(MockBatchRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockBatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BatchRepository").Return(batchRepo).Once(),
		batchRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByBatch", ctx, aggregate.ID()).Return(members, nil).Once(),
		orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		batchRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelBatchCommandHandler(factory, new(MockEventPublisher))
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, batch.StatusCancelled, aggregate.Status())
	require.Nil(t, members[0].BatchID())
	require.Equal(t, 0, aggregate.OrderCount())
}
