package commands_test

import (
	"testing"

	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/order"
	"postal/internal/core/domain/model/staff"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTransitionOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), "VN000000002",
		kernel.NewUUID(), kernel.NewUUID(),
		decimal.NewFromInt(1), 0, 0, 0,
	)
	require.NoError(t, err)

	actor := newActor(t, staff.Clerk, kernel.NewUUID())
	cmd, err := commands.NewTransitionOrderCommand(
		aggregate.ID(), order.PickedUp, "collected by courier", "HN001", actor,
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("ports.Event")).Return(nil).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, order.PickedUp, aggregate.Status())
	require.Len(t, aggregate.History(), 2)
}

func TestTransitionOrderCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), "VN000000003",
		kernel.NewUUID(), kernel.NewUUID(),
		decimal.NewFromInt(1), 0, 0, 0,
	)
	require.NoError(t, err)

	cmd, err := commands.NewTransitionOrderCommand(
		aggregate.ID(), order.Delivered, "", "", newActor(t, staff.Clerk, kernel.NewUUID()),
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, new(MockEventPublisher))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrIllegalTransition)
	require.Equal(t, order.Created, aggregate.Status())
}
