package commands_test

import (
	"errors"
	"testing"

	"fooddelivery/internal/adapters/out/messaging"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle(t *testing.T) {
	t.Run("stores the order then announces it", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCreateOrderCommand("customer-1", "rest-1", ramenAndGyoza())
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		publisher := new(MockEventPublisher)
		var announced events.OrderCreatedEvent
		mock.InOrder(
			repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
			publisher.On("Publish", ctx, events.TopicOrders, mock.AnythingOfType("events.OrderCreatedEvent")).
				Run(func(args mock.Arguments) { announced = args.Get(2).(events.OrderCreatedEvent) }).
				Return(nil).Once(),
		)

		h := commands.NewCreateOrderCommandHandler(repo, publisher, discardLogger())
		o, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Created, o.Status())
		assert.True(t, decimal.NewFromInt(1800).Equal(o.TotalPrice()))
		assert.Equal(t, o.ID().String(), announced.ID)
		assert.Equal(t, events.EventTypeOrderCreated, announced.EventType)
		assert.InDelta(t, 1800.0, announced.TotalPrice, 1e-9)
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("publish failure keeps the order and returns the error", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCreateOrderCommand("customer-1", "rest-1", ramenAndGyoza())
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
		publisher := new(MockEventPublisher)
		publisher.On("Publish", ctx, events.TopicOrders, mock.Anything).
			Return(messaging.NewPublishFailureError(events.TopicOrders, errors.New("broker down"))).Once()

		h := commands.NewCreateOrderCommandHandler(repo, publisher, discardLogger())
		o, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, messaging.ErrPublishFailure)
		require.NotNil(t, o)
		repo.AssertExpectations(t)
	})

	t.Run("store failure publishes nothing", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCreateOrderCommand("customer-1", "rest-1", ramenAndGyoza())
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		repo.On("Add", ctx, mock.Anything).Return(errors.New("add error")).Once()
		publisher := new(MockEventPublisher)

		h := commands.NewCreateOrderCommandHandler(repo, publisher, discardLogger())
		_, err = h.Handle(ctx, cmd)

		require.Error(t, err)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unconstructed command", func(t *testing.T) {
		h := commands.NewCreateOrderCommandHandler(new(MockOrderRepository), new(MockEventPublisher), discardLogger())

		_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})

		require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
