package commands_test

import (
	"errors"
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAdvanceKitchenOrderCommand(t *testing.T) {
	t.Run("rejects an unknown step", func(t *testing.T) {
		_, err := commands.NewAdvanceKitchenOrderCommand(kernel.NewUUID(), commands.KitchenStep(9))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects a missing order id", func(t *testing.T) {
		_, err := commands.NewAdvanceKitchenOrderCommand(kernel.UUID{}, commands.StepAccept)
		require.Error(t, err)
	})
}

func TestAdvanceKitchenOrderCommandHandler_Handle(t *testing.T) {
	ramenHouse := restaurant.Catalog()[0]

	steps := []struct {
		step commands.KitchenStep
		from order.Status
		to   order.Status
	}{
		{commands.StepAccept, order.Created, order.Accepted},
		{commands.StepStartPreparation, order.Accepted, order.Preparing},
		{commands.StepMarkReady, order.Preparing, order.Ready},
	}
	for _, tc := range steps {
		t.Run(tc.step.String()+" publishes the new status", func(t *testing.T) {
			ctx := t.Context()
			stored := newOrderInStatus(t, ramenHouse.ID(), tc.from)
			cmd, err := commands.NewAdvanceKitchenOrderCommand(stored.ID(), tc.step)
			require.NoError(t, err)

			orders := new(MockOrderRepository)
			orders.On("Modify", ctx, stored.ID()).Return(stored, nil).Once()
			restaurants := new(MockRestaurantRepository)
			restaurants.On("Get", ctx, ramenHouse.ID()).Return(ramenHouse, nil).Once()
			publisher := new(MockEventPublisher)
			var published events.OrderStatusEvent
			publisher.On("Publish", ctx, events.TopicOrderStatus, mock.AnythingOfType("events.OrderStatusEvent")).
				Run(func(args mock.Arguments) { published = args.Get(2).(events.OrderStatusEvent) }).
				Return(nil).Once()

			h := commands.NewAdvanceKitchenOrderCommandHandler(orders, restaurants, publisher, discardLogger())
			outcome, err := h.Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, commands.Applied, outcome)
			assert.Equal(t, stored.ID().String(), published.OrderID)
			assert.Equal(t, tc.to.String(), published.Status)
			assert.Equal(t, events.RestaurantService, published.ServiceID)
			require.NotNil(t, published.Metadata)
			assert.Equal(t, ramenHouse.ID(), published.Metadata.RestaurantID)
			assert.Equal(t, "Tokyo Ramen House", published.Metadata.RestaurantName)
			publisher.AssertExpectations(t)
		})
	}

	t.Run("wrong source status publishes nothing", func(t *testing.T) {
		ctx := t.Context()
		stored := newOrderInStatus(t, ramenHouse.ID(), order.Accepted)
		cmd, err := commands.NewAdvanceKitchenOrderCommand(stored.ID(), commands.StepAccept)
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("Modify", ctx, stored.ID()).Return(stored, nil).Once()
		publisher := new(MockEventPublisher)

		h := commands.NewAdvanceKitchenOrderCommandHandler(orders, new(MockRestaurantRepository), publisher, discardLogger())
		outcome, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.IgnoredPrecondition, outcome)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown order", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		cmd, err := commands.NewAdvanceKitchenOrderCommand(id, commands.StepMarkReady)
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("Modify", ctx, id).Return(nil, errs.NewObjectNotFoundError("orderID", id)).Once()

		h := commands.NewAdvanceKitchenOrderCommandHandler(orders, new(MockRestaurantRepository), new(MockEventPublisher), discardLogger())
		outcome, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.IgnoredUnknownOrder, outcome)
	})

	t.Run("publish failure is returned", func(t *testing.T) {
		ctx := t.Context()
		stored := newOrderInStatus(t, ramenHouse.ID(), order.Created)
		cmd, err := commands.NewAdvanceKitchenOrderCommand(stored.ID(), commands.StepAccept)
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("Modify", ctx, stored.ID()).Return(stored, nil).Once()
		restaurants := new(MockRestaurantRepository)
		restaurants.On("Get", ctx, ramenHouse.ID()).Return(ramenHouse, nil).Once()
		publisher := new(MockEventPublisher)
		publisher.On("Publish", ctx, events.TopicOrderStatus, mock.Anything).Return(errors.New("broker down")).Once()

		h := commands.NewAdvanceKitchenOrderCommandHandler(orders, restaurants, publisher, discardLogger())
		_, err = h.Handle(ctx, cmd)

		require.Error(t, err)
	})
}

func TestOverrideKitchenOrderStatusCommandHandler_Handle(t *testing.T) {
	ramenHouse := restaurant.Catalog()[0]

	t.Run("sets any status and publishes it", func(t *testing.T) {
		ctx := t.Context()
		stored := newOrderInStatus(t, ramenHouse.ID(), order.Ready)
		cmd, err := commands.NewOverrideKitchenOrderStatusCommand(stored.ID(), order.Accepted)
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("Modify", ctx, stored.ID()).Return(stored, nil).Once()
		restaurants := new(MockRestaurantRepository)
		restaurants.On("Get", ctx, ramenHouse.ID()).Return(ramenHouse, nil).Once()
		publisher := new(MockEventPublisher)
		publisher.On("Publish", ctx, events.TopicOrderStatus, mock.MatchedBy(func(e events.OrderStatusEvent) bool {
			return e.Status == "ACCEPTED" && e.ServiceID == events.RestaurantService
		})).Return(nil).Once()

		h := commands.NewOverrideKitchenOrderStatusCommandHandler(orders, restaurants, publisher, discardLogger())
		outcome, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.Applied, outcome)
		publisher.AssertExpectations(t)
	})

	t.Run("unknown order", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		cmd, err := commands.NewOverrideKitchenOrderStatusCommand(id, order.Ready)
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("Modify", ctx, id).Return(nil, errs.NewObjectNotFoundError("orderID", id)).Once()

		h := commands.NewOverrideKitchenOrderStatusCommandHandler(orders, new(MockRestaurantRepository), new(MockEventPublisher), discardLogger())
		outcome, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.IgnoredUnknownOrder, outcome)
	})

	t.Run("rejects an invalid status", func(t *testing.T) {
		_, err := commands.NewOverrideKitchenOrderStatusCommand(kernel.NewUUID(), order.Status(42))
		require.Error(t, err)
	})
}
