package commands

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// CreateOrderCommandHandler stores a new order and announces it on the orders topic.
type CreateOrderCommandHandler struct {
	orders    ports.OrderRepository
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewCreateOrderCommandHandler returns a handler that stores orders and
// announces them on publisher.
func NewCreateOrderCommandHandler(
	orders ports.OrderRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		orders:    orders,
		publisher: publisher,
		logger:    logger.With("component", "create-order"),
	}
}

// Handle stores the order in CREATED status and publishes ORDER_CREATED.
// When publishing fails the order stays stored and is returned together with
// the publish error.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o, err := order.NewOrder(kernel.NewUUID(), command.CustomerID(), command.RestaurantID(), command.Items(), now)
	if err != nil {
		return nil, err
	}

	if err = h.orders.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = h.publisher.Publish(ctx, events.TopicOrders, events.NewOrderCreatedEvent(o, now)); err != nil {
		h.logger.ErrorContext(ctx, "order stored but not announced",
			"orderId", o.ID().String(), "error", err)
		return o, err
	}

	h.logger.InfoContext(ctx, "order created",
		"orderId", o.ID().String(),
		"restaurantId", o.RestaurantID(),
		"totalPrice", o.TotalPrice().String())
	return o, nil
}
