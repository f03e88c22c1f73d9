package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// OverrideKitchenOrderStatusCommandHandler sets a kitchen order to any status,
// bypassing the step guards, and announces the change.
type OverrideKitchenOrderStatusCommandHandler struct {
	orders      ports.OrderRepository
	restaurants ports.RestaurantRepository
	publisher   ports.EventPublisher
	logger      *slog.Logger
}

// NewOverrideKitchenOrderStatusCommandHandler returns a handler over orders
// and publisher.
func NewOverrideKitchenOrderStatusCommandHandler(
	orders ports.OrderRepository,
	restaurants ports.RestaurantRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) OverrideKitchenOrderStatusCommandHandler {
	return OverrideKitchenOrderStatusCommandHandler{
		orders:      orders,
		restaurants: restaurants,
		publisher:   publisher,
		logger:      logger.With("component", "override-kitchen-status"),
	}
}

// Handle stores the status and publishes it, whatever the current status is.
func (h OverrideKitchenOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command OverrideKitchenOrderStatusCommand,
) (Outcome, error) {
	if err := command.Validate(); err != nil {
		return Applied, err
	}

	now := time.Now().UTC()
	updated, err := h.orders.Modify(ctx, command.OrderID(), func(o *order.Order) error {
		return o.ApplyStatus(command.Status(), now)
	})
	if errors.Is(err, errs.ErrObjectNotFound) {
		return IgnoredUnknownOrder, nil
	}
	if err != nil {
		return Applied, err
	}

	if err = publishKitchenStatus(ctx, h.publisher, h.restaurants, updated); err != nil {
		return Applied, err
	}

	h.logger.InfoContext(ctx, "order status overridden",
		"orderId", updated.ID().String(), "status", updated.Status().String())
	return Applied, nil
}
