package commands

import (
	"context"
	"errors"
	"log/slog"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// RegisterKitchenOrderCommandHandler seeds the kitchen projection from
// ORDER_CREATED events. Orders for restaurants outside the catalogue and
// repeated announcements are ignored.
type RegisterKitchenOrderCommandHandler struct {
	orders      ports.OrderRepository
	restaurants ports.RestaurantRepository
	logger      *slog.Logger
}

// NewRegisterKitchenOrderCommandHandler returns a handler that only accepts
// orders for restaurants in the catalog.
func NewRegisterKitchenOrderCommandHandler(
	orders ports.OrderRepository,
	restaurants ports.RestaurantRepository,
	logger *slog.Logger,
) RegisterKitchenOrderCommandHandler {
	return RegisterKitchenOrderCommandHandler{
		orders:      orders,
		restaurants: restaurants,
		logger:      logger.With("component", "register-kitchen-order"),
	}
}

// Handle stores the announced order in the kitchen projection. Orders for
// unknown restaurants and repeated announcements are ignored.
func (h RegisterKitchenOrderCommandHandler) Handle(ctx context.Context, command RegisterKitchenOrderCommand) (Outcome, error) {
	if err := command.Validate(); err != nil {
		return Applied, err
	}

	o := command.Order()
	r, err := h.restaurants.Get(ctx, o.RestaurantID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.DebugContext(ctx, "order for another restaurant ignored",
			"orderId", o.ID().String(), "restaurantId", o.RestaurantID())
		return IgnoredUnknownRestaurant, nil
	}
	if err != nil {
		return Applied, err
	}

	err = h.orders.Add(ctx, o)
	if errors.Is(err, ports.ErrAlreadyExists) {
		h.logger.InfoContext(ctx, "order already registered", "orderId", o.ID().String())
		return IgnoredDuplicate, nil
	}
	if err != nil {
		return Applied, err
	}

	h.logger.InfoContext(ctx, "new order received",
		"orderId", o.ID().String(), "restaurant", r.Name())
	return Applied, nil
}
