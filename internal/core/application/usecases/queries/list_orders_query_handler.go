package queries

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// ListOrdersQueryHandler lists orders of one projection.
type ListOrdersQueryHandler struct {
	orders      ports.OrderRepository
	restaurants ports.RestaurantRepository
}

// NewListOrdersQueryHandler returns a handler over orders.
func NewListOrdersQueryHandler(orders ports.OrderRepository) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders}
}

// NewListKitchenOrdersQueryHandler attaches the restaurant to each order.
func NewListKitchenOrdersQueryHandler(
	orders ports.OrderRepository,
	restaurants ports.RestaurantRepository,
) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders, restaurants: restaurants}
}

// Handle returns the orders matching the query filter.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.List(ctx, query.Filter())
	if err != nil {
		return nil, err
	}

	resp := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		item := orderResponse(o)
		if h.restaurants != nil {
			if item.Restaurant, err = attachRestaurant(ctx, h.restaurants, o.RestaurantID()); err != nil {
				return nil, err
			}
		}
		resp = append(resp, item)
	}
	return resp, nil
}
