package queries

import (
	"context"
	"errors"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// GetOrderQueryHandler returns errs.ErrObjectNotFound for unknown orders.
// When built with a restaurant catalogue the response carries the restaurant.
type GetOrderQueryHandler struct {
	orders      ports.OrderRepository
	restaurants ports.RestaurantRepository
}

// NewGetOrderQueryHandler returns a handler over orders.
func NewGetOrderQueryHandler(orders ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

// NewGetKitchenOrderQueryHandler reads the kitchen projection and attaches the
// restaurant to each order.
func NewGetKitchenOrderQueryHandler(
	orders ports.OrderRepository,
	restaurants ports.RestaurantRepository,
) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, restaurants: restaurants}
}

// Handle returns the order or an errs.ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}

	resp := orderResponse(o)
	if h.restaurants != nil {
		r, err := attachRestaurant(ctx, h.restaurants, o.RestaurantID())
		if err != nil {
			return OrderResponse{}, err
		}
		resp.Restaurant = r
	}
	return resp, nil
}

// attachRestaurant returns nil for restaurants outside the catalogue.
func attachRestaurant(ctx context.Context, restaurants ports.RestaurantRepository, id string) (*RestaurantResponse, error) {
	r, err := restaurants.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil //nolint:nilnil // unknown restaurant is not an error here
	}
	if err != nil {
		return nil, err
	}
	resp := restaurantResponse(r)
	return &resp, nil
}
