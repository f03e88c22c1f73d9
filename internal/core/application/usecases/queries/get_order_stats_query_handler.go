package queries

import (
	"context"
	"errors"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// UnknownRestaurantName labels orders whose restaurant is not in the catalogue.
const UnknownRestaurantName = "Unknown"

// GetOrderStatsQueryHandler counts the orders of one projection.
type GetOrderStatsQueryHandler struct {
	orders      ports.OrderRepository
	restaurants ports.RestaurantRepository
}

// NewGetOrderStatsQueryHandler takes a nil restaurants repository when only
// status counts are needed.
func NewGetOrderStatsQueryHandler(
	orders ports.OrderRepository,
	restaurants ports.RestaurantRepository,
) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{orders: orders, restaurants: restaurants}
}

// Handle counts orders by status and, for the kitchen, by restaurant name.
func (h GetOrderStatsQueryHandler) Handle(ctx context.Context, query GetOrderStatsQuery) (OrderStatsResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderStatsResponse{}, err
	}
	if query.ByRestaurant() && h.restaurants == nil {
		return OrderStatsResponse{}, errs.NewValueIsRequiredError("restaurants")
	}

	orders, err := h.orders.List(ctx, ports.OrderFilter{})
	if err != nil {
		return OrderStatsResponse{}, err
	}

	stats := OrderStatsResponse{Total: len(orders), ByStatus: make(map[string]int)}
	if query.ByRestaurant() {
		stats.ByRestaurant = make(map[string]int)
	}

	names := make(map[string]string)
	for _, o := range orders {
		stats.ByStatus[o.Status().String()]++
		if !query.ByRestaurant() {
			continue
		}

		name, ok := names[o.RestaurantID()]
		if !ok {
			name, err = h.restaurantName(ctx, o.RestaurantID())
			if err != nil {
				return OrderStatsResponse{}, err
			}
			names[o.RestaurantID()] = name
		}
		stats.ByRestaurant[name]++
	}
	return stats, nil
}

func (h GetOrderStatsQueryHandler) restaurantName(ctx context.Context, id string) (string, error) {
	r, err := h.restaurants.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return UnknownRestaurantName, nil
	}
	if err != nil {
		return "", err
	}
	return r.Name(), nil
}
