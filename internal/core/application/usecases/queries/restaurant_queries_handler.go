package queries

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// ListRestaurantsQueryHandler reads the catalog.
type ListRestaurantsQueryHandler struct {
	restaurants ports.RestaurantRepository
}

// NewListRestaurantsQueryHandler returns a handler over restaurants.
func NewListRestaurantsQueryHandler(restaurants ports.RestaurantRepository) ListRestaurantsQueryHandler {
	return ListRestaurantsQueryHandler{restaurants: restaurants}
}

// Handle returns the whole catalog.
func (h ListRestaurantsQueryHandler) Handle(ctx context.Context, query ListRestaurantsQuery) ([]RestaurantResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	restaurants, err := h.restaurants.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]RestaurantResponse, 0, len(restaurants))
	for _, r := range restaurants {
		resp = append(resp, restaurantResponse(r))
	}
	return resp, nil
}

// GetRestaurantQueryHandler reads one catalog entry.
type GetRestaurantQueryHandler struct {
	restaurants ports.RestaurantRepository
}

// NewGetRestaurantQueryHandler returns a handler over restaurants.
func NewGetRestaurantQueryHandler(restaurants ports.RestaurantRepository) GetRestaurantQueryHandler {
	return GetRestaurantQueryHandler{restaurants: restaurants}
}

// Handle returns the restaurant or an errs.ObjectNotFoundError.
func (h GetRestaurantQueryHandler) Handle(ctx context.Context, query GetRestaurantQuery) (RestaurantResponse, error) {
	if err := query.Validate(); err != nil {
		return RestaurantResponse{}, err
	}

	r, err := h.restaurants.Get(ctx, query.RestaurantID())
	if err != nil {
		return RestaurantResponse{}, err
	}
	return restaurantResponse(r), nil
}
