package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/restaurant"
)

// RestaurantRepository serves the kitchen's restaurant catalogue.
type RestaurantRepository interface {
	Get(ctx context.Context, id string) (*restaurant.Restaurant, error)
	List(ctx context.Context) ([]*restaurant.Restaurant, error)
}
