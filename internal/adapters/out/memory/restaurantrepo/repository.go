// Package restaurantrepo serves the kitchen's restaurant catalogue from memory.
package restaurantrepo

import (
	"context"

	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// Repository is a read-only ports.RestaurantRepository.
type Repository struct {
	restaurants []*restaurant.Restaurant
	byID        map[string]*restaurant.Restaurant
}

var _ ports.RestaurantRepository = (*Repository)(nil)

// NewRepository indexes restaurants. Later entries win on duplicate ids.
func NewRepository(restaurants []*restaurant.Restaurant) *Repository {
	r := &Repository{byID: make(map[string]*restaurant.Restaurant, len(restaurants))}
	for _, rest := range restaurants {
		if _, dup := r.byID[rest.ID()]; !dup {
			r.restaurants = append(r.restaurants, rest)
		}
		r.byID[rest.ID()] = rest
	}
	return r
}

// Get returns the catalog entry of id.
func (r *Repository) Get(_ context.Context, id string) (*restaurant.Restaurant, error) {
	rest, ok := r.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("restaurant", id)
	}
	return rest.Clone(), nil
}

// List returns the catalog in seed order.
func (r *Repository) List(_ context.Context) ([]*restaurant.Restaurant, error) {
	out := make([]*restaurant.Restaurant, 0, len(r.restaurants))
	for _, rest := range r.restaurants {
		out = append(out, r.byID[rest.ID()].Clone())
	}
	return out, nil
}
