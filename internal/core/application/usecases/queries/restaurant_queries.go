package queries

import (
	"errors"
	"strings"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrListRestaurantsQueryIsNotConstructed = errors.New(
		"ListRestaurantsQuery must be created via NewListRestaurantsQuery constructor",
	)
	ErrGetRestaurantQueryIsNotConstructed = errors.New(
		"GetRestaurantQuery must be created via NewGetRestaurantQuery constructor",
	)
)

// ListRestaurantsQuery asks for the catalog.
type ListRestaurantsQuery struct {
	guard guard.ConstructorGuard
}

// NewListRestaurantsQuery returns the query.
func NewListRestaurantsQuery() ListRestaurantsQuery {
	return ListRestaurantsQuery{guard: guard.NewConstructorGuard()}
}

// Validate reports a zero-value query.
func (q ListRestaurantsQuery) Validate() error {
	return q.guard.Validate(ErrListRestaurantsQueryIsNotConstructed)
}

// GetRestaurantQuery asks for one restaurant.
type GetRestaurantQuery struct {
	restaurantID string

	guard guard.ConstructorGuard
}

// NewGetRestaurantQuery requires a non-empty restaurant id.
func NewGetRestaurantQuery(restaurantID string) (GetRestaurantQuery, error) {
	if strings.TrimSpace(restaurantID) == "" {
		return GetRestaurantQuery{}, errs.NewValueIsRequiredError("restaurantID")
	}
	return GetRestaurantQuery{restaurantID: restaurantID, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports a zero-value query.
func (q GetRestaurantQuery) Validate() error {
	return q.guard.Validate(ErrGetRestaurantQueryIsNotConstructed)
}

// RestaurantID is the restaurant to read.
func (q GetRestaurantQuery) RestaurantID() string {
	return q.restaurantID
}
