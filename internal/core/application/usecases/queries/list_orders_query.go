package queries

import (
	"errors"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery or NewListKitchenOrdersQuery constructor",
)

// ListOrdersQuery lists orders oldest first.
//
// Example:
//
//	all := NewListOrdersQuery("")              // every order
//	mine := NewListOrdersQuery("customer-1")   // one customer
//	active := NewListKitchenOrdersQuery("")    // kitchen: not yet delivered
type ListOrdersQuery struct {
	filter ports.OrderFilter

	guard guard.ConstructorGuard
}

// NewListOrdersQuery lists every order, or only customerID's when it is set.
func NewListOrdersQuery(customerID string) ListOrdersQuery {
	return ListOrdersQuery{
		filter: ports.OrderFilter{CustomerID: customerID},
		guard:  guard.NewConstructorGuard(),
	}
}

// NewListKitchenOrdersQuery lists the kitchen's active orders. With a
// restaurantID it lists every order of that restaurant instead, delivered
// ones included.
func NewListKitchenOrdersQuery(restaurantID string) ListOrdersQuery {
	return ListOrdersQuery{
		filter: ports.OrderFilter{RestaurantID: restaurantID, ActiveOnly: restaurantID == ""},
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate reports a zero-value query.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Filter returns the repository filter of the query.
func (q ListOrdersQuery) Filter() ports.OrderFilter {
	return q.filter
}
