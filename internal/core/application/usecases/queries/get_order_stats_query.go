package queries

import (
	"errors"

	"fooddelivery/internal/pkg/guard"
)

var ErrGetOrderStatsQueryIsNotConstructed = errors.New(
	"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
)

// GetOrderStatsQuery counts orders by status. The kitchen variant also counts
// them by restaurant name.
type GetOrderStatsQuery struct {
	byRestaurant bool

	guard guard.ConstructorGuard
}

// NewGetOrderStatsQuery counts by status only.
func NewGetOrderStatsQuery() GetOrderStatsQuery {
	return GetOrderStatsQuery{guard: guard.NewConstructorGuard()}
}

// NewGetKitchenStatsQuery also counts by restaurant.
func NewGetKitchenStatsQuery() GetOrderStatsQuery {
	return GetOrderStatsQuery{byRestaurant: true, guard: guard.NewConstructorGuard()}
}

// Validate reports a zero-value query.
func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

// ByRestaurant reports whether per-restaurant counts are wanted.
func (q GetOrderStatsQuery) ByRestaurant() bool {
	return q.byRestaurant
}

// OrderStatsResponse keys ByStatus by wire status. ByRestaurant is nil unless
// requested.
type OrderStatsResponse struct {
	Total        int
	ByStatus     map[string]int
	ByRestaurant map[string]int
}
