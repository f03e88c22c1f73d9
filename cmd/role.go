package cmd

import (
	"fmt"

	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/pkg/errs"
)

// Role selects which service a process runs.
type Role string

const (
	RoleOrder      Role = "order"
	RoleRestaurant Role = "restaurant"
	RoleDelivery   Role = "delivery"
	RoleAll        Role = "all"
)

// ParseRole accepts order, restaurant, delivery and all.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleOrder, RoleRestaurant, RoleDelivery, RoleAll:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("SERVICE_ROLE",
			fmt.Errorf("%q is not one of order, restaurant, delivery, all", s))
	}
}

// Expand returns the single roles r stands for.
func (r Role) Expand() []Role {
	if r == RoleAll {
		return []Role{RoleOrder, RoleRestaurant, RoleDelivery}
	}
	return []Role{r}
}

// ServiceID is the serviceId the role stamps on status events.
func (r Role) ServiceID() string {
	switch r {
	case RoleOrder:
		return events.OrderService
	case RoleRestaurant:
		return events.RestaurantService
	default:
		return events.DeliveryService
	}
}
