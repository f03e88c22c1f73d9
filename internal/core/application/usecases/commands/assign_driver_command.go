package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand asks dispatch to send a driver to an order that is ready
// for pickup. restaurantID may be empty; the restaurant geocoder's fallback
// policy then decides the pickup point.
type AssignDriverCommand struct {
	orderID      kernel.UUID
	restaurantID string

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand builds the command for a READY order.
func NewAssignDriverCommand(orderID kernel.UUID, restaurantID string) (AssignDriverCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		orderID:      orderID,
		restaurantID: restaurantID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate reports ErrAssignDriverCommandIsNotConstructed for a zero value.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// OrderID is the order to deliver.
func (c AssignDriverCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RestaurantID locates the pickup. It may be empty when the event carried no
// restaurant.
func (c AssignDriverCommand) RestaurantID() string {
	return c.restaurantID
}
