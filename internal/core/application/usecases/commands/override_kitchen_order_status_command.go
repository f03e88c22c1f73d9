package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrOverrideKitchenOrderStatusCommandIsNotConstructed = errors.New(
	"OverrideKitchenOrderStatusCommand must be created via NewOverrideKitchenOrderStatusCommand constructor",
)

// OverrideKitchenOrderStatusCommand sets any valid status on a kitchen order.
// It is the dashboard's manual correction and bypasses the kitchen workflow.
type OverrideKitchenOrderStatusCommand struct {
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

// NewOverrideKitchenOrderStatusCommand validates the order id and status.
func NewOverrideKitchenOrderStatusCommand(orderID kernel.UUID, status order.Status) (OverrideKitchenOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), status.Validate()); err != nil {
		return OverrideKitchenOrderStatusCommand{}, err
	}

	return OverrideKitchenOrderStatusCommand{
		orderID: orderID,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate reports ErrOverrideKitchenOrderStatusCommandIsNotConstructed for a
// zero value.
func (c OverrideKitchenOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrOverrideKitchenOrderStatusCommandIsNotConstructed)
}

// OrderID is the kitchen order to change.
func (c OverrideKitchenOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status is the status to store.
func (c OverrideKitchenOrderStatusCommand) Status() order.Status {
	return c.status
}
