package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrRegisterKitchenOrderCommandIsNotConstructed = errors.New(
	"RegisterKitchenOrderCommand must be created via NewRegisterKitchenOrderCommand constructor",
)

// RegisterKitchenOrderCommand adds an announced order to the kitchen projection.
type RegisterKitchenOrderCommand struct {
	snapshot *order.Order

	guard guard.ConstructorGuard
}

// NewRegisterKitchenOrderCommand wraps the order snapshot of an order-created
// event.
func NewRegisterKitchenOrderCommand(snapshot *order.Order) (RegisterKitchenOrderCommand, error) {
	if snapshot == nil {
		return RegisterKitchenOrderCommand{}, errs.NewValueIsRequiredError("order")
	}
	if err := snapshot.Validate(); err != nil {
		return RegisterKitchenOrderCommand{}, err
	}

	return RegisterKitchenOrderCommand{
		snapshot: snapshot.Clone(),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate reports ErrRegisterKitchenOrderCommandIsNotConstructed for a zero
// value.
func (c RegisterKitchenOrderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterKitchenOrderCommandIsNotConstructed)
}

// Order is the announced snapshot.
func (c RegisterKitchenOrderCommand) Order() *order.Order {
	return c.snapshot.Clone()
}
