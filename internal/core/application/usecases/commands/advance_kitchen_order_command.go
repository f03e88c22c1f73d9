package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrAdvanceKitchenOrderCommandIsNotConstructed = errors.New(
	"AdvanceKitchenOrderCommand must be created via NewAdvanceKitchenOrderCommand constructor",
)

// KitchenStep is one manual step of the kitchen workflow.
type KitchenStep int

const (
	StepAccept KitchenStep = iota + 1
	StepStartPreparation
	StepMarkReady
)

// String returns the verb of the step, as used in messages.
func (s KitchenStep) String() string {
	switch s {
	case StepAccept:
		return "accept"
	case StepStartPreparation:
		return "start preparation"
	case StepMarkReady:
		return "mark ready"
	default:
		return "unknown"
	}
}

// Validate rejects values outside the three steps.
func (s KitchenStep) Validate() error {
	switch s {
	case StepAccept, StepStartPreparation, StepMarkReady:
		return nil
	default:
		return errs.NewValueIsOutOfRangeError("step", int(s), int(StepAccept), int(StepMarkReady))
	}
}

// AdvanceKitchenOrderCommand applies one kitchen step to an order.
//
// Example:
//
//	cmd, _ := NewAdvanceKitchenOrderCommand(orderID, StepAccept)
//	outcome, err := handler.Handle(ctx, cmd)
//	if err == nil && outcome == IgnoredPrecondition {
//	    // the order was not CREATED
//	}
type AdvanceKitchenOrderCommand struct {
	orderID kernel.UUID
	step    KitchenStep

	guard guard.ConstructorGuard
}

// NewAdvanceKitchenOrderCommand validates the order id and step.
func NewAdvanceKitchenOrderCommand(orderID kernel.UUID, step KitchenStep) (AdvanceKitchenOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), step.Validate()); err != nil {
		return AdvanceKitchenOrderCommand{}, err
	}

	return AdvanceKitchenOrderCommand{
		orderID: orderID,
		step:    step,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate reports ErrAdvanceKitchenOrderCommandIsNotConstructed for a zero
// value.
func (c AdvanceKitchenOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceKitchenOrderCommandIsNotConstructed)
}

// OrderID is the kitchen order to advance.
func (c AdvanceKitchenOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Step is the requested transition.
func (c AdvanceKitchenOrderCommand) Step() KitchenStep {
	return c.step
}
