package commands

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrApplyOrderStatusCommandIsNotConstructed = errors.New(
	"ApplyOrderStatusCommand must be created via NewApplyOrderStatusCommand constructor",
)

// ApplyOrderStatusCommand records a status reported by another service.
type ApplyOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	status    order.Status
	at        time.Time
	serviceID string

	guard guard.ConstructorGuard
}

// NewApplyOrderStatusCommand builds the command from an order-status report.
// at is the report timestamp and becomes the order's updatedAt.
func NewApplyOrderStatusCommand(
	orderID kernel.UUID,
	status order.Status,
	at time.Time,
	serviceID string,
) (ApplyOrderStatusCommand, error) {
	var atErr error
	if at.IsZero() {
		atErr = errs.NewValueIsRequiredError("timestamp")
	}

	if err := errors.Join(orderID.Validate(), status.Validate(), atErr); err != nil {
		return ApplyOrderStatusCommand{}, err
	}

	return ApplyOrderStatusCommand{
		orderID:   orderID,
		status:    status,
		at:        at,
		serviceID: serviceID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate reports ErrApplyOrderStatusCommandIsNotConstructed for a zero value.
func (c ApplyOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrApplyOrderStatusCommandIsNotConstructed)
}

// OrderID is the order the event refers to.
func (c ApplyOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status is the reported status.
func (c ApplyOrderStatusCommand) Status() order.Status {
	return c.status
}

// At is the event timestamp. It becomes the order update time.
func (c ApplyOrderStatusCommand) At() time.Time {
	return c.at
}

// ServiceID names the service that reported the status.
func (c ApplyOrderStatusCommand) ServiceID() string {
	return c.serviceID
}
