package commands

import (
	"context"
	"errors"
	"log/slog"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// ApplyOrderStatusCommandHandler overwrites the stored status with a reported
// one. The ordering service uses it for every order-status event; the kitchen
// uses it to follow pickup and delivery.
type ApplyOrderStatusCommandHandler struct {
	orders ports.OrderRepository
	logger *slog.Logger
}

// NewApplyOrderStatusCommandHandler returns a handler over orders.
func NewApplyOrderStatusCommandHandler(orders ports.OrderRepository, logger *slog.Logger) ApplyOrderStatusCommandHandler {
	return ApplyOrderStatusCommandHandler{
		orders: orders,
		logger: logger.With("component", "apply-order-status"),
	}
}

// Handle applies the status unconditionally, backward moves included.
// An unknown order yields IgnoredUnknownOrder.
func (h ApplyOrderStatusCommandHandler) Handle(ctx context.Context, command ApplyOrderStatusCommand) (Outcome, error) {
	if err := command.Validate(); err != nil {
		return Applied, err
	}

	var previous order.Status
	updated, err := h.orders.Modify(ctx, command.OrderID(), func(o *order.Order) error {
		previous = o.Status()
		return o.ApplyStatus(command.Status(), command.At())
	})
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.WarnContext(ctx, "status for unknown order ignored",
			"orderId", command.OrderID().String(),
			"status", command.Status().String(),
			"serviceId", command.ServiceID())
		return IgnoredUnknownOrder, nil
	}
	if err != nil {
		return Applied, err
	}

	h.logger.InfoContext(ctx, "order status applied",
		"orderId", updated.ID().String(),
		"from", previous.String(),
		"to", updated.Status().String(),
		"serviceId", command.ServiceID())
	return Applied, nil
}
