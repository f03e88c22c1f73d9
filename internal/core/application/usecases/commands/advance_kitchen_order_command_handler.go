package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// AdvanceKitchenOrderCommandHandler runs the guarded kitchen transitions
// CREATED→ACCEPTED→PREPARING→READY and publishes each change.
type AdvanceKitchenOrderCommandHandler struct {
	orders      ports.OrderRepository
	restaurants ports.RestaurantRepository
	publisher   ports.EventPublisher
	logger      *slog.Logger
}

// NewAdvanceKitchenOrderCommandHandler returns a handler that stores kitchen
// steps and announces them on publisher.
func NewAdvanceKitchenOrderCommandHandler(
	orders ports.OrderRepository,
	restaurants ports.RestaurantRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AdvanceKitchenOrderCommandHandler {
	return AdvanceKitchenOrderCommandHandler{
		orders:      orders,
		restaurants: restaurants,
		publisher:   publisher,
		logger:      logger.With("component", "advance-kitchen-order"),
	}
}

// Handle applies the step. A status other than the step's source status
// yields IgnoredPrecondition and publishes nothing.
func (h AdvanceKitchenOrderCommandHandler) Handle(ctx context.Context, command AdvanceKitchenOrderCommand) (Outcome, error) {
	if err := command.Validate(); err != nil {
		return Applied, err
	}

	now := time.Now().UTC()
	updated, err := h.orders.Modify(ctx, command.OrderID(), func(o *order.Order) error {
		switch command.Step() {
		case StepAccept:
			return o.Accept(now)
		case StepStartPreparation:
			return o.StartPreparation(now)
		default:
			return o.MarkReady(now)
		}
	})
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		h.logger.WarnContext(ctx, "kitchen step for unknown order",
			"orderId", command.OrderID().String(), "step", command.Step().String())
		return IgnoredUnknownOrder, nil
	case errors.Is(err, order.ErrTransitionNotAllowed):
		h.logger.InfoContext(ctx, "kitchen step skipped",
			"orderId", command.OrderID().String(), "step", command.Step().String(), "reason", err.Error())
		return IgnoredPrecondition, nil
	case err != nil:
		return Applied, err
	}

	if err = publishKitchenStatus(ctx, h.publisher, h.restaurants, updated); err != nil {
		return Applied, err
	}

	h.logger.InfoContext(ctx, "order status updated",
		"orderId", updated.ID().String(), "status", updated.Status().String())
	return Applied, nil
}
