// Package subscribers connects broker topics to the application commands of
// each service. Payloads are decoded here; undecodable or irrelevant messages
// are logged and dropped so the consumer loop keeps going.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

type (
	OrderStatusApplier interface {
		Handle(ctx context.Context, command commands.ApplyOrderStatusCommand) (commands.Outcome, error)
	}

	KitchenOrderRegistrar interface {
		Handle(ctx context.Context, command commands.RegisterKitchenOrderCommand) (commands.Outcome, error)
	}

	DriverAssigner interface {
		Handle(ctx context.Context, command commands.AssignDriverCommand) (commands.Outcome, error)
	}
)

// RegisterOrdering makes the ordering service follow every order-status report.
func RegisterOrdering(sub ports.EventSubscriber, applier OrderStatusApplier, logger *slog.Logger) error {
	log := logger.With("component", "ordering-subscriber")

	return sub.Subscribe(events.TopicOrderStatus, func(ctx context.Context, payload []byte) error {
		cmd, ok := decodeStatus(ctx, log, payload)
		if !ok {
			return nil
		}
		_, err := applier.Handle(ctx, cmd)
		return err
	})
}

// RegisterKitchen seeds the kitchen projection from ORDER_CREATED and keeps it
// in step with pickups and deliveries reported by dispatch.
func RegisterKitchen(
	sub ports.EventSubscriber,
	registrar KitchenOrderRegistrar,
	applier OrderStatusApplier,
	logger *slog.Logger,
) error {
	log := logger.With("component", "kitchen-subscriber")

	if err := sub.Subscribe(events.TopicOrders, func(ctx context.Context, payload []byte) error {
		var event events.OrderCreatedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			log.WarnContext(ctx, "undecodable order dropped", "error", err)
			return nil
		}
		if event.EventType != events.EventTypeOrderCreated {
			return nil
		}

		snapshot, err := event.ToOrder()
		if err != nil {
			log.WarnContext(ctx, "invalid order dropped", "orderId", event.ID, "error", err)
			return nil
		}
		cmd, err := commands.NewRegisterKitchenOrderCommand(snapshot)
		if err != nil {
			return err
		}
		_, err = registrar.Handle(ctx, cmd)
		return err
	}); err != nil {
		return err
	}

	return sub.Subscribe(events.TopicOrderStatus, func(ctx context.Context, payload []byte) error {
		cmd, ok := decodeStatus(ctx, log, payload)
		if !ok || cmd.ServiceID() != events.DeliveryService {
			return nil
		}
		if cmd.Status() != order.PickedUp && cmd.Status() != order.Delivered {
			return nil
		}
		_, err := applier.Handle(ctx, cmd)
		return err
	})
}

// RegisterDispatch assigns a driver whenever the kitchen reports an order READY.
func RegisterDispatch(sub ports.EventSubscriber, assigner DriverAssigner, logger *slog.Logger) error {
	log := logger.With("component", "dispatch-subscriber")

	return sub.Subscribe(events.TopicOrderStatus, func(ctx context.Context, payload []byte) error {
		var event events.OrderStatusEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			log.WarnContext(ctx, "undecodable status dropped", "error", err)
			return nil
		}
		if event.Status != order.Ready.String() || event.ServiceID != events.RestaurantService {
			return nil
		}

		orderID, err := kernel.UUIDFromString(event.OrderID)
		if err != nil {
			log.WarnContext(ctx, "status with invalid order id dropped", "orderId", event.OrderID, "error", err)
			return nil
		}

		var restaurantID string
		if event.Metadata != nil {
			restaurantID = event.Metadata.RestaurantID
		}

		cmd, err := commands.NewAssignDriverCommand(orderID, restaurantID)
		if err != nil {
			return err
		}
		log.InfoContext(ctx, "order ready for pickup", "orderId", event.OrderID)
		_, err = assigner.Handle(ctx, cmd)
		return err
	})
}

func decodeStatus(ctx context.Context, log *slog.Logger, payload []byte) (commands.ApplyOrderStatusCommand, bool) {
	var event events.OrderStatusEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		log.WarnContext(ctx, "undecodable status dropped", "error", err)
		return commands.ApplyOrderStatusCommand{}, false
	}

	cmd, err := statusCommand(event)
	if err != nil {
		log.WarnContext(ctx, "invalid status dropped", "orderId", event.OrderID, "error", err)
		return commands.ApplyOrderStatusCommand{}, false
	}
	return cmd, true
}

func statusCommand(event events.OrderStatusEvent) (commands.ApplyOrderStatusCommand, error) {
	orderID, err := kernel.UUIDFromString(event.OrderID)
	if err != nil {
		return commands.ApplyOrderStatusCommand{}, fmt.Errorf("order id: %w", err)
	}
	status, err := order.ParseStatus(event.Status)
	if err != nil {
		return commands.ApplyOrderStatusCommand{}, err
	}

	at := event.Timestamp
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return commands.NewApplyOrderStatusCommand(orderID, status, at, event.ServiceID)
}
