package commands

import (
	"context"

	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// publishKitchenStatus reports the kitchen's current status of o. The
// restaurant name is omitted when the catalogue does not know the restaurant.
func publishKitchenStatus(
	ctx context.Context,
	publisher ports.EventPublisher,
	restaurants ports.RestaurantRepository,
	o *order.Order,
) error {
	meta := &events.StatusMetadata{RestaurantID: o.RestaurantID()}
	if r, err := restaurants.Get(ctx, o.RestaurantID()); err == nil {
		meta.RestaurantName = r.Name()
	}

	return publisher.Publish(ctx, events.TopicOrderStatus, events.OrderStatusEvent{
		OrderID:   o.ID().String(),
		Status:    o.Status().String(),
		Timestamp: o.UpdatedAt(),
		ServiceID: events.RestaurantService,
		Metadata:  meta,
	})
}
