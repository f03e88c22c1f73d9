// Package events defines the messages the three services exchange and their
// exact JSON encoding.
//
// Topics:
//   - orders: ORDER_CREATED snapshots published by the ordering service
//   - order-status: status reports from the kitchen and dispatch services
//   - delivery-location: driver position fixes published every simulation tick
package events

const (
	TopicOrders           = "orders"
	TopicOrderStatus      = "order-status"
	TopicDeliveryLocation = "delivery-location"
)

// Service identifiers carried in OrderStatusEvent.ServiceID.
const (
	OrderService      = "order-service"
	RestaurantService = "restaurant-service"
	DeliveryService   = "delivery-service"
)

// EventTypeOrderCreated tags OrderCreatedEvent payloads.
const EventTypeOrderCreated = "ORDER_CREATED"
