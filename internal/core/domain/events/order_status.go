package events

import "time"

// StatusMetadata carries the origin-specific details of a status report.
// The kitchen fills the restaurant fields; dispatch fills the delivery fields.
type StatusMetadata struct {
	RestaurantID   string     `json:"restaurantId,omitempty"`
	RestaurantName string     `json:"restaurantName,omitempty"`
	DeliveryID     string     `json:"deliveryId,omitempty"`
	DriverID       string     `json:"driverId,omitempty"`
	DeliveredAt    *time.Time `json:"deliveredAt,omitempty"`
}

// OrderStatusEvent is published on TopicOrderStatus whenever a service moves an order.
type OrderStatusEvent struct {
	OrderID   string          `json:"orderId"`
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	ServiceID string          `json:"serviceId"`
	Metadata  *StatusMetadata `json:"metadata,omitempty"`
}

// MessageKey partitions by order.
func (e OrderStatusEvent) MessageKey() string {
	return e.OrderID
}
