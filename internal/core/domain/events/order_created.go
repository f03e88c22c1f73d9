package events

import (
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderItem is the wire form of order.Item.
type OrderItem struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderCreatedEvent is published on TopicOrders with the full order snapshot.
type OrderCreatedEvent struct {
	ID           string      `json:"id"`
	CustomerID   string      `json:"customerId"`
	Items        []OrderItem `json:"items"`
	TotalPrice   float64     `json:"totalPrice"`
	RestaurantID string      `json:"restaurantId"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	EventType    string      `json:"eventType"`
	Timestamp    time.Time   `json:"timestamp"`
}

// NewOrderCreatedEvent snapshots o.
func NewOrderCreatedEvent(o *order.Order, timestamp time.Time) OrderCreatedEvent {
	items := make([]OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItem{
			ItemID:   item.ItemID(),
			Name:     item.Name(),
			Quantity: item.Quantity(),
			Price:    item.Price().InexactFloat64(),
		})
	}

	return OrderCreatedEvent{
		ID:           o.ID().String(),
		CustomerID:   o.CustomerID(),
		Items:        items,
		TotalPrice:   o.TotalPrice().InexactFloat64(),
		RestaurantID: o.RestaurantID(),
		Status:       o.Status().String(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
		EventType:    EventTypeOrderCreated,
		Timestamp:    timestamp,
	}
}

// MessageKey partitions by order.
func (e OrderCreatedEvent) MessageKey() string {
	return e.ID
}

// ToOrder rebuilds the snapshot as an order projection. The reported total is
// kept as is.
func (e OrderCreatedEvent) ToOrder() (*order.Order, error) {
	id, err := kernel.UUIDFromString(e.ID)
	if err != nil {
		return nil, fmt.Errorf("order id: %w", err)
	}

	status, err := order.ParseStatus(e.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(e.Items))
	for _, it := range e.Items {
		item, err := order.NewItem(it.ItemID, it.Name, it.Quantity, decimal.NewFromFloat(it.Price))
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", it.ItemID, err)
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, e.CustomerID, e.RestaurantID, items,
		decimal.NewFromFloat(e.TotalPrice), status, e.CreatedAt, e.UpdatedAt)
}
