package events

import (
	"math/rand/v2"
	"time"
)

// LocationMetadata is attached to every location fix. Speed (km/h) and
// accuracy (m) are synthetic.
type LocationMetadata struct {
	Status   string   `json:"status,omitempty"`
	Speed    *float64 `json:"speed,omitempty"`
	Accuracy *float64 `json:"accuracy,omitempty"`
}

// DeliveryLocationEvent is published on TopicDeliveryLocation after each tick.
type DeliveryLocationEvent struct {
	DeliveryID string            `json:"deliveryId"`
	OrderID    string            `json:"orderId"`
	DriverID   string            `json:"driverId"`
	Latitude   float64           `json:"latitude"`
	Longitude  float64           `json:"longitude"`
	Timestamp  time.Time         `json:"timestamp"`
	Metadata   *LocationMetadata `json:"metadata,omitempty"`
}

// MessageKey partitions by order, falling back to the delivery.
func (e DeliveryLocationEvent) MessageKey() string {
	if e.OrderID != "" {
		return e.OrderID
	}
	return e.DeliveryID
}

// SyntheticLocationMetadata returns status plus a speed in [10,40) km/h and an
// accuracy in [5,15) m.
func SyntheticLocationMetadata(status string) *LocationMetadata {
	speed := 10 + rand.Float64()*30   //nolint:gosec // simulation only
	accuracy := 5 + rand.Float64()*10 //nolint:gosec // simulation only
	return &LocationMetadata{Status: status, Speed: &speed, Accuracy: &accuracy}
}
