// Package queries contains the read operations of the three services.
// Handlers read through the ports repositories and return read models that
// carry wire-form values (status strings, prices as float64), so adapters can
// render them without touching the domain.
package queries

import (
	"time"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
)

// LocationResponse is a read-only view of kernel.Location.
type LocationResponse struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Time
}

// OrderItemResponse is one order line.
type OrderItemResponse struct {
	ItemID   string
	Name     string
	Quantity int
	Price    float64
}

// OrderResponse is a read-only view of an order.
type OrderResponse struct {
	ID           string
	CustomerID   string
	RestaurantID string
	Items        []OrderItemResponse
	TotalPrice   float64
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Restaurant is filled by kitchen reads only.
	Restaurant *RestaurantResponse
}

// RestaurantResponse is a read-only view of a catalog entry.
type RestaurantResponse struct {
	ID              string
	Name            string
	Address         string
	Phone           string
	PreparationTime int // minutes
	Location        LocationResponse
}

// DeliveryResponse carries ProgressPercentage computed at read time.
type DeliveryResponse struct {
	ID                        string
	OrderID                   string
	DriverID                  string
	Status                    string
	AssignedAt                time.Time
	PickedUpAt                *time.Time
	DeliveredAt               *time.Time
	EstimatedDeliveryTime     time.Time
	Route                     []LocationResponse
	CurrentLocation           LocationResponse
	StartLocation             LocationResponse
	RestaurantLocation        LocationResponse
	CustomerLocation          LocationResponse
	TotalDistanceToRestaurant float64
	TotalDistanceToCustomer   float64
	ProgressPercentage        float64
}

// DriverResponse is a read-only view of a driver.
type DriverResponse struct {
	ID              string
	Name            string
	Phone           string
	VehicleType     string
	IsAvailable     bool
	CurrentLocation LocationResponse
}

func locationResponse(l kernel.Location) LocationResponse {
	return LocationResponse{Latitude: l.Latitude(), Longitude: l.Longitude(), Timestamp: l.CapturedAt()}
}

// NewOrderResponse renders an order the way the read handlers do. Command
// callers use it to echo back what they stored.
func NewOrderResponse(o *order.Order) OrderResponse {
	return orderResponse(o)
}

func orderResponse(o *order.Order) OrderResponse {
	items := o.Items()
	resp := OrderResponse{
		ID:           o.ID().String(),
		CustomerID:   o.CustomerID(),
		RestaurantID: o.RestaurantID(),
		Items:        make([]OrderItemResponse, 0, len(items)),
		TotalPrice:   o.TotalPrice().InexactFloat64(),
		Status:       o.Status().String(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ItemID:   it.ItemID(),
			Name:     it.Name(),
			Quantity: it.Quantity(),
			Price:    it.Price().InexactFloat64(),
		})
	}
	return resp
}

func restaurantResponse(r *restaurant.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:              r.ID(),
		Name:            r.Name(),
		Address:         r.Address(),
		Phone:           r.Phone(),
		PreparationTime: int(r.PreparationTime().Minutes()),
		Location:        locationResponse(r.Location()),
	}
}

func deliveryResponse(d *delivery.Delivery) DeliveryResponse {
	route := d.Route()
	resp := DeliveryResponse{
		ID:                        d.ID().String(),
		OrderID:                   d.OrderID().String(),
		DriverID:                  d.DriverID(),
		Status:                    d.Status().String(),
		AssignedAt:                d.AssignedAt(),
		PickedUpAt:                d.PickedUpAt(),
		DeliveredAt:               d.DeliveredAt(),
		EstimatedDeliveryTime:     d.EstimatedDeliveryTime(),
		Route:                     make([]LocationResponse, 0, len(route)),
		CurrentLocation:           locationResponse(d.CurrentLocation()),
		StartLocation:             locationResponse(d.StartLocation()),
		RestaurantLocation:        locationResponse(d.RestaurantLocation()),
		CustomerLocation:          locationResponse(d.CustomerLocation()),
		TotalDistanceToRestaurant: d.TotalDistanceToRestaurant(),
		TotalDistanceToCustomer:   d.TotalDistanceToCustomer(),
		ProgressPercentage:        d.ProgressPercentage(),
	}
	for _, l := range route {
		resp.Route = append(resp.Route, locationResponse(l))
	}
	return resp
}

func driverResponse(d *driver.Driver) DriverResponse {
	return DriverResponse{
		ID:              d.ID(),
		Name:            d.Name(),
		Phone:           d.Phone(),
		VehicleType:     d.Vehicle().String(),
		IsAvailable:     d.IsAvailable(),
		CurrentLocation: locationResponse(d.Location()),
	}
}
