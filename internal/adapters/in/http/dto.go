package http

import (
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Error string `json:"error"`
}

// Result is returned by the kitchen action endpoints.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Health is the body of GET /api/health.
type Health struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

// NewOrderItem is one line of a POST /api/orders body.
type NewOrderItem struct {
	ItemID   string          `json:"itemId"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// NewOrder is the body of POST /api/orders.
type NewOrder struct {
	CustomerID   string         `json:"customerId"`
	RestaurantID string         `json:"restaurantId"`
	Items        []NewOrderItem `json:"items"`
}

func (n NewOrder) inputs() []commands.OrderItemInput {
	inputs := make([]commands.OrderItemInput, 0, len(n.Items))
	for _, it := range n.Items {
		inputs = append(inputs, commands.OrderItemInput{
			ItemID:   it.ItemID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return inputs
}

// StatusUpdate is the body of PATCH /api/orders/:id/status.
type StatusUpdate struct {
	Status string `json:"status"`
}

// Location is a coordinate pair with its capture time.
type Location struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderItem is one line of an Order.
type OrderItem struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order is the wire form of an order. Restaurant is set by the kitchen only.
type Order struct {
	ID           string      `json:"id"`
	CustomerID   string      `json:"customerId"`
	Items        []OrderItem `json:"items"`
	TotalPrice   float64     `json:"totalPrice"`
	RestaurantID string      `json:"restaurantId"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	Restaurant   *Restaurant `json:"restaurant,omitempty"`
}

// Restaurant is the wire form of a catalog entry.
type Restaurant struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Address         string   `json:"address"`
	Phone           string   `json:"phone"`
	PreparationTime int      `json:"preparationTime"`
	Location        Location `json:"location"`
}

// Delivery is the wire form of a delivery. ProgressPercentage is computed at
// read time.
type Delivery struct {
	ID                        string     `json:"id"`
	OrderID                   string     `json:"orderId"`
	DriverID                  string     `json:"driverId"`
	Status                    string     `json:"status"`
	AssignedAt                time.Time  `json:"assignedAt"`
	PickedUpAt                *time.Time `json:"pickedUpAt,omitempty"`
	DeliveredAt               *time.Time `json:"deliveredAt,omitempty"`
	EstimatedDeliveryTime     time.Time  `json:"estimatedDeliveryTime"`
	Route                     []Location `json:"route"`
	CurrentLocation           Location   `json:"currentLocation"`
	StartLocation             Location   `json:"startLocation"`
	RestaurantLocation        Location   `json:"restaurantLocation"`
	CustomerLocation          Location   `json:"customerLocation"`
	TotalDistanceToRestaurant float64    `json:"totalDistanceToRestaurant"`
	TotalDistanceToCustomer   float64    `json:"totalDistanceToCustomer"`
	ProgressPercentage        float64    `json:"progressPercentage"`
}

// Driver is the wire form of a driver.
type Driver struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Phone           string   `json:"phone"`
	VehicleType     string   `json:"vehicleType"`
	IsAvailable     bool     `json:"isAvailable"`
	CurrentLocation Location `json:"currentLocation"`
}

// OrderStats is the body of the ordering and kitchen GET /api/stats.
type OrderStats struct {
	Total        int            `json:"total"`
	ByStatus     map[string]int `json:"byStatus"`
	ByRestaurant map[string]int `json:"byRestaurant,omitempty"`
}

// DeliveryStats is the body of the dispatch GET /api/stats.
type DeliveryStats struct {
	Total            int            `json:"total"`
	ByStatus         map[string]int `json:"byStatus"`
	AvailableDrivers int            `json:"availableDrivers"`
}

func toLocation(l queries.LocationResponse) Location {
	return Location{Latitude: l.Latitude, Longitude: l.Longitude, Timestamp: l.Timestamp}
}

func toOrder(o queries.OrderResponse) Order {
	items := make([]OrderItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItem{ItemID: it.ItemID, Name: it.Name, Quantity: it.Quantity, Price: it.Price}
	}

	dto := Order{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		Items:        items,
		TotalPrice:   o.TotalPrice,
		RestaurantID: o.RestaurantID,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	if o.Restaurant != nil {
		r := toRestaurant(*o.Restaurant)
		dto.Restaurant = &r
	}
	return dto
}

func toOrders(orders []queries.OrderResponse) []Order {
	dtos := make([]Order, len(orders))
	for i, o := range orders {
		dtos[i] = toOrder(o)
	}
	return dtos
}

func toRestaurant(r queries.RestaurantResponse) Restaurant {
	return Restaurant{
		ID:              r.ID,
		Name:            r.Name,
		Address:         r.Address,
		Phone:           r.Phone,
		PreparationTime: r.PreparationTime,
		Location:        toLocation(r.Location),
	}
}

func toDelivery(d queries.DeliveryResponse) Delivery {
	route := make([]Location, len(d.Route))
	for i, l := range d.Route {
		route[i] = toLocation(l)
	}

	return Delivery{
		ID:                        d.ID,
		OrderID:                   d.OrderID,
		DriverID:                  d.DriverID,
		Status:                    d.Status,
		AssignedAt:                d.AssignedAt,
		PickedUpAt:                d.PickedUpAt,
		DeliveredAt:               d.DeliveredAt,
		EstimatedDeliveryTime:     d.EstimatedDeliveryTime,
		Route:                     route,
		CurrentLocation:           toLocation(d.CurrentLocation),
		StartLocation:             toLocation(d.StartLocation),
		RestaurantLocation:        toLocation(d.RestaurantLocation),
		CustomerLocation:          toLocation(d.CustomerLocation),
		TotalDistanceToRestaurant: d.TotalDistanceToRestaurant,
		TotalDistanceToCustomer:   d.TotalDistanceToCustomer,
		ProgressPercentage:        d.ProgressPercentage,
	}
}

func toDriver(d queries.DriverResponse) Driver {
	return Driver{
		ID:              d.ID,
		Name:            d.Name,
		Phone:           d.Phone,
		VehicleType:     d.VehicleType,
		IsAvailable:     d.IsAvailable,
		CurrentLocation: toLocation(d.CurrentLocation),
	}
}
