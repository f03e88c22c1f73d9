package delivery

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	// EstimatedDeliveryWindow is added to the assignment time to get the ETA.
	EstimatedDeliveryWindow = 30 * time.Minute

	// RoutePreviewSteps is the number of segments in the route preview.
	RoutePreviewSteps = 10

	// RoutePreviewSpacing is the nominal time between preview points.
	RoutePreviewSpacing = 30 * time.Second
)

// ErrDeliveryIsNotConstructed is returned for deliveries not built with NewDelivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

// Delivery tracks one driver carrying one order from pickup to drop-off.
//
// Invariants:
//   - start, restaurant and customer locations are fixed at assignment
//   - total distances are computed once from those waypoints
//   - only the current location changes while moving
//   - progress is derived on every read and never stored
type Delivery struct {
	id       kernel.UUID
	orderID  kernel.UUID
	driverID string
	status   Status

	assignedAt            time.Time
	pickedUpAt            *time.Time
	deliveredAt           *time.Time
	estimatedDeliveryTime time.Time

	startLocation      kernel.Location
	restaurantLocation kernel.Location
	customerLocation   kernel.Location
	currentLocation    kernel.Location

	totalDistanceToRestaurant float64
	totalDistanceToCustomer   float64
	route                     []kernel.Location

	guard guard.ConstructorGuard
}

// NewDelivery creates an Assigned delivery for orderID with the driver standing
// at start. Waypoint distances and the route preview are computed here.
func NewDelivery(
	id, orderID kernel.UUID,
	driverID string,
	start, restaurant, customer kernel.Location,
	assignedAt time.Time,
) (*Delivery, error) {
	var driverErr error
	if strings.TrimSpace(driverID) == "" {
		driverErr = errs.NewValueIsRequiredError("driverID")
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		driverErr,
		start.Validate(),
		restaurant.Validate(),
		customer.Validate(),
	); err != nil {
		return nil, err
	}

	return &Delivery{
		id:                        id,
		orderID:                   orderID,
		driverID:                  driverID,
		status:                    Assigned,
		assignedAt:                assignedAt,
		estimatedDeliveryTime:     assignedAt.Add(EstimatedDeliveryWindow),
		startLocation:             start,
		restaurantLocation:        restaurant,
		customerLocation:          customer,
		currentLocation:           start,
		totalDistanceToRestaurant: kernel.DistanceKm(start, restaurant),
		totalDistanceToCustomer:   kernel.DistanceKm(restaurant, customer),
		route:                     kernel.StraightRoute(start, restaurant, RoutePreviewSteps, assignedAt, RoutePreviewSpacing),
		guard:                     guard.NewConstructorGuard(),
	}, nil
}

// Validate reports ErrDeliveryIsNotConstructed for a nil or zero-value
// Delivery.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// ID returns the delivery identity.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the order this delivery carries.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// DriverID returns the driver reserved for this delivery.
func (d *Delivery) DriverID() string {
	return d.driverID
}

// Status returns the current phase of the delivery.
func (d *Delivery) Status() Status {
	return d.status
}

// AssignedAt returns when the driver was assigned.
func (d *Delivery) AssignedAt() time.Time {
	return d.assignedAt
}

// EstimatedDeliveryTime is AssignedAt plus EstimatedDeliveryWindow. It is
// informational and never aborts a delivery.
func (d *Delivery) EstimatedDeliveryTime() time.Time {
	return d.estimatedDeliveryTime
}

// StartLocation is where the driver stood when assigned.
func (d *Delivery) StartLocation() kernel.Location {
	return d.startLocation
}

// RestaurantLocation is the pickup waypoint.
func (d *Delivery) RestaurantLocation() kernel.Location {
	return d.restaurantLocation
}

// CustomerLocation is the drop-off waypoint.
func (d *Delivery) CustomerLocation() kernel.Location {
	return d.customerLocation
}

// CurrentLocation is the last position the driver reported.
func (d *Delivery) CurrentLocation() kernel.Location {
	return d.currentLocation
}

// TotalDistanceToRestaurant is the great-circle distance from the start to
// the restaurant, in kilometres, fixed at assignment.
func (d *Delivery) TotalDistanceToRestaurant() float64 {
	return d.totalDistanceToRestaurant
}

// TotalDistanceToCustomer is the great-circle distance from the restaurant to
// the customer, in kilometres, fixed at assignment.
func (d *Delivery) TotalDistanceToCustomer() float64 {
	return d.totalDistanceToCustomer
}

// Route returns a copy of the straight-line preview from start to restaurant.
func (d *Delivery) Route() []kernel.Location {
	return slices.Clone(d.route)
}

// PickedUpAt returns the pickup time, or nil before pickup.
func (d *Delivery) PickedUpAt() *time.Time {
	return cloneTime(d.pickedUpAt)
}

// DeliveredAt returns the drop-off time, or nil before completion.
func (d *Delivery) DeliveredAt() *time.Time {
	return cloneTime(d.deliveredAt)
}

// Clone returns a deep copy so stores can hand out snapshots.
func (d *Delivery) Clone() *Delivery {
	if d == nil {
		return nil
	}
	c := *d
	c.pickedUpAt = cloneTime(d.pickedUpAt)
	c.deliveredAt = cloneTime(d.deliveredAt)
	c.route = slices.Clone(d.route)
	return &c
}

// Destination returns the waypoint the driver is heading to, if moving.
func (d *Delivery) Destination() (kernel.Location, bool) {
	switch d.status {
	case EnRouteToRestaurant:
		return d.restaurantLocation, true
	case EnRouteToCustomer:
		return d.customerLocation, true
	default:
		return kernel.Location{}, false
	}
}

// RemainingDistanceKm is the distance from the current location to the active waypoint.
func (d *Delivery) RemainingDistanceKm() float64 {
	dest, ok := d.Destination()
	if !ok {
		return 0
	}
	return kernel.DistanceKm(d.currentLocation, dest)
}

// ProgressPercentage derives completion in [0,100] from status and position:
//
//	ASSIGNED 5, EN_ROUTE_TO_RESTAURANT 5..40, AT_RESTAURANT 45,
//	PICKED_UP 50, EN_ROUTE_TO_CUSTOMER 50..95, DELIVERED 100
func (d *Delivery) ProgressPercentage() float64 {
	switch d.status {
	case Assigned:
		return 5
	case EnRouteToRestaurant:
		f := kernel.ProgressFraction(kernel.DistanceKm(d.startLocation, d.currentLocation), d.totalDistanceToRestaurant)
		return 5 + 35*f
	case AtRestaurant:
		return 45
	case PickedUp:
		return 50
	case EnRouteToCustomer:
		f := kernel.ProgressFraction(kernel.DistanceKm(d.restaurantLocation, d.currentLocation), d.totalDistanceToCustomer)
		return 50 + 45*f
	case Delivered:
		return 100
	default:
		return 0
	}
}

// IsOverdue reports whether an unfinished delivery has passed its ETA.
func (d *Delivery) IsOverdue(now time.Time) bool {
	return !d.status.IsTerminal() && now.After(d.estimatedDeliveryTime)
}

// StartToRestaurant sends the driver toward the restaurant.
func (d *Delivery) StartToRestaurant() error {
	return d.advance(Assigned, EnRouteToRestaurant)
}

// MoveTo records a new fix for the driver. Only allowed while en route.
func (d *Delivery) MoveTo(location kernel.Location) error {
	if !d.status.IsMoving() {
		return fmt.Errorf("%w: cannot move while %s", ErrTransitionNotAllowed, d.status)
	}
	if err := location.Validate(); err != nil {
		return err
	}
	d.currentLocation = location
	return nil
}

// ArriveAtRestaurant stops the first leg.
func (d *Delivery) ArriveAtRestaurant() error {
	return d.advance(EnRouteToRestaurant, AtRestaurant)
}

// PickUp collects the food and stamps pickedUpAt.
func (d *Delivery) PickUp(at time.Time) error {
	if err := d.advance(AtRestaurant, PickedUp); err != nil {
		return err
	}
	d.pickedUpAt = &at
	return nil
}

// StartToCustomer sends the driver toward the customer.
func (d *Delivery) StartToCustomer() error {
	return d.advance(PickedUp, EnRouteToCustomer)
}

// Complete finishes the delivery and stamps deliveredAt.
func (d *Delivery) Complete(at time.Time) error {
	if err := d.advance(EnRouteToCustomer, Delivered); err != nil {
		return err
	}
	d.deliveredAt = &at
	return nil
}

func (d *Delivery) advance(from, to Status) error {
	next, err := d.status.advance(from, to)
	if err != nil {
		return err
	}
	d.status = next
	return nil
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
