package services

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/kernel"
)

// ErrNoDriverAvailable is returned when every driver in the fleet is busy.
var ErrNoDriverAvailable = errors.New("no driver available")

// DriverDispatcher implements the assignment policy of the dispatch service:
// the first available driver in fleet order wins. There is no load balancing
// and no distance optimisation.
//
// SelectDriver mutates the driver it returns, so it must run against the
// authoritative fleet under the store's lock:
//
//	d, err := drivers.Reserve(ctx, dispatcher.SelectDriver)
//	if errors.Is(err, services.ErrNoDriverAvailable) {
//	    // nothing to do, wait for the next READY event
//	}
//	del, err := dispatcher.PlanDelivery(orderID, d, restaurantLoc, customerLoc, now)
type DriverDispatcher struct{}

// NewDriverDispatcher returns the stateless dispatcher.
func NewDriverDispatcher() DriverDispatcher {
	return DriverDispatcher{}
}

// SelectDriver reserves and returns the first available driver.
func (DriverDispatcher) SelectDriver(drivers []*driver.Driver) (*driver.Driver, error) {
	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if !d.IsAvailable() {
			continue
		}
		if err := d.Reserve(); err != nil {
			return nil, err
		}
		return d, nil
	}

	return nil, ErrNoDriverAvailable
}

// PlanDelivery creates the Assigned delivery for a reserved driver, starting
// from where the driver stands now.
func (DriverDispatcher) PlanDelivery(
	orderID kernel.UUID,
	d *driver.Driver,
	restaurant, customer kernel.Location,
	now time.Time,
) (*delivery.Delivery, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	return delivery.NewDelivery(kernel.NewUUID(), orderID, d.ID(), d.Location(), restaurant, customer, now)
}
