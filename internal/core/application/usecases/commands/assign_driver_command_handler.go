package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// DeliverySimulator drives an assigned delivery to completion in the background.
type DeliverySimulator interface {
	Start(d *delivery.Delivery) error
}

// AssignDriverCommandHandler turns a READY order into a delivery: it resolves
// both waypoints, reserves the first available driver, stores the delivery
// and hands it to the simulator.
//
// Example:
//
//	outcome, err := handler.Handle(ctx, cmd)
//	switch {
//	case err != nil:
//	    return err
//	case outcome == IgnoredNoDriver:
//	    // every driver is busy; the order waits for a manual retry
//	}
type AssignDriverCommandHandler struct {
	deliveries  ports.DeliveryRepository
	drivers     ports.DriverRepository
	restaurants ports.Geocoder
	customers   ports.Geocoder
	simulator   DeliverySimulator
	dispatcher  services.DriverDispatcher
	logger      *slog.Logger
}

// NewAssignDriverCommandHandler returns a handler that reserves drivers,
// plans deliveries and hands them to simulator.
func NewAssignDriverCommandHandler(
	deliveries ports.DeliveryRepository,
	drivers ports.DriverRepository,
	restaurants ports.Geocoder,
	customers ports.Geocoder,
	simulator DeliverySimulator,
	logger *slog.Logger,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		deliveries:  deliveries,
		drivers:     drivers,
		restaurants: restaurants,
		customers:   customers,
		simulator:   simulator,
		dispatcher:  services.NewDriverDispatcher(),
		logger:      logger.With("component", "assign-driver"),
	}
}

// Handle assigns the first available driver to the order and starts its
// delivery. Duplicates, unknown restaurants and an empty fleet are reported
// as ignored outcomes. Any failure after the reservation releases the driver.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, command AssignDriverCommand) (Outcome, error) {
	if err := command.Validate(); err != nil {
		return Applied, err
	}

	orderID := command.OrderID()
	log := h.logger.With("orderId", orderID.String())

	if _, err := h.deliveries.GetByOrder(ctx, orderID); err == nil {
		log.InfoContext(ctx, "order already has a delivery")
		return IgnoredDuplicate, nil
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return Applied, err
	}

	pickup, err := h.restaurants.Locate(ctx, command.RestaurantID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		log.WarnContext(ctx, "restaurant cannot be located", "restaurantId", command.RestaurantID())
		return IgnoredUnknownRestaurant, nil
	}
	if err != nil {
		return Applied, fmt.Errorf("locate restaurant: %w", err)
	}

	dropoff, err := h.customers.Locate(ctx, orderID.String())
	if err != nil {
		return Applied, fmt.Errorf("locate customer: %w", err)
	}

	reserved, err := h.drivers.Reserve(ctx, h.dispatcher.SelectDriver)
	if errors.Is(err, services.ErrNoDriverAvailable) {
		log.WarnContext(ctx, "no available drivers")
		return IgnoredNoDriver, nil
	}
	if err != nil {
		return Applied, err
	}

	d, err := h.dispatcher.PlanDelivery(orderID, reserved, pickup, dropoff, time.Now().UTC())
	if err != nil {
		h.release(ctx, reserved)
		return Applied, err
	}

	err = h.deliveries.Add(ctx, d)
	if errors.Is(err, ports.ErrAlreadyExists) {
		h.release(ctx, reserved)
		log.InfoContext(ctx, "order already has a delivery")
		return IgnoredDuplicate, nil
	}
	if err != nil {
		h.release(ctx, reserved)
		return Applied, err
	}

	log.InfoContext(ctx, "driver assigned",
		"deliveryId", d.ID().String(),
		"driverId", reserved.ID(),
		"driver", reserved.Name(),
		"distanceToRestaurantKm", d.TotalDistanceToRestaurant(),
		"distanceToCustomerKm", d.TotalDistanceToCustomer())

	if err = h.simulator.Start(d.Clone()); err != nil {
		if removeErr := h.deliveries.Remove(ctx, d.ID()); removeErr != nil {
			log.ErrorContext(ctx, "unstarted delivery could not be removed", "deliveryId", d.ID().String(), "error", removeErr)
		}
		h.release(ctx, reserved)
		return Applied, fmt.Errorf("start simulation: %w", err)
	}
	return Applied, nil
}

func (h AssignDriverCommandHandler) release(ctx context.Context, reserved *driver.Driver) {
	if _, err := h.drivers.Release(ctx, reserved.ID(), reserved.Location()); err != nil {
		h.logger.ErrorContext(ctx, "driver could not be released",
			"driverId", reserved.ID(), "error", err)
	}
}
